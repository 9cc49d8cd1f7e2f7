// Command filemutex serializes work across processes with a lock file.
//
//	filemutex increment counter.txt --lock /tmp/counter.lock
//	filemutex run --timeout 30s -- make deploy
package main

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			log.Error(err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode returns the exit status for err. A command run by "run" passes
// its own exit status through.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}
