package main

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/gentlemanautomaton/filemutex"
)

func newRunCmd(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "run [flags] -- COMMAND [ARG...]",
		Short: "Run a command while holding the lock",
		Long: "Run a command while holding the lock.\n\n" +
			"Without --timeout, run waits for the lock for as long as it takes.\n" +
			"The exit status of the command is passed through.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m := a.cfg.Mutex(a.logger)

			if err := acquire(ctx, m, timeout); err != nil {
				return err
			}
			a.logger.Debug("Acquired lock", "path", m.Path())

			child := exec.CommandContext(ctx, args[0], args[1:]...)
			child.Stdin = cmd.InOrStdin()
			child.Stdout = cmd.OutOrStdout()
			child.Stderr = cmd.ErrOrStderr()
			runErr := child.Run()

			if err := m.Unlock(); err != nil {
				return errors.Join(runErr, err)
			}
			return runErr
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up if the lock is not acquired within this duration (0 waits forever)")

	return cmd
}

// acquire locks m, waiting at most timeout when it is positive.
func acquire(ctx context.Context, m *filemutex.Mutex, timeout time.Duration) error {
	if timeout <= 0 {
		return m.Lock()
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := filemutex.WaitCtx(ctx, m); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("timed out after %s waiting for lock \"%s\": %w", timeout, m.Path(), err)
		}
		return err
	}
	return nil
}
