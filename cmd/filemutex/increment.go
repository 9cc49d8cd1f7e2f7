package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gentlemanautomaton/filemutex/internal/counter"
)

func newIncrementCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "increment COUNTER",
		Short: "Add one to the integer stored in COUNTER while holding the lock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			m := a.cfg.Mutex(a.logger)

			var value int
			err := m.WithLock(func() (err error) {
				value, err = counter.Increment(path)
				return err
			})
			if err != nil {
				return err
			}

			a.logger.Debug("Incremented counter", "path", path, "value", value)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}
