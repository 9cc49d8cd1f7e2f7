package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gentlemanautomaton/filemutex/internal/config"
)

// app holds the state shared by the subcommands once flags are parsed.
type app struct {
	cfg    config.Config
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "filemutex",
		Short: "Serialize work across processes with a lock file",
		Long: "filemutex holds an exclusive advisory lock on a lock file while it works.\n" +
			"Every process using the same lock file waits its turn.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		v, err := config.Bind(root.PersistentFlags())
		if err != nil {
			return err
		}
		if a.cfg, err = config.Load(v); err != nil {
			return err
		}

		a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
			Level:  a.cfg.LogLevel,
			Prefix: "filemutex",
		})
		a.logger.Debug("Loaded configuration", "lock", a.cfg.LockPath, "retry", a.cfg.RetryInterval, "spin", a.cfg.Spin)
		return nil
	}

	root.AddCommand(newIncrementCmd(a))
	root.AddCommand(newRunCmd(a))

	return root
}
