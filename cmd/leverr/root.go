package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	verbose     bool
	historySize int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	var logger *zap.Logger

	root := &cobra.Command{
		Use:   "leverr",
		Short: "leverr runs and explores Leverr programs",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if opts.verbose {
				cfg := zap.NewDevelopmentConfig()
				cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
				logger, err = cfg.Build()
			} else {
				logger, err = zap.NewProduction()
			}
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logger != nil {
				return logger.Sync()
			}
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log each pipeline stage at debug level")
	root.PersistentFlags().IntVar(&opts.historySize, "history-size", 128, "number of REPL lines retained for :history")

	root.AddCommand(newRunCmd(opts, func() *zap.Logger { return logger }))
	root.AddCommand(newReplCmd(opts, func() *zap.Logger { return logger }))
	return root
}
