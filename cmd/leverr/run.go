package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leverr-lang/leverr/internal/diag"
)

func newRunCmd(opts *rootOptions, logger func() *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "run a Leverr source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			trace := func(stage string) {
				logger().Debug("pipeline stage", zap.String("stage", stage), zap.String("file", path))
			}

			out, d := runSource(string(source), trace)
			if d != nil {
				fmt.Fprintln(os.Stderr, diag.NewFormatter().Format(*d, string(source)))
				os.Exit(1)
			}
			fmt.Println(out)
			return nil
		},
	}
}
