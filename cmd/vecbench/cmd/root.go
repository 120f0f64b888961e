// Package cmd provides the CLI commands for vecbench.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/vectorengine/pkg/version"
)

// NewRootCmd creates the root command for the vecbench CLI.
func NewRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:     "vecbench",
		Short:   "Drive and benchmark a vectorengine.Engine from the command line",
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.SetVersionTemplate("vecbench version {{.Version}}\n")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newLoadCmd())
	cmd.AddCommand(newSaveCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newBenchCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
