// Package cli defines the portlab command tree.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vqetools/portlab/internal/logger"
)

// RootCommand builds the top-level command with all subcommands
// attached.
func RootCommand() *cobra.Command {
	var verbose bool
	var quiet bool

	cmd := &cobra.Command{
		Use:           "portlab",
		Short:         "Tools for the VQE portfolio optimization study",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			switch {
			case quiet:
				logger.SetLevel(zerolog.ErrorLevel)
			case verbose:
				logger.SetLevel(zerolog.DebugLevel)
			default:
				logger.SetLevel(zerolog.InfoLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")

	cmd.AddCommand(
		ConvertCommand(),
		RepairCommand(),
		GenerateCommand(),
		ExperimentsCommand(),
		ReportCommand(),
	)

	return cmd
}
