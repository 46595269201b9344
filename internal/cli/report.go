package cli

import (
	"github.com/spf13/cobra"

	"github.com/vqetools/portlab/internal/checkpoint"
	"github.com/vqetools/portlab/internal/logger"
)

// ReportCommand summarizes a finished (or running) experiment from its
// checkpoint file.
func ReportCommand() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "report <experiment-id>",
		Short: "Print the final report for an experiment checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, path, err := checkpoint.Load(dataDir, args[0])
			if err != nil {
				return err
			}
			log := logger.Logger()
			log.Debug().Str("checkpoint", path).Msg("loaded")
			return exp.WriteReport(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", ".", "directory holding experiment checkpoints")

	return cmd
}
