package cli

import (
	"github.com/spf13/cobra"

	"github.com/vqetools/portlab/internal/logger"
	"github.com/vqetools/portlab/internal/lp"
)

// RepairCommand merges broken multi-line constraints in LP files.
func RepairCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "repair <file.lp> [file.lp...]",
		Short: "Merge constraints split across lines and strip stray commas",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.Logger()
			if output != "" && len(args) > 1 {
				log.Warn().Msg("--output ignored when repairing multiple files")
				output = ""
			}
			for _, path := range args {
				if err := lp.RepairFile(path, output); err != nil {
					return err
				}
				out := output
				if out == "" {
					out = path
				}
				log.Info().Str("input", path).Str("output", out).Msg("repaired")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: rewrite in place)")

	return cmd
}
