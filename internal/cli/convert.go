package cli

import (
	"github.com/spf13/cobra"

	"github.com/vqetools/portlab/internal/logger"
	"github.com/vqetools/portlab/internal/lp"
)

// ConvertCommand re-linearizes one or more LP files.
func ConvertCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert <file.lp> [file.lp...]",
		Short: "Re-linearize solver LP files into the single-line dialect",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.Logger()
			if output != "" && len(args) > 1 {
				log.Warn().Msg("--output ignored when converting multiple files")
				output = ""
			}
			for _, path := range args {
				res, err := lp.ConvertFile(path, output)
				if err != nil {
					return err
				}
				for _, d := range res.Diagnostics {
					log.Warn().
						Str("file", path).
						Str("constraint", d.Constraint).
						Str("kind", d.Kind.String()).
						Msg(d.Message)
				}
				log.Info().
					Str("input", path).
					Str("output", res.OutputPath).
					Int("constraints", res.NumConstraints()).
					Int("variables", res.NumVariables()).
					Msg("converted")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default converted_problems/<stem>_converted.lp)")

	return cmd
}
