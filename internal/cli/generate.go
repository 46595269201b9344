package cli

import (
	"github.com/spf13/cobra"

	"github.com/vqetools/portlab/internal/logger"
	"github.com/vqetools/portlab/internal/lp"
	"github.com/vqetools/portlab/internal/portfolio"
)

// GenerateCommand writes the synthetic portfolio problem suite.
func GenerateCommand() *cobra.Command {
	var outDir string
	var seed uint64
	var convert bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the synthetic portfolio LP problem suite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.Logger()

			gen := portfolio.NewGenerator(seed)
			problems, err := gen.WriteSuite(outDir, portfolio.DefaultSuite)
			if err != nil {
				return err
			}
			for _, p := range problems {
				log.Info().
					Str("problem", p.Name).
					Int("assets", p.NAssets).
					Int("constraints", p.NumConstraints).
					Msg("generated")
				if !convert {
					continue
				}
				res, err := lp.ConvertFile(p.LPPath, "")
				if err != nil {
					return err
				}
				log.Debug().Str("output", res.OutputPath).Msg("converted")
			}
			log.Info().Int("problems", len(problems)).Str("dir", outDir).Msg("suite complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "d", "vanguard_problems", "directory to write problems into")
	cmd.Flags().Uint64Var(&seed, "seed", portfolio.DefaultSeed, "random seed for market data")
	cmd.Flags().BoolVar(&convert, "convert", true, "re-linearize each generated file into converted_problems/")

	return cmd
}
