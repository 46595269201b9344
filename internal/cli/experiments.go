package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vqetools/portlab/internal/doe"
)

// ExperimentsCommand groups the experiment-table subcommands.
func ExperimentsCommand() *cobra.Command {
	var tableFile string

	cmd := &cobra.Command{
		Use:   "experiments",
		Short: "Inspect the design-of-experiments table",
	}

	cmd.PersistentFlags().StringVar(&tableFile, "table", "", "YAML file overlaying the built-in experiment table")

	loadTable := func() (map[string]doe.Config, error) {
		if tableFile == "" {
			return doe.Table(), nil
		}
		return doe.LoadTable(tableFile)
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List experiment IDs with their key settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}
			for _, id := range doe.IDs(table) {
				cfg := table[id]
				fmt.Fprintf(cmd.OutOrStdout(), "%-55s %-10s %-16s reps=%d alpha=%g\n",
					id, cfg.Ansatz, cfg.Device, cfg.AnsatzParams.Reps, cfg.Alpha)
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <experiment-id>",
		Short: "Print the full configuration of one experiment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}
			cfg, ok := table[args[0]]
			if !ok {
				return fmt.Errorf("unknown experiment %q", args[0])
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.AddCommand(list, show)

	return cmd
}
