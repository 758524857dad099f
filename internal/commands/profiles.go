package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newProfilesCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List bank profiles and their income and expense columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			reg, err := cfg.Registry()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tINCOME\tEXPENSE\tDESCRIPTION")
			for _, p := range reg.All() {
				name := p.Name
				if strings.EqualFold(p.Name, cfg.DefaultProfile) {
					name += " *"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name,
					strings.Join(p.Columns.Income, ", "),
					strings.Join(p.Columns.Expense, ", "),
					p.Description)
			}
			return tw.Flush()
		},
	}
}
