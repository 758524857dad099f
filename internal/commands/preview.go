package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newPreviewCommand(configPath *string) *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show the first rows of a statement file as read, to find the header row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rows < 0 {
				return fmt.Errorf("--rows must be >= 0, got %d", rows)
			}
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			svc, err := newService(cfg)
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening statement: %w", err)
			}
			defer file.Close()

			sheet, cells, err := svc.Preview(filepath.Base(args[0]), file, rows)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sheet: %s\n", sheet)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for i, row := range cells {
				fmt.Fprintf(tw, "%d\t%s\n", i, strings.Join(row, "\t"))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 20, "number of rows to show (0 for all)")

	return cmd
}
