package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/config"
	"github.com/cleared-dev/statements/internal/export"
	"github.com/cleared-dev/statements/internal/logger"
	"github.com/cleared-dev/statements/internal/service"
)

type normalizeFlags struct {
	profile   string
	headerRow int
	timezone  string
	from      string
	to        string
	format    string
	daily     bool
	out       string
}

func newNormalizeCommand(configPath *string) *cobra.Command {
	var f normalizeFlags

	cmd := &cobra.Command{
		Use:   "normalize <file>",
		Short: "Normalize a statement file into transactions and daily series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.format != "json" && f.format != "csv" {
				return fmt.Errorf("unknown format %q (want json or csv)", f.format)
			}
			if f.headerRow < 0 {
				return fmt.Errorf("--header-row must be >= 0, got %d", f.headerRow)
			}
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("header-row") {
				f.headerRow = -1
			}
			return runNormalize(cmd, cfg, args[0], f)
		},
	}

	cmd.Flags().StringVar(&f.profile, "profile", "", "bank profile (default from config)")
	cmd.Flags().IntVar(&f.headerRow, "header-row", 0, "zero-based index of the header row (default from config)")
	cmd.Flags().StringVar(&f.timezone, "tz", "", "institution timezone (default from config)")
	cmd.Flags().StringVar(&f.from, "from", "", "drop transactions before this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "drop transactions after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.format, "format", "json", "output format: json or csv")
	cmd.Flags().BoolVar(&f.daily, "daily", false, "with --format csv, write the daily series instead of transactions")
	cmd.Flags().StringVar(&f.out, "out", "", "output file (default stdout)")

	return cmd
}

func runNormalize(cmd *cobra.Command, cfg *config.Config, path string, f normalizeFlags) error {
	if f.timezone != "" {
		cfg.Timezone = f.timezone
	}
	svc, err := newService(cfg)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer file.Close()

	req := service.Request{
		FileName: filepath.Base(path),
		Profile:  f.profile,
		From:     f.from,
		To:       f.to,
	}
	if f.headerRow >= 0 {
		req.HeaderRow = &f.headerRow
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	out, err := svc.Process(logger.WithContext(cmd.Context(), log), file, req)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if f.out != "" {
		dst, err := os.Create(f.out)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer dst.Close()
		w = dst
	}

	if err := writeOutput(w, out, f); err != nil {
		return err
	}
	if f.out != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d transactions to %s\n", len(out.Transactions), f.out)
	}
	return nil
}

func writeOutput(w io.Writer, out service.Output, f normalizeFlags) error {
	switch {
	case f.format == "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		return nil
	case f.daily:
		return export.WriteDaily(w, out.DailyBuckets, out.DailyCloses)
	default:
		return export.WriteTransactions(w, out.Transactions)
	}
}

// newService builds a statement service from cfg.
func newService(cfg *config.Config) (*service.Service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	profiles, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	return service.New(service.Params{
		Profiles:       profiles,
		Location:       loc,
		HeaderRow:      cfg.HeaderRow,
		DefaultProfile: cfg.DefaultProfile,
	}), nil
}
