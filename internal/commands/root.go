package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/buildinfo"
	"github.com/cleared-dev/statements/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "statements",
		Short:   "Normalize bank statement exports into daily and cumulative series",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.FileName, "path to statements.yaml")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newNormalizeCommand(&configPath))
	rootCmd.AddCommand(newPreviewCommand(&configPath))
	rootCmd.AddCommand(newProfilesCommand(&configPath))
	rootCmd.AddCommand(newServeCommand(&configPath))

	return rootCmd
}

// loadConfig reads the config file named by --config, falling back to
// defaults when it does not exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}
