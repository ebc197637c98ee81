package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/productivity-journal/internal/category"
	"github.com/Tiliavir/productivity-journal/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "pj",
	Short: "Productivity journal – log tasks as you switch and score your day",
	Long: `pj records what you work on, one task at a time. Each task runs until the
next one starts. Tasks are classified into productivity categories by keyword
and the day is summarised with a weighted productivity score.

Run pj without a subcommand to start the interactive journal.
Settings live in ~/.pj/config.json.`,
	Args:          cobra.NoArgs,
	RunE:          runTrack,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(outlookCmd)
}

// loadConfig reads ~/.pj/config.json. A broken file is reported as a warning
// and the defaults are used.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return cfg
}

// loadCategories returns the configured category table. An invalid table is
// a user error.
func loadCategories(cfg config.Config) category.Table {
	table, err := category.Load(cfg.CategoriesFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return table
}
