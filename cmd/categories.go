package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/productivity-journal/internal/category"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show the active category table",
	Long: `Show the categories tasks are classified into, in match order.
A task belongs to the first category with a keyword contained in its text;
tasks matching nothing fall back to General.`,
	Args: cobra.NoArgs,
	RunE: runCategories,
}

func runCategories(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	table := loadCategories(cfg)

	source := "built-in"
	if _, err := os.Stat(cfg.CategoriesFile); err == nil {
		source = cfg.CategoriesFile
	}
	fmt.Printf("Categories (%s):\n", source)

	nameWidth := len(category.FallbackName)
	for _, c := range table {
		nameWidth = max(nameWidth, len(c.Name))
	}
	for _, c := range table {
		fmt.Printf("  %-*s  %2d  %s\n", nameWidth, c.Name, c.Score, strings.Join(c.Keywords, ", "))
	}
	fallback := category.General()
	fmt.Printf("  %-*s  %2d  (fallback)\n", nameWidth, fallback.Name, fallback.Score)
	return nil
}
