// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/propwatch/baliscrape/internal/app"
	"github.com/propwatch/baliscrape/internal/config"
	"github.com/propwatch/baliscrape/pkg/models"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "baliscrape",
	Short:   "Scrape Bali Exception property listings",
	Long: `Baliscrape walks the Bali Exception listing sites with a headless
browser, extracts structured property records from every detail page, and
exports the results as JSON, CSV, or an Excel workbook.`,
	Version: "1.0.0",
}

// ExecuteContext adds all child commands to the root command and runs it
// under ctx. This is called by main.main().
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd)

	// Lazily initialize the application before running commands (avoid
	// starting it for -h/help)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if GetApp() != nil {
			return nil
		}
		cfg, err := config.Load(rootCmd)
		if err != nil {
			return err
		}
		application, err := app.New(cfg)
		if err != nil {
			return err
		}
		SetApp(application)
		return nil
	}
}

// parseCategoryArgs validates the --categories flag value. Empty means
// every category.
func parseCategoryArgs(raw []string) ([]models.Category, error) {
	if len(raw) == 0 {
		return models.AllCategories(), nil
	}
	var categories []models.Category
	for _, name := range raw {
		c := models.Category(strings.TrimSpace(name))
		if !c.Valid() {
			return nil, fmt.Errorf("unknown category %q (valid: %s)", name, knownCategoryNames())
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func knownCategoryNames() string {
	all := models.AllCategories()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
