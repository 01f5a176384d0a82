// internal/cli/urls.go
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	urlsCategories []string
	urlsOutput     string
)

// urlsCmd represents the urls command
var urlsCmd = &cobra.Command{
	Use:   "urls",
	Short: "Discover listing URLs without scraping details",
	Long: `Walks the paginated listing pages for the selected categories and
prints every discovered detail-page URL, grouped by category. No detail
page is visited.`,
	Example: `  # Discover all listing URLs
  baliscrape urls

  # Only rental listings, saved to a file
  baliscrape urls --categories for-rent --output urls.json`,
	RunE: runURLs,
}

func init() {
	rootCmd.AddCommand(urlsCmd)

	urlsCmd.Flags().StringSliceVarP(&urlsCategories, "categories", "c", nil, "Categories to cover (default: all)")
	urlsCmd.Flags().StringVarP(&urlsOutput, "output", "o", "", "File path for the JSON result (default: stdout)")
}

func runURLs(cmd *cobra.Command, args []string) error {
	application := GetApp()
	categories, err := parseCategoryArgs(urlsCategories)
	if err != nil {
		return err
	}

	result, err := application.DiscoverOnly(cmd.Context(), categories)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(result.URLsByCategory, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode URLs: %w", err)
	}
	if urlsOutput != "" {
		if err := os.WriteFile(urlsOutput, payload, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Println(string(payload))
	}

	fmt.Fprintf(os.Stderr, "discovered %d urls across %d categories\n",
		result.TotalURLs, len(result.URLsByCategory))
	return nil
}
