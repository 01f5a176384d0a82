// internal/cli/scrape.go
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/propwatch/baliscrape/internal/app"
	"github.com/propwatch/baliscrape/internal/export"
	"github.com/propwatch/baliscrape/internal/ui"
)

var (
	scrapeCategories []string
	maxProperties    int
	jsonPath         string
	csvPath          string
	xlsxPath         string
	sheetName        string
	errorReportPath  string
	showProgress     bool
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run the full scraping pipeline",
	Long: `Discovers every listing URL for the selected categories, visits each
detail page with retries, and writes the extracted records to the chosen
output formats.`,
	Example: `  # Scrape everything, print JSON to stdout
  baliscrape scrape

  # Scrape only sale listings, capped at 50 properties
  baliscrape scrape --categories for-sale --max 50

  # Write CSV and an Excel workbook
  baliscrape scrape --csv props.csv --xlsx props.xlsx --sheet Bali_Exception

  # Keep a JSON report of every scraping error
  baliscrape scrape --error-report errors.json`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringSliceVarP(&scrapeCategories, "categories", "c", nil, "Categories to scrape (default: all)")
	scrapeCmd.Flags().IntVarP(&maxProperties, "max", "m", 0, "Maximum properties to scrape (0 = unlimited)")
	scrapeCmd.Flags().StringVarP(&jsonPath, "output", "o", "", "File path for the JSON result (default: stdout)")
	scrapeCmd.Flags().StringVar(&csvPath, "csv", "", "File path for a CSV export")
	scrapeCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "File path for an Excel workbook export")
	scrapeCmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet name for the workbook export")
	scrapeCmd.Flags().StringVar(&errorReportPath, "error-report", "", "File path for a JSON error report")
	scrapeCmd.Flags().BoolVar(&showProgress, "progress", true, "Show a progress bar during detail scraping")
}

func runScrape(cmd *cobra.Command, args []string) error {
	application := GetApp()
	categories, err := parseCategoryArgs(scrapeCategories)
	if err != nil {
		return err
	}

	opts := app.RunOptions{
		Categories:    categories,
		MaxProperties: maxProperties,
	}
	var bar *progressbar.ProgressBar
	if showProgress {
		opts.OnProgress = func(done, total int) {
			if bar == nil || bar.GetMax() != total {
				bar = progressbar.Default(int64(total), "scraping details")
			}
			_ = bar.Set(done)
		}
	}

	result, err := application.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	if err := writeOutputs(application, result); err != nil {
		return err
	}
	printSummary(result)
	return nil
}

func writeOutputs(application *app.Application, result *app.RunResult) error {
	payload, err := json.MarshalIndent(result.Properties, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode properties: %w", err)
	}
	if jsonPath != "" {
		if err := os.WriteFile(jsonPath, payload, 0o644); err != nil {
			return fmt.Errorf("failed to write JSON output: %w", err)
		}
		log.Info().Str("path", jsonPath).Msg("JSON output written")
	} else {
		fmt.Println(string(payload))
	}

	if csvPath != "" {
		if err := export.SaveCSV(result.Properties, csvPath); err != nil {
			return err
		}
	}
	if xlsxPath != "" {
		sheet := sheetName
		if sheet == "" {
			sheet = application.Config.SheetName
		}
		if _, err := export.SaveWorkbook(result.Properties, xlsxPath, sheet); err != nil {
			return err
		}
	}
	if errorReportPath != "" {
		if err := result.Stats.WriteReport(errorReportPath); err != nil {
			return err
		}
		log.Info().Str("path", errorReportPath).Msg("Error report written")
	}
	return nil
}

func printSummary(result *app.RunResult) {
	summary := result.Stats.Summarize()

	fmt.Fprintln(os.Stderr, ui.Bold("Scraping summary"))
	fmt.Fprintf(os.Stderr, "  mode:       %s\n", result.Mode)
	fmt.Fprintf(os.Stderr, "  urls found: %d\n", result.TotalURLs)
	fmt.Fprintf(os.Stderr, "  extracted:  %s\n", ui.Success(fmt.Sprintf("%d", summary.PropertiesExtracted)))
	fmt.Fprintf(os.Stderr, "  failed:     %d\n", summary.URLsFailed)
	fmt.Fprintf(os.Stderr, "  rate:       %.1f%%\n", summary.SuccessRate)
	fmt.Fprintf(os.Stderr, "  elapsed:    %s\n", summary.TotalTime.Round(time.Second))

	if summary.ErrorCount > 0 {
		fmt.Fprintf(os.Stderr, "  errors:     %s\n", ui.Error(fmt.Sprintf("%d", summary.ErrorCount)))
		var kinds []string
		for kind, n := range summary.ErrorsByKind {
			kinds = append(kinds, fmt.Sprintf("%s=%d", kind, n))
		}
		fmt.Fprintf(os.Stderr, "  by kind:    %s\n", strings.Join(kinds, " "))
	}
}
