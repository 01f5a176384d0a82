package api

import (
	"github.com/propwatch/baliscrape/internal/export"
	"github.com/propwatch/baliscrape/internal/stats"
	"github.com/propwatch/baliscrape/pkg/models"
)

// scrapeRequest is the body of POST /api/v1/scrape. An empty category list
// means every category; a zero max means unlimited. An explicit
// unlimited=true wins over any max_properties value.
type scrapeRequest struct {
	Categories    []string `json:"categories"`
	MaxProperties int      `json:"max_properties"`
	Unlimited     bool     `json:"unlimited"`
	SaveToSheets  bool     `json:"save_to_sheets"`
}

// urlsRequest is the body of POST /api/v1/urls.
type urlsRequest struct {
	Categories []string `json:"categories"`
}

type errorResponse struct {
	Error             string   `json:"error"`
	InvalidCategories []string `json:"invalid_categories,omitempty"`
	ValidCategories   []string `json:"valid_categories,omitempty"`
}

// performance carries the run's ledger summary in API form.
type performance struct {
	SuccessRate  string `json:"success_rate"`
	TotalErrors  int    `json:"total_errors"`
	ScrapingTime string `json:"scraping_time"`
}

type scrapeResponse struct {
	CategoriesProcessed []string                 `json:"categories_processed"`
	TotalURLsFound      int                      `json:"total_urls_found"`
	PropertiesScraped   int                      `json:"properties_scraped"`
	ScrapingMode        string                   `json:"scraping_mode"`
	Properties          []models.PropertyRecord  `json:"properties"`
	Performance         performance              `json:"performance"`
	Sheets              *export.SheetResult      `json:"sheets,omitempty"`
	RecentErrors        []stats.ErrorEntry       `json:"recent_errors,omitempty"`
}

type urlsResponse struct {
	CategoriesProcessed []string            `json:"categories_processed"`
	TotalURLsFound      int                 `json:"total_urls_found"`
	CountsByCategory    map[string]int      `json:"counts_by_category"`
	URLs                map[string][]string `json:"urls"`
}

type infoResponse struct {
	Service    string            `json:"service"`
	Version    string            `json:"version"`
	Uptime     string            `json:"uptime"`
	Categories []string          `json:"categories"`
	Sources    map[string]string `json:"sources"`
	Endpoints  map[string]string `json:"endpoints"`
}
