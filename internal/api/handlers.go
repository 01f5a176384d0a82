package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/propwatch/baliscrape/internal/app"
	"github.com/propwatch/baliscrape/internal/export"
	"github.com/propwatch/baliscrape/internal/extractor"
	"github.com/propwatch/baliscrape/pkg/models"
)

// Service is the scraping capability the handlers depend on. *app.Application
// satisfies it; tests substitute a stub so no browser is involved.
type Service interface {
	Run(ctx context.Context, opts app.RunOptions) (*app.RunResult, error)
	DiscoverOnly(ctx context.Context, categories []models.Category) (*app.RunResult, error)
	Uptime() time.Duration
}

// Exporter writes records to a workbook. Split from export.SaveWorkbook so
// handler tests do not touch the filesystem.
type Exporter func(records []models.PropertyRecord, path, sheetName string) (export.SheetResult, error)

// Handlers owns the HTTP surface over one Service.
type Handlers struct {
	service   Service
	exporter  Exporter
	sheetName string
	exportTo  string
}

// NewHandlers wires the API handlers. exporter may be nil, disabling the
// save_to_sheets option.
func NewHandlers(service Service, exporter Exporter, sheetName, exportPath string) *Handlers {
	return &Handlers{
		service:   service,
		exporter:  exporter,
		sheetName: sheetName,
		exportTo:  exportPath,
	}
}

// parseCategories validates the requested category names. An empty request
// means every category. The invalid names are reported together so a
// caller can fix the whole request in one pass.
func parseCategories(names []string) ([]models.Category, []string) {
	if len(names) == 0 {
		return models.AllCategories(), nil
	}
	var categories []models.Category
	var invalid []string
	for _, name := range names {
		c := models.Category(name)
		if !c.Valid() {
			invalid = append(invalid, name)
			continue
		}
		categories = append(categories, c)
	}
	return categories, invalid
}

func validCategoryNames() []string {
	all := models.AllCategories()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = string(c)
	}
	return names
}

func (h *Handlers) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	categories, invalid := parseCategories(req.Categories)
	if len(invalid) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:             "unknown categories requested",
			InvalidCategories: invalid,
			ValidCategories:   validCategoryNames(),
		})
		return
	}

	maxProperties := req.MaxProperties
	if req.Unlimited {
		maxProperties = 0
	}
	result, err := h.service.Run(r.Context(), app.RunOptions{
		Categories:    categories,
		MaxProperties: maxProperties,
	})
	if err != nil {
		log.Error().Err(err).Msg("Scraping run failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	resp := buildScrapeResponse(categories, result)
	if req.SaveToSheets {
		resp.Sheets = h.exportRecords(result.Properties)
	}
	writeJSON(w, http.StatusOK, resp)
}

func buildScrapeResponse(categories []models.Category, result *app.RunResult) scrapeResponse {
	summary := result.Stats.Summarize()
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}

	properties := result.Properties
	if properties == nil {
		properties = []models.PropertyRecord{}
	}

	return scrapeResponse{
		CategoriesProcessed: names,
		TotalURLsFound:      result.TotalURLs,
		PropertiesScraped:   len(result.Properties),
		ScrapingMode:        result.Mode,
		Properties:          properties,
		Performance: performance{
			SuccessRate:  fmt.Sprintf("%.1f%%", summary.SuccessRate),
			TotalErrors:  summary.ErrorCount,
			ScrapingTime: summary.TotalTime.Round(time.Millisecond).String(),
		},
		RecentErrors: summary.RecentErrors,
	}
}

func (h *Handlers) exportRecords(records []models.PropertyRecord) *export.SheetResult {
	if h.exporter == nil {
		return &export.SheetResult{Message: "sheet export is not configured"}
	}
	res, err := h.exporter(records, h.exportTo, h.sheetName)
	if err != nil {
		log.Error().Err(err).Msg("Sheet export failed")
		res = export.SheetResult{Message: err.Error()}
	}
	return &res
}

func (h *Handlers) handleURLs(w http.ResponseWriter, r *http.Request) {
	var req urlsRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}

	categories, invalid := parseCategories(req.Categories)
	if len(invalid) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:             "unknown categories requested",
			InvalidCategories: invalid,
			ValidCategories:   validCategoryNames(),
		})
		return
	}

	result, err := h.service.DiscoverOnly(r.Context(), categories)
	if err != nil {
		log.Error().Err(err).Msg("URL discovery failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	counts := make(map[string]int, len(result.URLsByCategory))
	for cat, urls := range result.URLsByCategory {
		counts[cat] = len(urls)
	}
	writeJSON(w, http.StatusOK, urlsResponse{
		CategoriesProcessed: names,
		TotalURLsFound:      result.TotalURLs,
		CountsByCategory:    counts,
		URLs:                result.URLsByCategory,
	})
}

func (h *Handlers) handleInfo(w http.ResponseWriter, _ *http.Request) {
	sources := make(map[string]string)
	for cat, ex := range extractor.Registry() {
		sources[string(cat)] = ex.BaseURL() + ex.Endpoint()
	}
	writeJSON(w, http.StatusOK, infoResponse{
		Service:    "baliscrape",
		Version:    Version,
		Uptime:     h.service.Uptime().Round(time.Second).String(),
		Categories: validCategoryNames(),
		Sources:    sources,
		Endpoints: map[string]string{
			"GET /api/v1/info":    "service metadata",
			"POST /api/v1/urls":   "discover listing URLs without scraping details",
			"POST /api/v1/scrape": "run the full scraping pipeline",
		},
	})
}

// decodeBody parses an optional JSON request body. An empty body leaves
// the destination zero-valued.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
