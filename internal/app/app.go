// Package app provides the core application initialization and lifecycle
// management shared by the CLI commands and the API server.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/propwatch/baliscrape/internal/browser"
	"github.com/propwatch/baliscrape/internal/config"
	"github.com/propwatch/baliscrape/internal/scraper"
	"github.com/propwatch/baliscrape/internal/stats"
	"github.com/propwatch/baliscrape/pkg/models"
)

// Application holds the configuration and session wiring for scraping
// runs. It is created once at startup and shared across all entry points;
// each run acquires its own browser session and recorder.
type Application struct {
	Config *config.Config
	Logger *zerolog.Logger

	// SessionFactory creates the browser session for a run. Overridable
	// so tests can substitute a fake session.
	SessionFactory func() (browser.Session, error)

	startTime time.Time
}

// New creates an Application: it configures logging from the config and
// wires the default Chrome session factory. No browser is started here;
// sessions are scoped to runs.
func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.NewConsoleWriter()
	}
	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	a := &Application{
		Config:    cfg,
		Logger:    &logger,
		startTime: time.Now(),
	}
	a.SessionFactory = func() (browser.Session, error) {
		return browser.NewChromeSession(browser.Options{
			Headless:   cfg.Headless,
			UserAgent:  cfg.UserAgent,
			Proxy:      cfg.Proxy,
			ChromePath: cfg.ChromePath,
		})
	}
	return a, nil
}

// RunOptions selects what a scraping run covers.
type RunOptions struct {
	// Categories to process, in order. Empty means all categories.
	Categories []models.Category
	// MaxProperties caps the number of properties scraped across the
	// whole run. Zero or negative means unlimited.
	MaxProperties int
	// OnProgress, when non-nil, is invoked after each detail page with
	// the per-category completion counts.
	OnProgress func(done, total int)
}

// Mode names the run's property cap for reporting.
func (o RunOptions) Mode() string {
	if o.MaxProperties > 0 {
		return "limited"
	}
	return "unlimited"
}

// RunResult aggregates everything one scraping run produced.
type RunResult struct {
	URLsByCategory map[string][]string
	Properties     []models.PropertyRecord
	TotalURLs      int
	Mode           string
	Stats          *stats.Recorder
}

// Run executes the full pipeline: one browser session, then URL discovery
// and detail scraping for each requested category. A category whose
// discovery fails is recorded and skipped; an unknown category name fails
// the run. The session is always released.
func (a *Application) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	categories := opts.Categories
	if len(categories) == 0 {
		categories = models.AllCategories()
	}

	session, err := a.SessionFactory()
	if err != nil {
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}
	defer session.Close()

	recorder := stats.NewRecorder()
	recorder.Start()
	defer recorder.Finish()

	sc := scraper.New(session, recorder, a.scraperOptions())
	result := &RunResult{
		URLsByCategory: make(map[string][]string),
		Mode:           opts.Mode(),
		Stats:          recorder,
	}

	remaining := opts.MaxProperties
	for _, category := range categories {
		urls, err := sc.DiscoverURLs(ctx, category)
		if err != nil {
			if errors.Is(err, scraper.ErrUnknownCategory) || ctx.Err() != nil {
				return result, err
			}
			recorder.RecordException(stats.KindCategoryScrapingFailed, "", string(category), err)
			a.Logger.Warn().Err(err).Str("category", string(category)).
				Msg("Skipping category after discovery failure")
			continue
		}
		result.URLsByCategory[string(category)] = urls
		result.TotalURLs += len(urls)

		max := 0
		if opts.MaxProperties > 0 {
			if remaining <= 0 {
				continue
			}
			max = remaining
		}
		records, err := sc.ScrapeDetails(ctx, category, urls, max, opts.OnProgress)
		result.Properties = append(result.Properties, records...)
		if err != nil {
			return result, err
		}
		if opts.MaxProperties > 0 {
			// Failed URLs spend the budget too; the cap bounds visits,
			// not accepted records.
			attempted := len(urls)
			if attempted > max {
				attempted = max
			}
			remaining -= attempted
		}
	}

	a.Logger.Info().
		Int("urls", result.TotalURLs).
		Int("properties", len(result.Properties)).
		Str("mode", result.Mode).
		Msg("Scraping run complete")
	return result, nil
}

// DiscoverOnly runs URL discovery for the requested categories without
// visiting any detail pages.
func (a *Application) DiscoverOnly(ctx context.Context, categories []models.Category) (*RunResult, error) {
	if len(categories) == 0 {
		categories = models.AllCategories()
	}

	session, err := a.SessionFactory()
	if err != nil {
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}
	defer session.Close()

	recorder := stats.NewRecorder()
	recorder.Start()
	defer recorder.Finish()

	sc := scraper.New(session, recorder, a.scraperOptions())
	result := &RunResult{
		URLsByCategory: make(map[string][]string),
		Mode:           "discovery",
		Stats:          recorder,
	}
	for _, category := range categories {
		urls, err := sc.DiscoverURLs(ctx, category)
		if err != nil {
			if errors.Is(err, scraper.ErrUnknownCategory) || ctx.Err() != nil {
				return result, err
			}
			recorder.RecordException(stats.KindCategoryScrapingFailed, "", string(category), err)
			continue
		}
		result.URLsByCategory[string(category)] = urls
		result.TotalURLs += len(urls)
	}
	return result, nil
}

func (a *Application) scraperOptions() scraper.Options {
	opts := scraper.DefaultOptions()
	opts.PageSettle = a.Config.PageSettle
	opts.PagePause = a.Config.PagePause
	opts.PropertyPause = a.Config.PropertyPause
	opts.CardTimeout = a.Config.CardTimeout
	opts.TitleWait = a.Config.ElementTimeout
	opts.FailureBudget = a.Config.FailureBudget
	opts.EmptyPageBudget = a.Config.EmptyPageBudget
	opts.MaxScrolls = a.Config.MaxScrolls
	opts.ScrollPause = a.Config.ScrollPause
	opts.Retry.MaxAttempts = a.Config.DetailAttempts
	return opts
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
