package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/propwatch/baliscrape/internal/extractor"
	"github.com/propwatch/baliscrape/internal/retry"
	"github.com/propwatch/baliscrape/internal/stats"
	"github.com/propwatch/baliscrape/pkg/models"
)

// Wait for fallback title shapes once the primary selector has timed out.
const fallbackTitleWait = 5 * time.Second

// ScrapeDetails visits each discovered URL and extracts a property record,
// retrying each page on the schedule before recording it as failed. When
// max is positive only the first max URLs are visited. onProgress, when
// non-nil, is invoked after every URL with the number of URLs finished and
// the total planned.
func (s *Scraper) ScrapeDetails(ctx context.Context, category models.Category, urls []string, max int, onProgress func(done, total int)) ([]models.PropertyRecord, error) {
	ex, err := s.extractorFor(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, category)
	}

	if max > 0 && len(urls) > max {
		urls = urls[:max]
	}
	log.Info().Str("category", string(category)).Int("urls", len(urls)).Msg("Starting detail scraping")

	records := make([]models.PropertyRecord, 0, len(urls))
	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		if err := s.pacer.Wait(ctx); err != nil {
			return records, err
		}

		s.stats.URLAttempted()
		rec, ok := s.scrapeOne(ctx, ex, url)
		if ok {
			s.stats.PropertyAccepted()
			records = append(records, rec)
		} else {
			s.stats.RecordError(stats.KindExtractionFailed, url, string(category),
				fmt.Sprintf("no usable content after %d attempts", s.opts.Retry.MaxAttempts))
		}

		if onProgress != nil {
			onProgress(i+1, len(urls))
		}
		if (i+1)%50 == 0 {
			log.Info().Int("done", i+1).Int("total", len(urls)).Int("extracted", len(records)).
				Msg("Detail scraping progress")
		}
	}

	log.Info().Str("category", string(category)).
		Int("extracted", len(records)).Int("urls", len(urls)).
		Msg("Detail scraping finished")
	return records, nil
}

// scrapeOne runs the attempt loop for a single detail URL. A record is
// accepted as soon as an attempt yields a usable title; exhausting the
// schedule reports failure without an error value, the caller owns the
// ledger entry.
func (s *Scraper) scrapeOne(ctx context.Context, ex extractor.Extractor, url string) (models.PropertyRecord, bool) {
	schedule := s.opts.Retry

	for attempt := 0; attempt < schedule.MaxAttempts; attempt++ {
		if attempt > 0 {
			if err := retry.Sleep(ctx, schedule.Backoff(attempt-1)); err != nil {
				return models.PropertyRecord{}, false
			}
		}

		rec, err := s.attemptDetail(ctx, ex, url, attempt)
		if err != nil {
			log.Warn().Err(err).Str("url", url).Int("attempt", attempt+1).
				Msg("Detail page attempt failed")
			continue
		}
		if rec.Usable() {
			log.Debug().Str("url", url).Int("attempt", attempt+1).Str("title", rec.Title).
				Msg("Property extracted")
			return rec, true
		}
		log.Warn().Str("url", url).Int("attempt", attempt+1).
			Msg("Detail page rendered without a title")
	}
	return models.PropertyRecord{}, false
}

// attemptDetail performs one navigate-wait-parse cycle. Render waits grow
// with the attempt number so a slow page gets more time on each retry.
func (s *Scraper) attemptDetail(ctx context.Context, ex extractor.Extractor, url string, attempt int) (models.PropertyRecord, error) {
	if err := s.session.Navigate(ctx, url); err != nil {
		return models.PropertyRecord{}, fmt.Errorf("navigation failed: %w", err)
	}
	if err := retry.Sleep(ctx, s.opts.Retry.RenderWait(attempt)); err != nil {
		return models.PropertyRecord{}, err
	}
	s.waitForTitle(ctx, ex)

	html, err := s.session.PageSource(ctx)
	if err != nil {
		return models.PropertyRecord{}, fmt.Errorf("failed to read detail page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.PropertyRecord{}, fmt.Errorf("failed to parse detail page: %w", err)
	}

	return ex.ParseDetails(doc, url).Build(), nil
}

// waitForTitle gives the title-like elements a bounded chance to render.
// Best effort only; parsing proceeds with whatever the page shows.
func (s *Scraper) waitForTitle(ctx context.Context, ex extractor.Extractor) {
	wait := s.opts.TitleWait
	for _, sel := range ex.TitleSelectors() {
		if err := s.session.WaitVisible(ctx, sel, wait); err == nil {
			return
		}
		wait = fallbackTitleWait
	}
	log.Debug().Msg("No title element became visible before timeout")
}
