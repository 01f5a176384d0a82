package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/propwatch/baliscrape/internal/extractor"
	"github.com/propwatch/baliscrape/internal/retry"
	"github.com/propwatch/baliscrape/internal/stats"
	"github.com/propwatch/baliscrape/pkg/models"
)

// DiscoverURLs walks the category's paginated listing and returns every
// distinct detail-page URL in first-seen order. Pagination ends normally
// when no next-page control appears; it ends early when the consecutive
// failure budget or the consecutive empty-page budget runs out.
func (s *Scraper) DiscoverURLs(ctx context.Context, category models.Category) ([]string, error) {
	ex, err := s.extractorFor(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, category)
	}

	listing := ex.BaseURL() + ex.Endpoint()
	log.Info().Str("category", string(category)).Str("url", listing).Msg("Starting URL discovery")

	if err := s.session.Navigate(ctx, listing); err != nil {
		s.stats.RecordException(stats.KindNavigationFailed, listing, string(category), err)
		return nil, fmt.Errorf("failed to open listing page: %w", err)
	}
	if err := retry.Sleep(ctx, s.opts.PageSettle); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var urls []string
	page := 1
	failures := 0
	empties := 0

	for {
		if err := ctx.Err(); err != nil {
			return urls, err
		}

		pageURLs, err := s.collectListingPage(ctx, ex)
		if err != nil {
			failures++
			s.stats.RecordException(stats.KindPageScrapingFailed, listing, string(category), err)
			log.Warn().Err(err).Int("page", page).Int("consecutive_failures", failures).
				Msg("Listing page yielded no URLs")
			if failures >= s.opts.FailureBudget {
				log.Error().Str("category", string(category)).Int("page", page).
					Msg("Failure budget exhausted, stopping discovery")
				break
			}
		} else {
			fresh := 0
			for _, u := range pageURLs {
				if !seen[u] {
					seen[u] = true
					urls = append(urls, u)
					fresh++
				}
			}
			log.Debug().Int("page", page).Int("new_urls", fresh).Int("total_urls", len(urls)).
				Msg("Listing page collected")

			if fresh == 0 {
				// An empty page is not a failure, but it does not
				// forgive earlier ones either.
				empties++
				if empties >= s.opts.EmptyPageBudget {
					log.Info().Str("category", string(category)).Int("page", page).
						Msg("No new URLs on consecutive pages, listing exhausted")
					break
				}
			} else {
				failures = 0
				empties = 0
			}
		}

		if !ex.NextPage(ctx, s.session, page) {
			break
		}
		page++
		if err := retry.Sleep(ctx, s.opts.PagePause); err != nil {
			return urls, err
		}
	}

	log.Info().Str("category", string(category)).Int("pages", page).Int("urls", len(urls)).
		Msg("URL discovery finished")
	return urls, nil
}

// collectListingPage waits for the current page's cards, runs the
// lazy-load scroll when the category needs it, and extracts the card URLs
// from the rendered source.
func (s *Scraper) collectListingPage(ctx context.Context, ex extractor.Extractor) ([]string, error) {
	if err := s.session.WaitVisible(ctx, ex.CardSelector(), s.opts.CardTimeout); err != nil {
		return nil, fmt.Errorf("listing cards did not appear: %w", err)
	}
	if ex.LazyLoad() {
		s.scrollToBottom(ctx)
	}

	html, err := s.session.PageSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}
	return ex.ExtractURLs(doc), nil
}

// scrollToBottom repeatedly scrolls the page to trigger lazy-loaded cards,
// stopping when the document height stabilizes or the scroll cap is hit.
func (s *Scraper) scrollToBottom(ctx context.Context) {
	var lastHeight float64
	for i := 0; i < s.opts.MaxScrolls; i++ {
		if err := s.session.Evaluate(ctx, "window.scrollTo(0, document.body.scrollHeight)", nil); err != nil {
			log.Debug().Err(err).Msg("Scroll step failed")
			return
		}
		if err := retry.Sleep(ctx, s.opts.ScrollPause); err != nil {
			return
		}
		var height float64
		if err := s.session.Evaluate(ctx, "document.body.scrollHeight", &height); err != nil {
			log.Debug().Err(err).Msg("Height check failed")
			return
		}
		if height == lastHeight {
			log.Debug().Int("scrolls", i+1).Msg("Page height stable, lazy load complete")
			return
		}
		lastHeight = height
	}
	log.Debug().Int("scrolls", s.opts.MaxScrolls).Msg("Scroll cap reached")
}
