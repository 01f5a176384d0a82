// Package scraper runs the two-phase pipeline for one listing category:
// URL discovery across the paginated listing pages, then retried detail
// scraping for every discovered URL. All browser access goes through a
// single shared session; all failures land in the run's stats recorder.
package scraper

import (
	"errors"
	"time"

	"github.com/propwatch/baliscrape/internal/browser"
	"github.com/propwatch/baliscrape/internal/extractor"
	"github.com/propwatch/baliscrape/internal/ratelimit"
	"github.com/propwatch/baliscrape/internal/retry"
	"github.com/propwatch/baliscrape/internal/stats"
	"github.com/propwatch/baliscrape/pkg/models"
)

// ErrUnknownCategory reports a category with no registered extractor.
var ErrUnknownCategory = errors.New("unknown listing category")

// Options bounds the pipeline's waits and budgets.
type Options struct {
	// PageSettle is the fixed wait after loading a listing page, giving
	// scripts time to render the cards.
	PageSettle time.Duration
	// PagePause is the wait after activating a pagination control.
	PagePause time.Duration
	// PropertyPause spaces out detail-page requests.
	PropertyPause time.Duration
	// CardTimeout bounds the wait for listing cards to become visible.
	CardTimeout time.Duration
	// TitleWait bounds the wait for a title-like element on a detail
	// page before parsing whatever rendered.
	TitleWait time.Duration
	// FailureBudget is the number of consecutive listing-page failures
	// tolerated before discovery gives up on the category.
	FailureBudget int
	// EmptyPageBudget is the number of consecutive pages yielding no new
	// URLs tolerated before discovery concludes the listing is
	// exhausted.
	EmptyPageBudget int
	// MaxScrolls caps the lazy-load scroll loop.
	MaxScrolls int
	// ScrollPause is the wait between scroll steps.
	ScrollPause time.Duration
	// Retry schedules the detail-page attempt loop.
	Retry retry.Schedule
}

// DefaultOptions returns the production pipeline bounds.
func DefaultOptions() Options {
	return Options{
		PageSettle:      3 * time.Second,
		PagePause:       3 * time.Second,
		PropertyPause:   3 * time.Second,
		CardTimeout:     15 * time.Second,
		TitleWait:       15 * time.Second,
		FailureBudget:   3,
		EmptyPageBudget: 2,
		MaxScrolls:      100,
		ScrollPause:     2 * time.Second,
		Retry:           retry.DefaultSchedule(),
	}
}

// Scraper drives both pipeline phases against one browser session.
type Scraper struct {
	session  browser.Session
	registry map[models.Category]extractor.Extractor
	stats    *stats.Recorder
	opts     Options
	pacer    *ratelimit.Pacer
}

// New wires a scraper to a live session and the run's recorder.
func New(session browser.Session, recorder *stats.Recorder, opts Options) *Scraper {
	return &Scraper{
		session:  session,
		registry: extractor.Registry(),
		stats:    recorder,
		opts:     opts,
		pacer:    ratelimit.NewPacer(opts.PropertyPause),
	}
}

// Stats exposes the run's recorder.
func (s *Scraper) Stats() *stats.Recorder {
	return s.stats
}

func (s *Scraper) extractorFor(category models.Category) (extractor.Extractor, error) {
	ex, ok := s.registry[category]
	if !ok {
		s.stats.RecordError(stats.KindInvalidCategory, "", string(category),
			"no extractor registered for category")
		return nil, ErrUnknownCategory
	}
	return ex, nil
}
