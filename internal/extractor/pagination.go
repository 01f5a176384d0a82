package extractor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/propwatch/baliscrape/internal/browser"
)

const (
	// Wait for the primary pagination control before concluding the last
	// page was reached.
	numberedControlWait = 15 * time.Second
	// Fallback controls get a shorter look.
	fallbackControlWait = 5 * time.Second
)

// paginationCandidate is one plausible shape of the next-page control.
type paginationCandidate struct {
	selector string
	wait     time.Duration
}

// nextPageCandidates returns the ordered strategy list for reaching page
// target. Both category sites run the same JetSmartFilters pagination, with
// a generic "next" link as a fallback for markup drift.
func nextPageCandidates(target int) []paginationCandidate {
	return []paginationCandidate{
		{fmt.Sprintf(`.jet-filters-pagination__item[data-value="%d"]`, target), numberedControlWait},
		{`.jet-filters-pagination__item.prev-next.next`, fallbackControlWait},
	}
}

// clickNextPage tries each candidate control in priority order and clicks
// the first one that becomes visible within its bounded wait. Returns
// false, without error, when no control turned up: that is the normal
// last-page signal.
func clickNextPage(ctx context.Context, s browser.Session, currentPage int) bool {
	target := currentPage + 1

	for _, candidate := range nextPageCandidates(target) {
		if err := s.WaitVisible(ctx, candidate.selector, candidate.wait); err != nil {
			log.Debug().
				Str("selector", candidate.selector).
				Int("page", target).
				Msg("Pagination control not found")
			continue
		}
		if err := s.ClickByScript(ctx, candidate.selector); err != nil {
			log.Warn().
				Err(err).
				Str("selector", candidate.selector).
				Int("page", target).
				Msg("Failed to click pagination control")
			continue
		}
		log.Debug().Int("page", target).Msg("Navigated to next page")
		return true
	}

	log.Debug().Int("page", target).Msg("No next-page control, likely last page")
	return false
}
