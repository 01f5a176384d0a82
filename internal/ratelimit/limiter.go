// Package ratelimit paces requests against the target site. The pipeline
// is strictly sequential, so pacing is about spacing requests out, not
// about throttling concurrency.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum interval between requests using a token bucket
// with burst 1, so the first request passes immediately and every
// subsequent one waits out the remainder of the interval.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer with the given minimum interval between
// requests. A non-positive interval yields a pacer that never waits.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next request may proceed or the context is
// cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Allow reports whether a request could proceed right now without
// blocking, consuming the slot if so.
func (p *Pacer) Allow() bool {
	return p.limiter.Allow()
}
