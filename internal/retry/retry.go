// Package retry defines the bounded attempt schedule used when a detail
// page refuses to yield a usable record on the first pass.
package retry

import (
	"context"
	"time"
)

// Schedule describes the per-URL attempt loop: how many attempts are made,
// how long each attempt waits for the page to render, and how long to back
// off before the next attempt.
type Schedule struct {
	// MaxAttempts bounds the attempt loop.
	MaxAttempts int
	// RenderBase is the render wait on the first attempt.
	RenderBase time.Duration
	// RenderStep is added to the render wait on each subsequent attempt.
	RenderStep time.Duration
	// BackoffStep scales the wait between failed attempts.
	BackoffStep time.Duration
}

// DefaultSchedule matches the pipeline's progressive waits: renders of
// 3s/5s/7s across three attempts, with 2s/4s backoff between them.
func DefaultSchedule() Schedule {
	return Schedule{
		MaxAttempts: 3,
		RenderBase:  3 * time.Second,
		RenderStep:  2 * time.Second,
		BackoffStep: 2 * time.Second,
	}
}

// RenderWait returns the baseline render wait for a zero-based attempt.
func (s Schedule) RenderWait(attempt int) time.Duration {
	return s.RenderBase + time.Duration(attempt)*s.RenderStep
}

// Backoff returns the wait applied after a failed zero-based attempt.
func (s Schedule) Backoff(attempt int) time.Duration {
	return time.Duration(attempt+1) * s.BackoffStep
}

// Sleep waits for d or until the context is cancelled, whichever comes
// first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
