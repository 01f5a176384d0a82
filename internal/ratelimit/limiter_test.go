package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestPacer_FirstRequestImmediate(t *testing.T) {
	p := NewPacer(time.Hour)

	if !p.Allow() {
		t.Error("First request should be allowed immediately")
	}
	if p.Allow() {
		t.Error("Second request should be paced")
	}
}

func TestPacer_ZeroIntervalNeverWaits(t *testing.T) {
	p := NewPacer(0)

	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	if time.Since(start) > time.Second {
		t.Error("Zero-interval pacer should not block")
	}
}
