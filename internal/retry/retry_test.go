package retry

import (
	"context"
	"testing"
	"time"
)

func TestSchedule_RenderWait(t *testing.T) {
	s := DefaultSchedule()

	wants := []time.Duration{3 * time.Second, 5 * time.Second, 7 * time.Second}
	for attempt, want := range wants {
		if got := s.RenderWait(attempt); got != want {
			t.Errorf("RenderWait(%d) = %v, want %v", attempt, got, want)
		}
	}
}

func TestSchedule_Backoff(t *testing.T) {
	s := DefaultSchedule()

	wants := []time.Duration{2 * time.Second, 4 * time.Second, 6 * time.Second}
	for attempt, want := range wants {
		if got := s.Backoff(attempt); got != want {
			t.Errorf("Backoff(%d) = %v, want %v", attempt, got, want)
		}
	}
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Sleep(ctx, 10*time.Second)
	if err == nil {
		t.Fatal("Expected error from cancelled context")
	}
	if time.Since(start) > time.Second {
		t.Error("Sleep did not return promptly on cancellation")
	}
}

func TestSleep_Zero(t *testing.T) {
	if err := Sleep(context.Background(), 0); err != nil {
		t.Errorf("Sleep(0) returned error: %v", err)
	}
}
