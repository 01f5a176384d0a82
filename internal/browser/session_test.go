package browser

import (
	"context"
	"testing"
	"time"
)

func TestBoundToCaller_CallerTimeoutCancelsRun(t *testing.T) {
	session, sessionCancel := context.WithCancel(context.Background())
	defer sessionCancel()

	caller, callerCancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer callerCancel()

	runCtx, cancel := boundToCaller(session, caller)
	defer cancel()

	select {
	case <-runCtx.Done():
	case <-time.After(time.Second):
		t.Fatal("Run context not cancelled when the caller's bound expired")
	}
	if session.Err() != nil {
		t.Error("Session context must survive a caller timeout")
	}
}

func TestBoundToCaller_SessionCloseCancelsRun(t *testing.T) {
	session, sessionCancel := context.WithCancel(context.Background())

	runCtx, cancel := boundToCaller(session, context.Background())
	defer cancel()

	sessionCancel()
	select {
	case <-runCtx.Done():
	case <-time.After(time.Second):
		t.Fatal("Run context not cancelled when the session closed")
	}
}

func TestBoundToCaller_CancelReleasesWatcher(t *testing.T) {
	session, sessionCancel := context.WithCancel(context.Background())
	defer sessionCancel()

	caller, callerCancel := context.WithCancel(context.Background())
	defer callerCancel()

	runCtx, cancel := boundToCaller(session, caller)
	cancel()

	select {
	case <-runCtx.Done():
	case <-time.After(time.Second):
		t.Fatal("Run context not released by its own cancel")
	}
}
