package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestSuccessRate_ZeroAttempts(t *testing.T) {
	r := NewRecorder()

	if rate := r.SuccessRate(); rate != 0 {
		t.Errorf("Expected 0 success rate with no attempts, got %v", rate)
	}
}

func TestSuccessRate_Bounds(t *testing.T) {
	r := NewRecorder()

	for i := 0; i < 10; i++ {
		r.URLAttempted()
	}
	for i := 0; i < 7; i++ {
		r.PropertyAccepted()
	}

	rate := r.SuccessRate()
	if rate < 0 || rate > 100 {
		t.Errorf("Success rate out of bounds: %v", rate)
	}
	if rate != 70 {
		t.Errorf("Expected 70, got %v", rate)
	}
}

func TestSummarize_GroupsAndRecent(t *testing.T) {
	r := NewRecorder()
	r.Start()

	r.RecordError(KindTimeout, "", "for-sale", "waiting for cards")
	r.RecordError(KindTimeout, "", "for-sale", "waiting for cards")
	for i := 0; i < 6; i++ {
		r.RecordError(KindExtractionFailed, fmt.Sprintf("https://x/%d", i), "for-rent", "no title")
	}
	r.Finish()

	s := r.Summarize()
	if s.ErrorCount != 8 {
		t.Fatalf("Expected 8 errors, got %d", s.ErrorCount)
	}
	if s.ErrorsByKind[KindTimeout] != 2 {
		t.Errorf("Expected 2 timeout errors, got %d", s.ErrorsByKind[KindTimeout])
	}
	if s.ErrorsByKind[KindExtractionFailed] != 6 {
		t.Errorf("Expected 6 extraction_failed errors, got %d", s.ErrorsByKind[KindExtractionFailed])
	}
	if len(s.RecentErrors) != 5 {
		t.Fatalf("Expected 5 recent errors, got %d", len(s.RecentErrors))
	}
	if s.RecentErrors[4].URL != "https://x/5" {
		t.Errorf("Recent errors should end with the newest entry, got %s", s.RecentErrors[4].URL)
	}
	if s.URLsFailed != 8 {
		t.Errorf("Each recorded error should count one failed URL, got %d", s.URLsFailed)
	}
}

func TestWriteReport(t *testing.T) {
	r := NewRecorder()
	r.Start()
	r.URLAttempted()
	r.RecordError(KindPageLoadFailed, "https://x/1", "for-sale", "navigation refused")
	r.Finish()

	path := filepath.Join(t.TempDir(), "errors.json")
	if err := r.WriteReport(path); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading report failed: %v", err)
	}

	var report Report
	if err := json.Unmarshal(raw, &report); err != nil {
		t.Fatalf("Report is not valid JSON: %v", err)
	}
	if report.TotalErrors != 1 {
		t.Errorf("Expected 1 total error, got %d", report.TotalErrors)
	}
	if len(report.DetailedErrors) != 1 || report.DetailedErrors[0].Kind != KindPageLoadFailed {
		t.Errorf("Detailed errors not preserved: %+v", report.DetailedErrors)
	}
}
