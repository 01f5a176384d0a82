// Package stats provides session-scoped observability for one scraping
// run: an append-only error ledger plus run counters. One Recorder is
// constructed per session and passed explicitly into every component that
// reports into it; nothing here is global.
package stats

import (
	"fmt"
	"time"
)

// ErrorKind classifies an error ledger entry.
type ErrorKind string

const (
	KindInvalidCategory        ErrorKind = "invalid_category"
	KindPageLoadFailed         ErrorKind = "page_load_failed"
	KindURLExtractionFailed    ErrorKind = "url_extraction_failed"
	KindTimeout                ErrorKind = "timeout"
	KindPageScrapingFailed     ErrorKind = "page_scraping_failed"
	KindNavigationFailed       ErrorKind = "navigation_failed"
	KindCategoryScrapingFailed ErrorKind = "category_scraping_failed"
	KindExtractionFailed       ErrorKind = "extraction_failed"
	KindPropertyScrapingFailed ErrorKind = "property_scraping_failed"
)

// ErrorEntry is one timestamped failure. Entries are append-only and never
// mutated after creation.
type ErrorEntry struct {
	Timestamp     time.Time `json:"timestamp"`
	Kind          ErrorKind `json:"error_kind"`
	URL           string    `json:"url,omitempty"`
	Category      string    `json:"category,omitempty"`
	Message       string    `json:"message"`
	ExceptionKind string    `json:"exception_kind,omitempty"`
}

// RecordError appends an entry to the ledger and counts the URL as failed.
func (r *Recorder) RecordError(kind ErrorKind, url, category, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, ErrorEntry{
		Timestamp: time.Now(),
		Kind:      kind,
		URL:       url,
		Category:  category,
		Message:   message,
	})
	r.urlsFailed++
}

// RecordException is RecordError with the dynamic type of err carried as
// the exception kind.
func (r *Recorder) RecordException(kind ErrorKind, url, category string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, ErrorEntry{
		Timestamp:     time.Now(),
		Kind:          kind,
		URL:           url,
		Category:      category,
		Message:       err.Error(),
		ExceptionKind: fmt.Sprintf("%T", err),
	})
	r.urlsFailed++
}

// Errors returns a copy of the ledger in append order.
func (r *Recorder) Errors() []ErrorEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ErrorEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// ErrorCount returns the number of ledger entries.
func (r *Recorder) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
