package stats

import (
	"sync"
	"time"
)

// Recorder accumulates the error ledger and run counters for one scraping
// session. It is initialized at session start, finalized at session end,
// and read-only thereafter.
type Recorder struct {
	mu                  sync.Mutex
	entries             []ErrorEntry
	urlsScraped         int
	urlsFailed          int
	propertiesExtracted int
	startTime           time.Time
	endTime             time.Time
}

// NewRecorder creates an empty, unstarted Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start marks the beginning of a detail-scraping run.
func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startTime = time.Now()
}

// Finish marks the end of the run.
func (r *Recorder) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endTime = time.Now()
}

// URLAttempted counts one detail URL entering the attempt loop.
func (r *Recorder) URLAttempted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urlsScraped++
}

// PropertyAccepted counts one usable record.
func (r *Recorder) PropertyAccepted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.propertiesExtracted++
}

// SuccessRate is properties extracted over URLs attempted, as a
// percentage. The denominator is clamped to 1 so a run that attempted
// nothing reports 0 rather than dividing by zero.
func (r *Recorder) SuccessRate() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.successRateLocked()
}

func (r *Recorder) successRateLocked() float64 {
	denom := r.urlsScraped
	if denom < 1 {
		denom = 1
	}
	return float64(r.propertiesExtracted) / float64(denom) * 100
}

// Summary is the read-only aggregate view of a run.
type Summary struct {
	URLsScraped         int               `json:"urls_scraped"`
	URLsFailed          int               `json:"urls_failed"`
	PropertiesExtracted int               `json:"properties_extracted"`
	TotalTime           time.Duration     `json:"total_time"`
	ErrorCount          int               `json:"error_count"`
	SuccessRate         float64           `json:"success_rate"`
	ErrorsByKind        map[ErrorKind]int `json:"errors_by_kind"`
	RecentErrors        []ErrorEntry      `json:"recent_errors"`
}

const recentErrorWindow = 5

// Summarize computes the aggregate view. Elapsed time runs to the finish
// mark, or to now when the run is still in flight.
func (r *Recorder) Summarize() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	var elapsed time.Duration
	if !r.startTime.IsZero() {
		end := r.endTime
		if end.IsZero() {
			end = time.Now()
		}
		elapsed = end.Sub(r.startTime)
	}

	byKind := make(map[ErrorKind]int)
	for _, e := range r.entries {
		byKind[e.Kind]++
	}

	recent := r.entries
	if len(recent) > recentErrorWindow {
		recent = recent[len(recent)-recentErrorWindow:]
	}
	recentCopy := make([]ErrorEntry, len(recent))
	copy(recentCopy, recent)

	return Summary{
		URLsScraped:         r.urlsScraped,
		URLsFailed:          r.urlsFailed,
		PropertiesExtracted: r.propertiesExtracted,
		TotalTime:           elapsed,
		ErrorCount:          len(r.entries),
		SuccessRate:         r.successRateLocked(),
		ErrorsByKind:        byKind,
		RecentErrors:        recentCopy,
	}
}
