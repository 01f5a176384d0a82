package stats

import (
	"encoding/json"
	"os"
	"time"
)

// Report is the on-demand JSON error report, the only durable artifact a
// scraping session may produce.
type Report struct {
	ExportTimestamp time.Time         `json:"export_timestamp"`
	TotalErrors     int               `json:"total_errors"`
	ErrorsByKind    map[ErrorKind]int `json:"errors_by_kind"`
	DetailedErrors  []ErrorEntry      `json:"detailed_errors"`
	Statistics      Summary           `json:"statistics"`
}

// BuildReport snapshots the recorder into a Report.
func (r *Recorder) BuildReport() Report {
	summary := r.Summarize()
	return Report{
		ExportTimestamp: time.Now(),
		TotalErrors:     summary.ErrorCount,
		ErrorsByKind:    summary.ErrorsByKind,
		DetailedErrors:  r.Errors(),
		Statistics:      summary,
	}
}

// WriteReport writes the error report as indented JSON to path.
func (r *Recorder) WriteReport(path string) error {
	data, err := json.MarshalIndent(r.BuildReport(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
