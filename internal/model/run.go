package model

import "time"

// RunSummary aggregates the outcome of one batch run.
type RunSummary struct {
	// Files is the number of files attempted. When the run was cancelled
	// this is smaller than the number of files discovered.
	Files int `json:"files"`

	// Modified is the number of files rewritten with pages removed.
	Modified int `json:"modified"`

	// Unchanged is the number of files with no blank pages.
	Unchanged int `json:"unchanged"`

	// Failed is the number of files with a Failed terminal status.
	Failed int `json:"failed"`

	// PagesRemoved is the total number of pages removed across all files.
	PagesRemoved int `json:"pages_removed"`
}

// RunReport is the complete result of one batch invocation: the ordered
// per-file records plus the derived summary.
type RunReport struct {
	// Target is the input path (file or directory) the run was started with.
	Target string `json:"target"`

	// StartedAt is when the batch run began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed"`

	// Cancelled is true when the run was stopped by the user before all
	// discovered files were attempted. Records is then a strict prefix of
	// the discovered file list.
	Cancelled bool `json:"cancelled"`

	// Records holds one entry per attempted file, in attempt order.
	Records []FileProcessingRecord `json:"records"`

	// Summary is derived from Records.
	Summary RunSummary `json:"summary"`
}

// NewRunReport builds a RunReport from the per-file records of a run and
// computes the summary counts.
func NewRunReport(target string, records []FileProcessingRecord, startedAt time.Time, elapsed time.Duration, cancelled bool) *RunReport {
	report := &RunReport{
		Target:    target,
		StartedAt: startedAt,
		Elapsed:   elapsed,
		Cancelled: cancelled,
		Records:   records,
	}
	for _, rec := range records {
		report.Summary.Files++
		report.Summary.PagesRemoved += rec.RemovedPages
		switch rec.Status {
		case StatusModified:
			report.Summary.Modified++
		case StatusUnchanged:
			report.Summary.Unchanged++
		case StatusFailed:
			report.Summary.Failed++
		}
	}
	return report
}
