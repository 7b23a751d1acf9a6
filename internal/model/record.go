package model

import (
	"fmt"
	"path/filepath"
	"time"
)

// FileStatus is the terminal status of processing one input file.
type FileStatus int

const (
	// StatusUnchanged means no blank pages were found and the file was
	// left byte-identical to its pre-run state.
	StatusUnchanged FileStatus = iota

	// StatusModified means blank pages were removed and the file was
	// atomically replaced with the trimmed document.
	StatusModified

	// StatusFailed means processing stopped before the file could be
	// safely modified. The FailureReason field explains why.
	StatusFailed
)

// String returns a human-readable name for the status.
func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "No changes"
	case StatusModified:
		return "Modified"
	case StatusFailed:
		return "Failed"
	default:
		return "unknown"
	}
}

// FailureReason identifies why processing a file failed.
//
// Design decision: We use string constants rather than numeric codes
// because the reasons appear verbatim in logs, reports, and the history
// database, and stable human-readable identifiers survive schema and
// version changes better than integers.
type FailureReason string

const (
	// ReasonNone is the zero value for files that did not fail.
	ReasonNone FailureReason = ""

	// ReasonBackupFailed means the pre-modification backup copy could not
	// be created. The original file is untouched.
	ReasonBackupFailed FailureReason = "backup-failed"

	// ReasonReadFailed means the PDF could not be opened or parsed.
	// The original file is untouched.
	ReasonReadFailed FailureReason = "read-failed"

	// ReasonAllPagesBlank means every page was classified blank. Writing
	// a zero-page document is refused, so the original is left as is.
	// This is a valid terminal outcome rather than a true error.
	ReasonAllPagesBlank FailureReason = "all-pages-blank"

	// ReasonWriteFailed means the trimmed document could not be written
	// or moved into place, but the original was verified intact.
	ReasonWriteFailed FailureReason = "write-failed"

	// ReasonUncertainState means the replace was interrupted and the
	// original could not be verified against its pre-run fingerprint.
	// The backup is preserved for manual recovery.
	ReasonUncertainState FailureReason = "uncertain-state"
)

// FileProcessingRecord is the append-only result of processing one input
// file. It is written once, after processing of that file completes.
type FileProcessingRecord struct {
	// Path is the input file path as supplied to the transaction.
	Path string `json:"path"`

	// TotalPages is the page count of the document before processing.
	// Zero when the document could not be opened.
	TotalPages int `json:"total_pages"`

	// RemovedPages is the number of pages classified blank and removed.
	RemovedPages int `json:"removed_pages"`

	// Status is the terminal status of this file.
	Status FileStatus `json:"status"`

	// FailureReason is set when Status is StatusFailed.
	FailureReason FailureReason `json:"failure_reason,omitempty"`

	// Warnings collects non-fatal problems encountered while processing,
	// such as per-page OCR failures that forced the fail-safe keep or a
	// backup file that could not be cleaned up.
	Warnings []string `json:"warnings,omitempty"`

	// StartedAt is when processing of this file began.
	StartedAt time.Time `json:"started_at"`

	// Duration is how long processing of this file took.
	Duration time.Duration `json:"duration"`
}

// StatusString renders the status in the log format used for run reports:
// "Modified", "No changes", or "Failed: <reason>".
func (r FileProcessingRecord) StatusString() string {
	if r.Status == StatusFailed {
		return fmt.Sprintf("Failed: %s", r.FailureReason)
	}
	return r.Status.String()
}

// LogLine renders the per-file report line. The format is stable and is
// relied on by downstream tooling that parses run logs.
func (r FileProcessingRecord) LogLine() string {
	return fmt.Sprintf("File: %s, Total pages: %d, Removed pages: %d, Status: %s",
		filepath.Base(r.Path), r.TotalPages, r.RemovedPages, r.StatusString())
}
