package model

import (
	"testing"
	"time"
)

// TestNewRunReport tests summary aggregation from per-file records.
func TestNewRunReport(t *testing.T) {
	t.Parallel()

	t.Run("aggregates counts by status", func(t *testing.T) {
		t.Parallel()

		records := []FileProcessingRecord{
			{Path: "a.pdf", TotalPages: 5, RemovedPages: 2, Status: StatusModified},
			{Path: "b.pdf", TotalPages: 3, RemovedPages: 0, Status: StatusUnchanged},
			{Path: "c.pdf", TotalPages: 4, RemovedPages: 1, Status: StatusModified},
			{Path: "d.pdf", Status: StatusFailed, FailureReason: ReasonReadFailed},
		}

		report := NewRunReport("/tmp/in", records, time.Now(), time.Second, false)

		if report.Summary.Files != 4 {
			t.Errorf("Files = %d, want 4", report.Summary.Files)
		}
		if report.Summary.Modified != 2 {
			t.Errorf("Modified = %d, want 2", report.Summary.Modified)
		}
		if report.Summary.Unchanged != 1 {
			t.Errorf("Unchanged = %d, want 1", report.Summary.Unchanged)
		}
		if report.Summary.Failed != 1 {
			t.Errorf("Failed = %d, want 1", report.Summary.Failed)
		}
		if report.Summary.PagesRemoved != 3 {
			t.Errorf("PagesRemoved = %d, want 3", report.Summary.PagesRemoved)
		}
	})

	t.Run("empty record list yields zero summary", func(t *testing.T) {
		t.Parallel()

		report := NewRunReport("/tmp/in", nil, time.Now(), 0, true)

		if report.Summary != (RunSummary{}) {
			t.Errorf("Summary = %+v, want zero value", report.Summary)
		}
		if !report.Cancelled {
			t.Error("expected Cancelled to be true")
		}
	})

	t.Run("records are kept in attempt order", func(t *testing.T) {
		t.Parallel()

		records := []FileProcessingRecord{
			{Path: "second.pdf", Status: StatusUnchanged},
			{Path: "first.pdf", Status: StatusUnchanged},
		}

		report := NewRunReport("/tmp/in", records, time.Now(), 0, false)

		if report.Records[0].Path != "second.pdf" || report.Records[1].Path != "first.pdf" {
			t.Errorf("record order changed: %+v", report.Records)
		}
	})
}
