package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/dinumapara/New-PDFCleaner/internal/model"
)

// fakeProcessor records which paths it was asked to process and returns
// canned records.
type fakeProcessor struct {
	executed []string
	results  map[string]model.FileProcessingRecord
}

func (p *fakeProcessor) Execute(_ context.Context, path string) model.FileProcessingRecord {
	p.executed = append(p.executed, path)
	if rec, ok := p.results[path]; ok {
		return rec
	}
	return model.FileProcessingRecord{Path: path, Status: model.StatusUnchanged}
}

// TestRunnerProcessesAllFiles tests sequential processing and record order.
func TestRunnerProcessesAllFiles(t *testing.T) {
	t.Parallel()

	proc := &fakeProcessor{}
	paths := []string{"a.pdf", "b.pdf", "c.pdf"}

	records, err := NewRunner(proc).Run(context.Background(), paths)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for i, rec := range records {
		if rec.Path != paths[i] {
			t.Errorf("record[%d].Path = %q, want %q", i, rec.Path, paths[i])
		}
	}
	if len(proc.executed) != 3 {
		t.Errorf("processor ran %d times, want 3", len(proc.executed))
	}
}

// TestRunnerCancellation tests that cancellation after the second file
// yields exactly two records and never opens the remaining files.
func TestRunnerCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	proc := &fakeProcessor{}
	paths := []string{"1.pdf", "2.pdf", "3.pdf", "4.pdf"}

	runner := NewRunner(proc, WithProgress(func(ev ProgressEvent) {
		if ev.Completed == 2 {
			cancel()
		}
	}))

	records, err := runner.Run(ctx, paths)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want exactly 2", len(records))
	}
	if records[0].Path != "1.pdf" || records[1].Path != "2.pdf" {
		t.Errorf("records are not a strict prefix: %+v", records)
	}
	for _, path := range proc.executed {
		if path == "3.pdf" || path == "4.pdf" {
			t.Errorf("file %s was processed after cancellation", path)
		}
	}
}

// TestRunnerInFlightFileCompletes tests that a cancellation arriving
// mid-file does not interrupt that file.
func TestRunnerInFlightFileCompletes(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	// The processor cancels the batch while "working" on its file, then
	// verifies its own context is still alive.
	var sawLiveContext bool
	proc := processorFunc(func(fileCtx context.Context, path string) model.FileProcessingRecord {
		cancel()
		if fileCtx.Err() == nil {
			sawLiveContext = true
		}
		return model.FileProcessingRecord{Path: path, Status: model.StatusUnchanged}
	})

	records, err := NewRunner(proc).Run(ctx, []string{"only.pdf"})

	if !sawLiveContext {
		t.Error("per-file context was cancelled while the file was in flight")
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1", len(records))
	}
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// processorFunc adapts a function to the Processor interface.
type processorFunc func(context.Context, string) model.FileProcessingRecord

func (f processorFunc) Execute(ctx context.Context, path string) model.FileProcessingRecord {
	return f(ctx, path)
}

// TestRunnerContinuesAfterFailure tests that a failed file does not stop
// the batch.
func TestRunnerContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	proc := &fakeProcessor{
		results: map[string]model.FileProcessingRecord{
			"bad.pdf": {Path: "bad.pdf", Status: model.StatusFailed, FailureReason: model.ReasonReadFailed},
		},
	}
	paths := []string{"good.pdf", "bad.pdf", "also-good.pdf"}

	records, err := NewRunner(proc).Run(context.Background(), paths)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[1].Status != model.StatusFailed {
		t.Errorf("records[1].Status = %s, want Failed", records[1].Status)
	}
	if records[2].Status != model.StatusUnchanged {
		t.Errorf("records[2].Status = %s, want No changes", records[2].Status)
	}
}

// TestRunnerProgressEvents tests that progress events carry ordered
// counts and the file's record.
func TestRunnerProgressEvents(t *testing.T) {
	t.Parallel()

	var events []ProgressEvent
	runner := NewRunner(&fakeProcessor{}, WithProgress(func(ev ProgressEvent) {
		events = append(events, ev)
	}))

	paths := []string{"x.pdf", "y.pdf"}
	if _, err := runner.Run(context.Background(), paths); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	for i, ev := range events {
		if ev.Completed != i+1 {
			t.Errorf("event[%d].Completed = %d, want %d", i, ev.Completed, i+1)
		}
		if ev.Total != 2 {
			t.Errorf("event[%d].Total = %d, want 2", i, ev.Total)
		}
		if ev.Path != paths[i] {
			t.Errorf("event[%d].Path = %q, want %q", i, ev.Path, paths[i])
		}
		if ev.Record.Path != paths[i] {
			t.Errorf("event[%d].Record.Path = %q, want %q", i, ev.Record.Path, paths[i])
		}
	}
}
