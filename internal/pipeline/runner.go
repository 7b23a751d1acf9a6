package pipeline

import (
	"context"
	"log/slog"

	"github.com/dinumapara/New-PDFCleaner/internal/model"
)

// Processor handles one file and returns its record. Failures are folded
// into the record, never returned as errors, so one bad file cannot stop
// the batch.
type Processor interface {
	Execute(ctx context.Context, path string) model.FileProcessingRecord
}

// ProgressEvent is emitted after each file completes, successfully or not.
type ProgressEvent struct {
	// Path is the file that just finished.
	Path string

	// Completed is the number of files attempted so far, including this one.
	Completed int

	// Total is the number of files in the batch.
	Total int

	// Record is the completed file's processing record.
	Record model.FileProcessingRecord
}

// Runner iterates a list of files and invokes the per-file processor.
//
// Design decision: The runner is strictly sequential rather than using a
// worker pool. OCR is the dominant cost and the engine is effectively
// single-process; concurrent OCR invocations compete for the same cores
// and can exhaust memory on typical desktop hardware. One worker also
// keeps each file's backup/temp/original trio exclusive without locking.
type Runner struct {
	processor Processor
	logger    *slog.Logger
	progress  func(ProgressEvent)
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets a custom logger for batch-level logging.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithProgress sets a callback invoked after every completed file. The
// callback runs on the worker goroutine; callers that render progress
// elsewhere should hand the event off to their own goroutine (e.g.,
// through a channel) rather than mutating shared state directly.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(r *Runner) {
		r.progress = fn
	}
}

// NewRunner creates a Runner around the given per-file processor.
func NewRunner(processor Processor, opts ...Option) *Runner {
	r := &Runner{processor: processor}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Run processes the files in order and returns one record per attempted
// file. Cancellation is checked before each file; once cancelled, no
// further file is started and the returned records are a strict prefix
// of the input. The error is ctx.Err() when the run was cancelled, nil
// otherwise.
func (r *Runner) Run(ctx context.Context, paths []string) ([]model.FileProcessingRecord, error) {
	r.logger.Info("starting batch", "totalFiles", len(paths))

	records := make([]model.FileProcessingRecord, 0, len(paths))
	for _, path := range paths {
		select {
		case <-ctx.Done():
			r.logger.Info("batch cancelled",
				"completed", len(records),
				"totalFiles", len(paths),
			)
			return records, ctx.Err()
		default:
		}

		// A file that has started must finish even if cancellation is
		// requested meanwhile; interrupting mid-transaction could leave
		// backups and temp files in ambiguous states.
		record := r.processor.Execute(context.WithoutCancel(ctx), path)
		records = append(records, record)

		r.logger.Info("file processed",
			"file", path,
			"status", record.StatusString(),
			"completed", len(records),
			"totalFiles", len(paths),
		)

		if r.progress != nil {
			r.progress(ProgressEvent{
				Path:      path,
				Completed: len(records),
				Total:     len(paths),
				Record:    record,
			})
		}
	}

	r.logger.Info("batch complete", "totalFiles", len(paths))
	return records, nil
}
