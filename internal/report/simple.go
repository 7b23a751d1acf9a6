package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dinumapara/New-PDFCleaner/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// The per-file lines use the stable "File: ..." format that run logs
// have always used, so existing tooling that greps run logs keeps
// working.
type SimpleWriter struct {
	baseWriter

	// verbose enables per-file warning details in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with per-file warnings.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeFiles(&sb, report)
	w.writeSummary(&sb, report)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the run header.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                    PDF BLANK PAGE REMOVAL REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Target:   %s\n", report.Target))
	sb.WriteString(fmt.Sprintf("Started:  %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Elapsed:  %s\n", report.Elapsed.Round(time.Millisecond)))
	if report.Cancelled {
		sb.WriteString("Status:   STOPPED BY USER (partial results)\n")
	} else {
		sb.WriteString("Status:   Complete\n")
	}
	sb.WriteString("\n")
}

// writeFiles writes one line per processed file.
func (w *SimpleWriter) writeFiles(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FILES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Records) == 0 {
		sb.WriteString("  No files processed\n\n")
		return
	}

	for _, rec := range report.Records {
		sb.WriteString(rec.LogLine())
		sb.WriteString("\n")
		if w.verbose {
			for _, warning := range rec.Warnings {
				sb.WriteString(fmt.Sprintf("  warning: %s\n", warning))
			}
		}
	}
	sb.WriteString("\n")
}

// writeSummary writes the aggregated counts.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Files:         %d\n", report.Summary.Files))
	sb.WriteString(fmt.Sprintf("  Modified:      %d\n", report.Summary.Modified))
	sb.WriteString(fmt.Sprintf("  No changes:    %d\n", report.Summary.Unchanged))
	sb.WriteString(fmt.Sprintf("  Failed:        %d\n", report.Summary.Failed))
	sb.WriteString(fmt.Sprintf("  Pages removed: %d\n", report.Summary.PagesRemoved))
	sb.WriteString("\n")
}
