package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/dinumapara/New-PDFCleaner/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeFiles(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("PDF Blank Page Removal Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Target", "`" + report.Target + "`"},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", report.Elapsed.Round(time.Millisecond).String()},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.RunReport) string {
	if report.Cancelled {
		return "⚠️ Stopped by user (partial results)"
	}
	return "✅ Complete"
}

// writeSummary writes the aggregated counts section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Files processed", strconv.Itoa(report.Summary.Files)},
			{"Modified", strconv.Itoa(report.Summary.Modified)},
			{"No changes", strconv.Itoa(report.Summary.Unchanged)},
			{"Failed", strconv.Itoa(report.Summary.Failed)},
			{"**Pages removed**", "**" + strconv.Itoa(report.Summary.PagesRemoved) + "**"},
		},
	})
	md.PlainText("")

	w.writeAlert(md, report)
}

// writeAlert writes an appropriate alert based on the run outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.RunReport) {
	switch {
	case report.Summary.Failed > 0:
		md.Warningf(
			"%d file(s) failed to process. Backups are preserved for files in an uncertain state.",
			report.Summary.Failed,
		)
	case report.Summary.Modified > 0:
		md.Notef(
			"%d file(s) were modified in place. %d blank page(s) removed in total.",
			report.Summary.Modified,
			report.Summary.PagesRemoved,
		)
	default:
		md.Tip("No blank pages detected. All files left untouched.")
	}
	md.PlainText("")
}

// writeFiles writes the per-file results table.
func (w *MarkdownWriter) writeFiles(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Files")
	md.PlainText("")

	if len(report.Records) == 0 {
		md.PlainText("No files processed.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Records))
	for i, rec := range report.Records {
		rows[i] = []string{
			"`" + truncateString(rec.Path, 60) + "`",
			strconv.Itoa(rec.TotalPages),
			strconv.Itoa(rec.RemovedPages),
			rec.StatusString(),
			rec.Duration.Round(time.Millisecond).String(),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"File", "Total pages", "Removed pages", "Status", "Elapsed"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeWarnings(md, report)
}

// writeWarnings writes per-file warning details for files that have any.
func (w *MarkdownWriter) writeWarnings(md *markdown.Markdown, report *model.RunReport) {
	hasWarnings := false
	for _, rec := range report.Records {
		if len(rec.Warnings) > 0 {
			hasWarnings = true
			break
		}
	}
	if !hasWarnings {
		return
	}

	md.H3("Warnings")
	md.PlainText("")
	for _, rec := range report.Records {
		if len(rec.Warnings) == 0 {
			continue
		}
		md.PlainTextf("**%s**", rec.Path)
		md.BulletList(rec.Warnings...)
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [pdfcleaner](https://github.com/dinumapara/New-PDFCleaner)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
