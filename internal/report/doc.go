// Package report renders run reports in plain text, Markdown, and JSON.
package report
