// Package log provides logger construction for pdfcleaner, built on top
// of the standard slog package.
//
// The console logger writes to stderr with a level controlled by the
// verbose flag. In addition, every run appends its full debug-level
// record stream to a log file under the XDG state directory, so problems
// reported after the fact can be diagnosed without re-running with
// --verbose. The TeeHandler fans each record out to both destinations
// with independent level filtering.
package log
