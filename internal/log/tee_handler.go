package log

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// RunLogFileName is the name of the append-only log file written under
// the log directory.
const RunLogFileName = "pdfcleaner.log"

// TeeHandler is an slog.Handler that forwards each record to multiple
// child handlers. Each child applies its own level filtering, which lets
// the console stay quiet while the run log file captures debug output.
//
// Design decision: We fan out at the handler level rather than using an
// io.MultiWriter because the two destinations use different levels and
// may use different formats. io.MultiWriter would force a single handler
// and therefore a single level for both.
type TeeHandler struct {
	handlers []slog.Handler
}

// NewTeeHandler creates a handler that forwards records to all given
// handlers.
func NewTeeHandler(handlers ...slog.Handler) *TeeHandler {
	return &TeeHandler{handlers: handlers}
}

// Enabled reports whether at least one child handler accepts the level.
func (t *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle forwards the record to every child handler that accepts its
// level. Errors from children are joined rather than short-circuiting so
// one failing destination does not silence the others.
func (t *TeeHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range t.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs returns a new TeeHandler whose children carry the attributes.
func (t *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &TeeHandler{handlers: handlers}
}

// WithGroup returns a new TeeHandler whose children carry the group.
func (t *TeeHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &TeeHandler{handlers: handlers}
}

// NewLogger creates a console logger writing to w.
// When verbose is true the level is debug, otherwise warnings and errors
// only.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewRunLogger creates a logger that writes to the console at the level
// implied by verbose and additionally appends debug-level records to the
// run log file in logDir. The returned closer must be called when the
// run finishes.
//
// If the log file cannot be opened the console logger is returned alone;
// a missing file log is not worth failing the run over.
func NewRunLogger(console io.Writer, logDir string, verbose bool) (*slog.Logger, func() error) {
	consoleLevel := slog.LevelWarn
	if verbose {
		consoleLevel = slog.LevelDebug
	}
	consoleHandler := slog.NewTextHandler(console, &slog.HandlerOptions{Level: consoleLevel})

	file, err := openRunLogFile(logDir)
	if err != nil {
		logger := slog.New(consoleHandler)
		logger.Warn("run log file unavailable", "dir", logDir, "error", err)
		return logger, func() error { return nil }
	}

	fileHandler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewTeeHandler(consoleHandler, fileHandler))
	return logger, file.Close
}

// openRunLogFile opens the append-only run log file, creating the log
// directory as needed.
func openRunLogFile(logDir string) (*os.File, error) {
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	path := filepath.Join(logDir, RunLogFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // Path is under the XDG state dir
	if err != nil {
		return nil, fmt.Errorf("failed to open run log file: %w", err)
	}
	return file, nil
}
