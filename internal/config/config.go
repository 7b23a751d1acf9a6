package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The detection defaults mirror the behavior the tool has always shipped
// with and are deliberately conservative: they bias toward keeping pages.
const (
	// DefaultRasterDPI is the resolution pages are rendered at for OCR
	// input. 200 DPI is high enough for Tesseract to recognize ordinary
	// print sizes while keeping render and recognition times reasonable.
	DefaultRasterDPI = 200.0

	// DefaultOCRThreshold is the minimum number of recognized characters
	// (after stripping whitespace) for a page to count as having content.
	// Below this, OCR output is treated as noise: speckles and scanner
	// artifacts on a genuinely blank page often produce a few stray
	// characters.
	DefaultOCRThreshold = 5

	// DefaultOCRLanguage is the trained-data language passed to Tesseract.
	DefaultOCRLanguage = "eng"

	// DefaultBackupSuffix is appended to a file's path to form its backup
	// path while the file is being rewritten.
	DefaultBackupSuffix = ".bak"

	// DefaultHistoryLimit is the number of past runs the history command
	// shows when no limit is given.
	DefaultHistoryLimit = 20

	// AppName is the application name used for XDG directory paths.
	AppName = "pdfcleaner"
)

// Config holds all configuration options for a cleaning run.
// This struct is populated from CLI flags and the optional config file and
// passed through the application via dependency injection rather than
// global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., DetectionConfig, ReportConfig) for simplicity. The number of
// options is manageable, and nesting would add complexity without
// significant benefit.
type Config struct {
	// Targets is the list of input paths. Each entry is either a PDF file
	// or a directory whose PDF files (non-recursive) are processed.
	Targets []string

	// RasterDPI is the resolution used when rendering a page to an image
	// for OCR input.
	RasterDPI float64

	// OCRThreshold is the minimum stripped OCR output length, in runes,
	// for a page to be considered non-blank.
	OCRThreshold int

	// OCRLanguages is the list of Tesseract language hints (e.g., "eng",
	// "deu"). At least one language is required.
	OCRLanguages []string

	// BackupSuffix is appended to a file path to form its backup path.
	// Must not contain a path separator.
	BackupSuffix string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file. If empty, the
	// tool searches for .pdfcleaner.yml in the current directory and then
	// in the user's home directory.
	ConfigFilePath string

	// JSONReport enables JSON report output instead of the plain text
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the plain
	// text format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the run report. When set,
	// the report is written to this file instead of stdout.
	ReportFile string

	// SaveHistory indicates whether to record the run in the history
	// database under DBDir.
	SaveHistory bool

	// DBDir is the directory holding the SQLite history database.
	// Defaults to the XDG data directory.
	DBDir string

	// LogDir is the directory the per-run log file is written to.
	// Defaults to the XDG state directory.
	LogDir string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
func NewConfig() *Config {
	return &Config{
		RasterDPI:    DefaultRasterDPI,
		OCRThreshold: DefaultOCRThreshold,
		OCRLanguages: []string{DefaultOCRLanguage},
		BackupSuffix: DefaultBackupSuffix,
		SaveHistory:  true,
		DBDir:        XDGDataDir(),
		LogDir:       XDGStateDir(),
	}
}

// XDGDataDir returns the XDG data directory for pdfcleaner.
// On Linux: ~/.local/share/pdfcleaner
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGStateDir returns the XDG state directory for pdfcleaner.
// Log files live here. On Linux: ~/.local/state/pdfcleaner
func XDGStateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// XDGConfigDir returns the XDG config directory for pdfcleaner.
// On Linux: ~/.config/pdfcleaner
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any processing begins.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	// A DPI below 72 renders text too small for OCR to be meaningful;
	// above 600 memory use per page becomes excessive.
	if c.RasterDPI < 72 || c.RasterDPI > 600 {
		return ErrInvalidDPI
	}

	// Threshold zero would classify every text-blank page as blank the
	// moment OCR returns an empty string, which is the intent; negative
	// values are meaningless.
	if c.OCRThreshold < 0 {
		return ErrInvalidThreshold
	}

	if len(c.OCRLanguages) == 0 {
		return ErrNoLanguages
	}

	if c.BackupSuffix == "" || strings.ContainsRune(c.BackupSuffix, filepath.Separator) {
		return ErrInvalidBackupSuffix
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
