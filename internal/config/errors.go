package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoTarget is returned when no input file or directory is specified.
	ErrNoTarget = errors.New("no target specified: provide a PDF file or a directory")

	// ErrInvalidDPI is returned when the raster DPI is outside the
	// supported range of 72 to 600.
	ErrInvalidDPI = errors.New("invalid raster dpi: must be between 72 and 600")

	// ErrInvalidThreshold is returned when the OCR threshold is negative.
	ErrInvalidThreshold = errors.New("invalid ocr threshold: must be non-negative")

	// ErrNoLanguages is returned when the OCR language list is empty.
	// Tesseract needs at least one trained-data language to recognize text.
	ErrNoLanguages = errors.New("no ocr languages specified: at least one language is required")

	// ErrInvalidBackupSuffix is returned when the backup suffix is empty
	// or contains a path separator. The backup must be a sibling of the
	// original file.
	ErrInvalidBackupSuffix = errors.New("invalid backup suffix: must be non-empty and must not contain a path separator")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
