// Package config provides configuration management for pdfcleaner,
// including defaults, validation, the optional YAML configuration file,
// and XDG base directory paths.
package config
