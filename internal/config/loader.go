package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".pdfcleaner.yml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the on-disk YAML configuration.
// All fields are optional; unset fields keep their built-in defaults.
type File struct {
	// DPI overrides the raster resolution used for OCR input.
	DPI float64 `yaml:"dpi"`

	// OCRThreshold overrides the minimum recognized-character count for a
	// page to be considered non-blank.
	OCRThreshold int `yaml:"ocr_threshold"`

	// Languages overrides the Tesseract language hints.
	Languages []string `yaml:"languages"`

	// BackupSuffix overrides the backup file suffix.
	BackupSuffix string `yaml:"backup_suffix"`

	// History disables run-history recording when explicitly set to false.
	History *bool `yaml:"history"`
}

// LoadConfigFile loads configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers
// should handle this error appropriately based on whether the config
// file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// Apply merges the file's set values into the config. Zero values in the
// file are treated as "not set" and leave the config untouched, so CLI
// flags applied afterwards always win over the file.
func (f *File) Apply(cfg *Config) {
	if f.DPI > 0 {
		cfg.RasterDPI = f.DPI
	}
	if f.OCRThreshold > 0 {
		cfg.OCRThreshold = f.OCRThreshold
	}
	if len(f.Languages) > 0 {
		cfg.OCRLanguages = f.Languages
	}
	if f.BackupSuffix != "" {
		cfg.BackupSuffix = f.BackupSuffix
	}
	if f.History != nil {
		cfg.SaveHistory = *f.History
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .pdfcleaner.yml in the current directory
// 3. Look for .pdfcleaner.yml in the user's home directory
//
// Returns the path to the configuration file if found, or empty string
// if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
