package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoPDFFiles is returned when a directory target contains no PDF files.
var ErrNoPDFFiles = errors.New("no PDF files found")

// ErrNotPDF is returned when a file target does not have a .pdf extension.
var ErrNotPDF = errors.New("not a PDF file")

// DiscoverFiles resolves a target path into the list of PDF files to
// process. A file target is returned as-is after an extension check. A
// directory target yields its PDF entries in name order; the listing is
// non-recursive and the extension match is case-insensitive, so SCAN.PDF
// is picked up alongside scan.pdf.
func DiscoverFiles(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", target, err)
	}

	if !info.IsDir() {
		if !isPDF(target) {
			return nil, fmt.Errorf("%s: %w", target, ErrNotPDF)
		}
		return []string{target}, nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", target, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isPDF(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(target, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", target, ErrNoPDFFiles)
	}
	return files, nil
}

// isPDF reports whether the path has a case-insensitive .pdf extension.
func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
