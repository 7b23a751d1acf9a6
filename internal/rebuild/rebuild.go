package rebuild

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNoPagesKept is returned when the kept-page set is empty. Writing a
// zero-page document is never allowed; the caller surfaces "all pages
// blank" as its own terminal outcome instead.
var ErrNoPagesKept = errors.New("refusing to rebuild a document with zero pages")

// Rebuilder produces trimmed copies of PDF documents.
type Rebuilder struct {
	conf *pdfcpumodel.Configuration
}

// New creates a Rebuilder.
// Validation is relaxed because scanner-produced PDFs are frequently
// slightly out of spec and still worth processing.
func New() *Rebuilder {
	conf := pdfcpumodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfcpumodel.ValidationRelaxed
	return &Rebuilder{conf: conf}
}

// Rebuild writes a copy of the document at src to dst containing only
// the pages whose zero-based indices appear in kept, in ascending
// original order. The output page count is verified before returning.
func (r *Rebuilder) Rebuild(src, dst string, kept []int) error {
	if len(kept) == 0 {
		return ErrNoPagesKept
	}

	selection := pageSelection(kept)
	if err := api.TrimFile(src, dst, selection, r.conf); err != nil {
		return fmt.Errorf("failed to rebuild %s: %w", src, err)
	}

	// A rebuild that silently dropped or duplicated pages would defeat
	// the whole safety model, so the output is checked against the
	// requested selection.
	count, err := api.PageCountFile(dst)
	if err != nil {
		return fmt.Errorf("failed to verify rebuilt document %s: %w", dst, err)
	}
	if count != len(selection) {
		return fmt.Errorf("rebuilt document has %d pages, expected %d", count, len(selection))
	}

	return nil
}

// pageSelection converts zero-based page indices into the one-based,
// ascending, de-duplicated selection strings pdfcpu expects.
func pageSelection(kept []int) []string {
	sorted := append([]int(nil), kept...)
	sort.Ints(sorted)

	selection := make([]string, 0, len(sorted))
	prev := -1
	for _, index := range sorted {
		if index == prev {
			continue
		}
		prev = index
		selection = append(selection, strconv.Itoa(index+1))
	}
	return selection
}
