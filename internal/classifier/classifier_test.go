package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dinumapara/New-PDFCleaner/internal/model"
)

// fakePage is an in-memory Page for classifier tests. It counts calls so
// tests can assert the text-layer short-circuit.
type fakePage struct {
	index       int
	text        string
	textErr     error
	renderErr   error
	renderCalls int
}

func (p *fakePage) Index() int { return p.index }

func (p *fakePage) Text() (string, error) {
	return p.text, p.textErr
}

func (p *fakePage) RenderPNG(_ float64) ([]byte, error) {
	p.renderCalls++
	if p.renderErr != nil {
		return nil, p.renderErr
	}
	return []byte("png"), nil
}

// fakeRecognizer returns canned OCR output and counts invocations.
type fakeRecognizer struct {
	text  string
	err   error
	calls int
}

func (r *fakeRecognizer) Recognize(_ context.Context, _ []byte) (string, error) {
	r.calls++
	return r.text, r.err
}

// TestClassifyTextShortCircuit tests that pages with a text layer are
// kept without invoking OCR at all.
func TestClassifyTextShortCircuit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{name: "plain text", text: "Invoice #42"},
		{name: "text with surrounding whitespace", text: "  \n\tcontent\n  "},
		{name: "single character", text: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &fakeRecognizer{text: ""}
			page := &fakePage{index: 3, text: tt.text}

			result := New(rec).Classify(context.Background(), page)

			if result.Class != model.PageKept {
				t.Errorf("Class = %s, want kept", result.Class)
			}
			if rec.calls != 0 {
				t.Errorf("OCR was invoked %d times, want 0", rec.calls)
			}
			if page.renderCalls != 0 {
				t.Errorf("page was rasterized %d times, want 0", page.renderCalls)
			}
			if result.OCRPerformed {
				t.Error("OCRPerformed should be false for text-layer keeps")
			}
			if result.PageIndex != 3 {
				t.Errorf("PageIndex = %d, want 3", result.PageIndex)
			}
		})
	}
}

// TestClassifyOcrDecision tests the OCR confirmation stage and its
// threshold boundaries.
func TestClassifyOcrDecision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		ocrText   string
		threshold int
		want      model.PageClass
	}{
		{name: "empty ocr output drops", ocrText: "", threshold: 5, want: model.PageDroppedByOcr},
		{name: "whitespace-only ocr output drops", ocrText: " \n\t ", threshold: 5, want: model.PageDroppedByOcr},
		{name: "below threshold drops", ocrText: "abcd", threshold: 5, want: model.PageDroppedByOcr},
		{name: "at threshold keeps", ocrText: "abcde", threshold: 5, want: model.PageKept},
		{name: "above threshold keeps", ocrText: "scanned page text", threshold: 5, want: model.PageKept},
		{name: "custom threshold", ocrText: "abcdefghi", threshold: 10, want: model.PageDroppedByOcr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &fakeRecognizer{text: tt.ocrText}
			page := &fakePage{text: "   "}

			c := New(rec, WithThreshold(tt.threshold))
			result := c.Classify(context.Background(), page)

			if result.Class != tt.want {
				t.Errorf("Class = %s, want %s", result.Class, tt.want)
			}
			if !result.OCRPerformed {
				t.Error("OCRPerformed should be true")
			}
			if rec.calls != 1 {
				t.Errorf("OCR invoked %d times, want 1", rec.calls)
			}
			if wantLen := len(strings.TrimSpace(tt.ocrText)); result.OCRLength != wantLen {
				t.Errorf("OCRLength = %d, want %d", result.OCRLength, wantLen)
			}
		})
	}
}

// TestClassifyFailSafe tests that every tooling failure keeps the page.
func TestClassifyFailSafe(t *testing.T) {
	t.Parallel()

	t.Run("text extraction failure keeps page", func(t *testing.T) {
		t.Parallel()

		rec := &fakeRecognizer{}
		page := &fakePage{textErr: errors.New("damaged xref")}

		result := New(rec).Classify(context.Background(), page)

		if result.Class != model.PageKept {
			t.Errorf("Class = %s, want kept", result.Class)
		}
		if result.Warning == "" {
			t.Error("expected a warning for the failed extraction")
		}
		if rec.calls != 0 {
			t.Error("OCR should not run when extraction fails")
		}
	})

	t.Run("rasterization failure keeps page", func(t *testing.T) {
		t.Parallel()

		rec := &fakeRecognizer{}
		page := &fakePage{text: "", renderErr: errors.New("render failed")}

		result := New(rec).Classify(context.Background(), page)

		if result.Class != model.PageKept {
			t.Errorf("Class = %s, want kept", result.Class)
		}
		if result.Warning == "" {
			t.Error("expected a warning for the failed render")
		}
	})

	t.Run("ocr failure keeps page, repeatably", func(t *testing.T) {
		t.Parallel()

		rec := &fakeRecognizer{err: errors.New("tesseract crashed")}
		c := New(rec)

		// The outcome must be stable under repeated failures.
		for i := 0; i < 3; i++ {
			page := &fakePage{index: i, text: ""}
			result := c.Classify(context.Background(), page)

			if result.Class != model.PageKept {
				t.Fatalf("attempt %d: Class = %s, want kept", i, result.Class)
			}
			if result.OCRPerformed {
				t.Fatalf("attempt %d: OCRPerformed should be false on failure", i)
			}
			if result.Warning == "" {
				t.Fatalf("attempt %d: expected warning", i)
			}
		}
	})

	t.Run("nil recognizer keeps text-blank page with warning", func(t *testing.T) {
		t.Parallel()

		page := &fakePage{text: " "}

		result := New(nil).Classify(context.Background(), page)

		if result.Class != model.PageKept {
			t.Errorf("Class = %s, want kept", result.Class)
		}
		if result.Warning == "" {
			t.Error("expected warning when OCR is unavailable")
		}
		if page.renderCalls != 0 {
			t.Error("page should not be rasterized without a recognizer")
		}
	})
}

// TestClassifierOptions tests option handling.
func TestClassifierOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		c := New(&fakeRecognizer{})

		if c.threshold != 5 {
			t.Errorf("threshold = %d, want 5", c.threshold)
		}
		if c.dpi != 200 {
			t.Errorf("dpi = %v, want 200", c.dpi)
		}
	})

	t.Run("non-positive options keep defaults", func(t *testing.T) {
		t.Parallel()

		c := New(&fakeRecognizer{}, WithThreshold(0), WithDPI(-50))

		if c.threshold != 5 {
			t.Errorf("threshold = %d, want 5", c.threshold)
		}
		if c.dpi != 200 {
			t.Errorf("dpi = %v, want 200", c.dpi)
		}
	})
}
