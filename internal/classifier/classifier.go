package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/dinumapara/New-PDFCleaner/internal/config"
	"github.com/dinumapara/New-PDFCleaner/internal/model"
	"github.com/dinumapara/New-PDFCleaner/internal/ocr"
)

// Page is the read-only page view the classifier consumes. The pdf
// package's Page satisfies it; tests use in-memory fakes.
type Page interface {
	// Index returns the zero-based page index within its document.
	Index() int

	// Text returns the embedded text layer of the page, without OCR.
	Text() (string, error)

	// RenderPNG rasterizes the page at the given resolution.
	RenderPNG(dpi float64) ([]byte, error)
}

// Classifier decides whether a single page is blank.
type Classifier struct {
	recognizer ocr.Recognizer
	threshold  int
	dpi        float64
	logger     *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithThreshold sets the minimum stripped OCR output length, in runes,
// for a page to count as having content. Non-positive values keep the
// default.
func WithThreshold(threshold int) Option {
	return func(c *Classifier) {
		if threshold > 0 {
			c.threshold = threshold
		}
	}
}

// WithDPI sets the rasterization resolution for OCR input.
func WithDPI(dpi float64) Option {
	return func(c *Classifier) {
		if dpi > 0 {
			c.dpi = dpi
		}
	}
}

// WithLogger sets a custom logger for per-page decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Classifier using the given OCR recognizer.
// A nil recognizer means OCR is unavailable; every text-blank page is
// then kept with a warning, so the tool degrades to a no-op rather than
// guessing.
func New(recognizer ocr.Recognizer, opts ...Option) *Classifier {
	c := &Classifier{
		recognizer: recognizer,
		threshold:  config.DefaultOCRThreshold,
		dpi:        config.DefaultRasterDPI,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Classify runs the two-stage decision for one page.
//
// Failures never propagate as errors: every failure path resolves to
// "kept" with the Warning field set, because removing a page on the
// strength of a broken tool would destroy content silently.
func (c *Classifier) Classify(ctx context.Context, page Page) model.ClassificationResult {
	result := model.ClassificationResult{
		PageIndex: page.Index(),
		Class:     model.PageKept,
	}

	text, err := page.Text()
	if err != nil {
		result.Warning = fmt.Sprintf("text extraction failed, page kept: %v", err)
		c.logger.Warn("text extraction failed", "page", page.Index(), "error", err)
		return result
	}

	stripped := strings.TrimSpace(text)
	result.TextLength = utf8.RuneCountInString(stripped)
	if stripped != "" {
		// Short-circuit: a non-empty text layer settles the page without
		// OCR, which is orders of magnitude slower than extraction.
		c.logger.Debug("page kept by text layer", "page", page.Index(), "textLength", result.TextLength)
		return result
	}

	if c.recognizer == nil {
		result.Warning = "ocr unavailable, page kept"
		c.logger.Warn("ocr unavailable, keeping text-blank page", "page", page.Index())
		return result
	}

	image, err := page.RenderPNG(c.dpi)
	if err != nil {
		result.Warning = fmt.Sprintf("rasterization failed, page kept: %v", err)
		c.logger.Warn("rasterization failed", "page", page.Index(), "error", err)
		return result
	}

	recognized, err := c.recognizer.Recognize(ctx, image)
	if err != nil {
		result.Warning = fmt.Sprintf("ocr failed, page kept: %v", err)
		c.logger.Warn("ocr failed", "page", page.Index(), "error", err)
		return result
	}

	result.OCRPerformed = true
	result.OCRLength = utf8.RuneCountInString(strings.TrimSpace(recognized))
	if result.OCRLength < c.threshold {
		result.Class = model.PageDroppedByOcr
	}

	c.logger.Debug("page classified by ocr",
		"page", page.Index(),
		"ocrLength", result.OCRLength,
		"threshold", c.threshold,
		"class", result.Class.String(),
	)
	return result
}
