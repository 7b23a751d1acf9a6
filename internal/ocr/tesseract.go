package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract is a Recognizer backed by the Tesseract engine through the
// gosseract client.
//
// Design decision: A fresh client is created per call rather than kept
// open across pages. Client setup is cheap next to recognition itself,
// and per-call clients avoid accumulating native memory over a long
// batch of scanned documents.
type Tesseract struct {
	languages     []string
	dpi           int
	clientFactory func() *gosseract.Client
}

// TesseractOption configures a Tesseract recognizer.
type TesseractOption func(*Tesseract)

// WithLanguages sets the trained-data language hints (e.g., "eng", "deu").
func WithLanguages(langs ...string) TesseractOption {
	return func(t *Tesseract) {
		if len(langs) > 0 {
			t.languages = append([]string(nil), langs...)
		}
	}
}

// WithDPI declares the resolution the input images were rendered at.
// Tesseract uses this for scaling and layout heuristics.
func WithDPI(dpi int) TesseractOption {
	return func(t *Tesseract) {
		if dpi > 0 {
			t.dpi = dpi
		}
	}
}

// NewTesseract creates a Tesseract-backed recognizer.
func NewTesseract(opts ...TesseractOption) *Tesseract {
	t := &Tesseract{
		languages:     []string{"eng"},
		clientFactory: gosseract.NewClient,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Recognize runs Tesseract over the PNG-encoded image and returns the
// recognized text with surrounding whitespace stripped.
func (t *Tesseract) Recognize(ctx context.Context, image []byte) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	client := t.clientFactory()
	defer client.Close()

	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to set OCR input image: %w", err)
	}
	if err := client.SetLanguage(t.languages...); err != nil {
		return "", fmt.Errorf("failed to set OCR languages %v: %w", t.languages, err)
	}
	if t.dpi > 0 {
		if err := client.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(t.dpi)); err != nil {
			return "", fmt.Errorf("failed to set OCR dpi: %w", err)
		}
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr recognition failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Available verifies that the Tesseract engine and its trained data are
// usable by running a recognition pass over a tiny blank image. This is
// meant to be called once before a batch starts, so a missing or broken
// engine is reported to the user up front instead of once per page.
func (t *Tesseract) Available(ctx context.Context) error {
	probe, err := blankProbePNG()
	if err != nil {
		return fmt.Errorf("failed to build OCR probe image: %w", err)
	}
	if _, err := t.Recognize(ctx, probe); err != nil {
		return fmt.Errorf("ocr engine unavailable: %w", err)
	}
	return nil
}

// blankProbePNG returns a small white PNG used to exercise the engine
// end to end without depending on fixture files.
func blankProbePNG() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
