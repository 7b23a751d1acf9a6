package model

// PageClass is the outcome of classifying a single page as blank or not.
//
// Design decision: We use a tri-state rather than a boolean because the
// two detection stages have different authority. A page flagged blank by
// the text-layer check alone is never removed; only an OCR confirmation
// can finalize removal. Keeping the stages distinct in the result makes
// the decision auditable in logs and reports.
type PageClass int

const (
	// PageKept means the page was judged to contain content and is
	// preserved in the output document.
	PageKept PageClass = iota

	// PageDroppedByText means the page was removed based on the text
	// layer alone. This class exists for a text-only policy; the shipped
	// two-stage policy never produces it because OCR is the tie-breaking
	// authority for removal.
	PageDroppedByText

	// PageDroppedByOcr means the page had an empty text layer and OCR
	// confirmed it contains no meaningful content.
	PageDroppedByOcr
)

// String returns a human-readable name for the page class.
func (c PageClass) String() string {
	switch c {
	case PageKept:
		return "kept"
	case PageDroppedByText:
		return "dropped-by-text"
	case PageDroppedByOcr:
		return "dropped-by-ocr"
	default:
		return "unknown"
	}
}

// Dropped reports whether the page is removed from the output document.
func (c PageClass) Dropped() bool {
	return c == PageDroppedByText || c == PageDroppedByOcr
}

// ClassificationResult records the blank/non-blank decision for one page
// together with the evidence that produced it.
type ClassificationResult struct {
	// PageIndex is the zero-based index of the page within its document.
	PageIndex int `json:"page_index"`

	// Class is the final classification outcome.
	Class PageClass `json:"class"`

	// TextLength is the rune count of the extracted text layer after
	// stripping leading and trailing whitespace.
	TextLength int `json:"text_length"`

	// OCRLength is the rune count of the stripped OCR output. Only
	// meaningful when OCRPerformed is true.
	OCRLength int `json:"ocr_length"`

	// OCRPerformed is true when the page was rasterized and run through
	// the OCR engine. Pages with a non-empty text layer skip OCR.
	OCRPerformed bool `json:"ocr_performed"`

	// Warning is set when a tooling failure (rasterization error, OCR
	// error, missing OCR engine) forced the fail-safe "kept" outcome.
	Warning string `json:"warning,omitempty"`
}
