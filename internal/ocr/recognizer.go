package ocr

import "context"

// Recognizer runs optical character recognition over an encoded image
// and returns the recognized text with surrounding whitespace stripped.
//
// Design decision: The interface is a single method taking encoded bytes
// rather than an image.Image because the only consumer hands the result
// straight to an external engine that wants encoded input, and fakes in
// tests never need to decode the payload.
type Recognizer interface {
	// Recognize returns the recognized text for the PNG-encoded image.
	Recognize(ctx context.Context, png []byte) (string, error)
}
