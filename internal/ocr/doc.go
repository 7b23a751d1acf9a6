// Package ocr provides optical character recognition over rasterized
// page images, backed by Tesseract via gosseract.
package ocr
