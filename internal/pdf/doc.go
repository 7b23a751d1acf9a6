// Package pdf provides read-only access to PDF documents via MuPDF
// (go-fitz): page counts, the embedded text layer of a page, and
// on-demand rasterization of a page for OCR input.
//
// Writing trimmed documents is deliberately not part of this package;
// see the rebuild package, which uses pdfcpu for that.
package pdf
