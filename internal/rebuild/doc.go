// Package rebuild writes a copy of a PDF containing only a kept subset
// of its pages, using pdfcpu. Page order is always preserved; producing
// a zero-page document is refused.
package rebuild
