// Package main provides the entry point for the pdfcleaner CLI.
//
// pdfcleaner removes blank pages from scanned PDF files. A page is only
// removed after OCR confirms it carries no text, and every file is backed
// up before it is rewritten in place.
//
// Usage:
//
//	pdfcleaner clean <file-or-directory>
//	pdfcleaner history
//
// See --help for all available options.
package main

// main is the entry point for pdfcleaner.
func main() {
	Execute()
}
