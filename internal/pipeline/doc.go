// Package pipeline runs the per-file transaction over a batch of input
// files.
//
// Files are processed strictly one at a time, in listing order, on a
// single worker. Cancellation is cooperative and is only observed at
// file boundaries: a file that has started processing always completes,
// so an in-flight OCR call or document rewrite is never interrupted and
// the on-disk state stays consistent. After each file a progress event
// is emitted, which the caller hands off to its own goroutine or UI.
package pipeline
