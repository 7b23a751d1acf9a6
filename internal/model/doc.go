// Package model defines the core data structures shared across the
// application: per-page classification results, per-file processing
// records, and per-run reports.
//
// The model package has no dependencies on other internal packages,
// allowing it to be imported by all layers (classifier, transaction,
// pipeline, report, database) without circular dependencies.
package model
