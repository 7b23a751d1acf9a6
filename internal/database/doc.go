// Package database provides SQLite-based storage for run history.
//
// Each batch run is persisted with its per-file records so that past
// cleanups can be reviewed with the history command. The database lives
// in the XDG data directory by default.
package database
