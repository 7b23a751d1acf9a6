// Package transaction implements the per-file safe-replace procedure:
// backup, classify, rebuild into a temporary sibling, atomic rename onto
// the original, backup cleanup.
//
// The state machine guarantees that the original file is never left
// half-written. Every failure path either proves the original intact
// (and reports write-failed with the backup removed) or, if the original
// cannot be verified against its pre-run fingerprint, preserves the
// backup and reports uncertain-state for manual recovery.
package transaction
