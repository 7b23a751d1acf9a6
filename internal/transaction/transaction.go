package transaction

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dinumapara/New-PDFCleaner/internal/classifier"
	"github.com/dinumapara/New-PDFCleaner/internal/config"
	"github.com/dinumapara/New-PDFCleaner/internal/model"
)

// Document is the page-level view the transaction needs from an opened
// PDF. The pdf package's Document is adapted to it in the CLI wiring;
// tests use in-memory fakes.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Page returns the read-only view of the page at the zero-based index.
	Page(index int) classifier.Page

	// Close releases the document. It must be called before the file on
	// disk is replaced.
	Close() error
}

// Opener opens the document at a path for classification.
type Opener func(path string) (Document, error)

// Classifier decides whether a single page is blank.
type Classifier interface {
	Classify(ctx context.Context, page classifier.Page) model.ClassificationResult
}

// Rebuilder writes a copy of src to dst containing only the kept pages.
type Rebuilder interface {
	Rebuild(src, dst string, kept []int) error
}

// Transaction executes the safe-replace procedure for single files.
type Transaction struct {
	opener       Opener
	classifier   Classifier
	rebuilder    Rebuilder
	backupSuffix string
	logger       *slog.Logger
}

// Option configures a Transaction.
type Option func(*Transaction)

// WithBackupSuffix sets the suffix appended to a file's path to form its
// backup path.
func WithBackupSuffix(suffix string) Option {
	return func(t *Transaction) {
		if suffix != "" {
			t.backupSuffix = suffix
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transaction) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a Transaction from its collaborators.
func New(opener Opener, cls Classifier, rebuilder Rebuilder, opts ...Option) *Transaction {
	t := &Transaction{
		opener:       opener,
		classifier:   cls,
		rebuilder:    rebuilder,
		backupSuffix: config.DefaultBackupSuffix,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	return t
}

// fingerprint identifies a file's content cheaply enough to compute
// twice per transaction, and precisely enough that a match after a
// failed rename proves the original was not touched.
type fingerprint struct {
	size int64
	hash [sha256.Size]byte
}

// Execute runs the safe-replace procedure for one file and returns its
// record. Errors never escape: every failure is folded into a record
// with a Failed status so the batch can continue with the next file.
func (t *Transaction) Execute(ctx context.Context, path string) model.FileProcessingRecord {
	record := model.FileProcessingRecord{
		Path:      path,
		StartedAt: time.Now(),
	}
	record = t.execute(ctx, path, record)
	record.Duration = time.Since(record.StartedAt)
	return record
}

func (t *Transaction) execute(ctx context.Context, path string, record model.FileProcessingRecord) model.FileProcessingRecord {
	logger := t.logger.With("file", filepath.Base(path))

	// Start: back up the original before anything else. The original is
	// untouched if this fails.
	backupPath := path + t.backupSuffix
	original, err := copyFile(path, backupPath)
	if err != nil {
		// A partial backup is useless and would shadow the next attempt.
		_ = os.Remove(backupPath) //nolint:errcheck // Best effort cleanup
		logger.Error("backup failed", "backup", backupPath, "error", err)
		return fail(record, model.ReasonBackupFailed)
	}

	// Loaded: the original is intact at this point, so the backup is
	// removed on read failure rather than left behind as clutter.
	doc, err := t.opener(path)
	if err != nil {
		t.removeBackup(backupPath, &record, logger)
		logger.Error("failed to open document", "error", err)
		return fail(record, model.ReasonReadFailed)
	}

	// Classified: every page, strictly in ascending index order.
	total := doc.PageCount()
	record.TotalPages = total
	kept := make([]int, 0, total)
	for i := 0; i < total; i++ {
		result := t.classifier.Classify(ctx, doc.Page(i))
		if result.Warning != "" {
			record.Warnings = append(record.Warnings, fmt.Sprintf("page %d: %s", i+1, result.Warning))
		}
		if !result.Class.Dropped() {
			kept = append(kept, i)
		}
	}
	if err := doc.Close(); err != nil {
		logger.Warn("failed to close document", "error", err)
	}

	record.RemovedPages = total - len(kept)

	// Decision.
	if record.RemovedPages == 0 {
		t.removeBackup(backupPath, &record, logger)
		record.Status = model.StatusUnchanged
		logger.Info("no blank pages found", "totalPages", total)
		return record
	}
	if len(kept) == 0 {
		t.removeBackup(backupPath, &record, logger)
		logger.Warn("all pages classified blank, refusing to write empty document", "totalPages", total)
		return fail(record, model.ReasonAllPagesBlank)
	}

	// Rebuilt: the trimmed document goes to a fresh temporary sibling,
	// never directly over the original.
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		t.removeBackup(backupPath, &record, logger)
		logger.Error("failed to create temporary file", "error", err)
		return fail(record, model.ReasonWriteFailed)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		logger.Warn("failed to close temporary file handle", "error", err)
	}

	if err := t.rebuilder.Rebuild(path, tmpPath, kept); err != nil {
		_ = os.Remove(tmpPath) //nolint:errcheck // Best effort cleanup
		// The rebuild only read the original; it is provably intact.
		t.removeBackup(backupPath, &record, logger)
		logger.Error("rebuild failed", "error", err)
		return fail(record, model.ReasonWriteFailed)
	}

	// Committed: one atomic rename swaps the trimmed document in.
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) //nolint:errcheck // Best effort cleanup
		logger.Error("failed to replace original", "error", err)

		// The rename may have failed before or after touching the
		// destination. Only a fingerprint match proves the original
		// survived; anything else keeps the backup for manual recovery.
		current, verr := fingerprintFile(path)
		if verr != nil || current != original {
			logger.Error("original could not be verified, backup preserved", "backup", backupPath)
			return fail(record, model.ReasonUncertainState)
		}
		t.removeBackup(backupPath, &record, logger)
		return fail(record, model.ReasonWriteFailed)
	}

	// Cleanup: the replace succeeded, so a stale backup is cosmetic. A
	// failure here is logged but never fails the file.
	t.removeBackup(backupPath, &record, logger)

	record.Status = model.StatusModified
	logger.Info("blank pages removed",
		"totalPages", total,
		"removedPages", record.RemovedPages,
	)
	return record
}

// removeBackup deletes the backup file, downgrading failure to a
// warning on the record.
func (t *Transaction) removeBackup(backupPath string, record *model.FileProcessingRecord, logger *slog.Logger) {
	if err := os.Remove(backupPath); err != nil && !os.IsNotExist(err) {
		record.Warnings = append(record.Warnings, fmt.Sprintf("backup not removed: %s", backupPath))
		logger.Warn("failed to remove backup", "backup", backupPath, "error", err)
	}
}

// fail marks the record failed with the given reason.
func fail(record model.FileProcessingRecord, reason model.FailureReason) model.FileProcessingRecord {
	record.Status = model.StatusFailed
	record.FailureReason = reason
	return record
}

// copyFile copies src to dst and returns the fingerprint of the copied
// content, computed from the same byte stream as the copy so there is no
// window for the file to change between copy and hash.
func copyFile(src, dst string) (fingerprint, error) {
	var fp fingerprint

	in, err := os.Open(src) //nolint:gosec // Processing user-selected files is the point
	if err != nil {
		return fp, fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close() //nolint:errcheck // Read-only handle

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // Backup next to original
	if err != nil {
		return fp, fmt.Errorf("failed to create %s: %w", dst, err)
	}

	hasher := sha256.New()
	size, err := io.Copy(io.MultiWriter(out, hasher), in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fp, fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	fp.size = size
	copy(fp.hash[:], hasher.Sum(nil))
	return fp, nil
}

// fingerprintFile computes the fingerprint of an existing file.
func fingerprintFile(path string) (fingerprint, error) {
	var fp fingerprint

	f, err := os.Open(path) //nolint:gosec // Verifying the file we just processed
	if err != nil {
		return fp, err
	}
	defer f.Close() //nolint:errcheck // Read-only handle

	hasher := sha256.New()
	size, err := io.Copy(hasher, f)
	if err != nil {
		return fp, err
	}

	fp.size = size
	copy(fp.hash[:], hasher.Sum(nil))
	return fp, nil
}
