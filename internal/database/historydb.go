package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dinumapara/New-PDFCleaner/internal/model"
)

// DBFileName is the name of the SQLite database file.
const DBFileName = "pdfcleaner.db"

// ErrDatabaseNotFound is returned by Open when the database file does
// not exist and CreateIfNotExists is false. Callers use it to tell an
// absent history apart from a genuinely broken database.
var ErrDatabaseNotFound = errors.New("history database not found")

// HistoryDB provides SQLite-based storage for run history.
// It manages connection pooling and provides methods for saving and
// querying past runs.
//
// Design decision: We use a single database file for all runs rather
// than one file per run. This keeps history queries simple and makes
// backup/restore a single-file operation.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s (use CreateIfNotExists option to create)", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Runs store one row per batch invocation
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		target TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		cancelled INTEGER NOT NULL DEFAULT 0,
		files INTEGER NOT NULL DEFAULT 0,
		modified INTEGER NOT NULL DEFAULT 0,
		unchanged INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0,
		pages_removed INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_target ON runs(target);

	-- File records store one row per file attempted in a run
	CREATE TABLE IF NOT EXISTS file_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		path TEXT NOT NULL,
		total_pages INTEGER NOT NULL DEFAULT 0,
		removed_pages INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		failure_reason TEXT NOT NULL DEFAULT '',
		warnings TEXT,
		duration_ms INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_records_run ON file_records(run_id);
	CREATE INDEX IF NOT EXISTS idx_records_path ON file_records(path);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun persists a complete run report and its per-file records.
// The insert is transactional so history never contains a run without
// its records.
func (hdb *HistoryDB) SaveRun(ctx context.Context, report *model.RunReport) (int64, error) {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
	INSERT INTO runs (target, started_at, elapsed_ms, cancelled, files, modified, unchanged, failed, pages_removed)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.Target,
		report.StartedAt.UTC().Format("2006-01-02 15:04:05"),
		report.Elapsed.Milliseconds(),
		boolToInt(report.Cancelled),
		report.Summary.Files,
		report.Summary.Modified,
		report.Summary.Unchanged,
		report.Summary.Failed,
		report.Summary.PagesRemoved,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	for _, rec := range report.Records {
		var warningsJSON []byte
		if len(rec.Warnings) > 0 {
			warningsJSON, err = json.Marshal(rec.Warnings)
			if err != nil {
				return 0, fmt.Errorf("failed to serialize warnings: %w", err)
			}
		}

		_, err = tx.ExecContext(ctx, `
		INSERT INTO file_records (run_id, path, total_pages, removed_pages, status, failure_reason, warnings, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			runID,
			rec.Path,
			rec.TotalPages,
			rec.RemovedPages,
			rec.Status.String(),
			string(rec.FailureReason),
			string(warningsJSON),
			rec.Duration.Milliseconds(),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert file record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// RunMetadata contains summary information about a stored run.
// This is used for displaying run history without loading every
// per-file record.
type RunMetadata struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// Target is the input path the run was started with.
	Target string

	// StartedAt is when the run began.
	StartedAt time.Time

	// Elapsed is the total wall-clock duration of the run.
	Elapsed time.Duration

	// Cancelled is true when the run was stopped before completion.
	Cancelled bool

	// Summary holds the aggregated counts of the run.
	Summary model.RunSummary
}

// RecentRuns retrieves the most recent runs, newest first.
// Limit caps the number of rows returned; zero or negative means no cap.
func (hdb *HistoryDB) RecentRuns(ctx context.Context, limit int) ([]RunMetadata, error) {
	query := `
	SELECT id, target, started_at, elapsed_ms, cancelled, files, modified, unchanged, failed, pages_removed
	FROM runs
	ORDER BY started_at DESC, id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var startedAt string
		var elapsedMs int64
		var cancelled int

		err := rows.Scan(
			&meta.ID,
			&meta.Target,
			&startedAt,
			&elapsedMs,
			&cancelled,
			&meta.Summary.Files,
			&meta.Summary.Modified,
			&meta.Summary.Unchanged,
			&meta.Summary.Failed,
			&meta.Summary.PagesRemoved,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		meta.StartedAt = parseTimestamp(startedAt)
		meta.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		meta.Cancelled = cancelled != 0

		results = append(results, meta)
	}

	return results, rows.Err()
}

// RunRecords retrieves the per-file records of a stored run in attempt order.
func (hdb *HistoryDB) RunRecords(ctx context.Context, runID int64) ([]model.FileProcessingRecord, error) {
	query := `
	SELECT path, total_pages, removed_pages, status, failure_reason, warnings, duration_ms
	FROM file_records
	WHERE run_id = ?
	ORDER BY id
	`

	rows, err := hdb.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query file records: %w", err)
	}
	defer rows.Close()

	var results []model.FileProcessingRecord
	for rows.Next() {
		var rec model.FileProcessingRecord
		var status string
		var reason string
		var warningsJSON sql.NullString
		var durationMs int64

		err := rows.Scan(
			&rec.Path,
			&rec.TotalPages,
			&rec.RemovedPages,
			&status,
			&reason,
			&warningsJSON,
			&durationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file record: %w", err)
		}

		rec.Status = statusFromString(status)
		rec.FailureReason = model.FailureReason(reason)
		rec.Duration = time.Duration(durationMs) * time.Millisecond

		if warningsJSON.Valid && warningsJSON.String != "" {
			if err := json.Unmarshal([]byte(warningsJSON.String), &rec.Warnings); err != nil {
				rec.Warnings = nil
			}
		}

		results = append(results, rec)
	}

	return results, rows.Err()
}

// statusFromString maps a stored status string back to a FileStatus.
func statusFromString(s string) model.FileStatus {
	switch s {
	case model.StatusModified.String():
		return model.StatusModified
	case model.StatusFailed.String():
		return model.StatusFailed
	default:
		return model.StatusUnchanged
	}
}

// boolToInt converts a bool to the 0/1 integer SQLite stores.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
