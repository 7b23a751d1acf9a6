package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dinumapara/New-PDFCleaner/internal/config"
	"github.com/dinumapara/New-PDFCleaner/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past cleaning runs",
		Long: `History lists past cleaning runs recorded in the history database.

Each run shows its target, when it ran, and how many files and pages
were affected. Use --run to show the per-file records of one run.

Examples:
  # Show the most recent runs
  pdfcleaner history

  # Show the last 5 runs
  pdfcleaner history -n 5

  # Show per-file details of run 12
  pdfcleaner history --run 12`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", config.DefaultHistoryLimit,
		"Maximum number of runs to show")
	cmd.Flags().Int64("run", 0,
		"Show the per-file records of the run with this ID")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	runID, err := cmd.Flags().GetInt64("run")
	if err != nil {
		return err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	// Never create the database here: an empty history is not an error.
	// Any other open failure is a real one and must surface.
	opts := database.Options{CreateIfNotExists: false, EnableWAL: true}
	db, err := database.Open(dbDir, opts)
	if errors.Is(err, database.ErrDatabaseNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "No run history found.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	if runID > 0 {
		return showRunRecords(cmd, db, runID)
	}

	return showRecentRuns(cmd, db, limit)
}

// showRecentRuns prints the run history table.
func showRecentRuns(cmd *cobra.Command, db *database.HistoryDB, limit int) error {
	runs, err := db.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No run history found.")
		return nil
	}

	fmt.Fprintf(out, "%-5s %-20s %-8s %-9s %-7s %-13s %s\n",
		"ID", "Started", "Files", "Modified", "Failed", "Pages removed", "Target")
	for _, run := range runs {
		started := run.StartedAt.Format("2006-01-02 15:04:05")
		target := run.Target
		if run.Cancelled {
			target += " (stopped)"
		}
		fmt.Fprintf(out, "%-5d %-20s %-8d %-9d %-7d %-13d %s\n",
			run.ID, started, run.Summary.Files, run.Summary.Modified,
			run.Summary.Failed, run.Summary.PagesRemoved, target)
	}

	return nil
}

// showRunRecords prints the per-file records of one run.
func showRunRecords(cmd *cobra.Command, db *database.HistoryDB, runID int64) error {
	records, err := db.RunRecords(cmd.Context(), runID)
	if err != nil {
		return fmt.Errorf("failed to read run records: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintf(out, "No records found for run %d.\n", runID)
		return nil
	}

	for _, rec := range records {
		fmt.Fprintf(out, "%s (%s)\n", rec.LogLine(), rec.Duration.Round(time.Millisecond))
		for _, warning := range rec.Warnings {
			fmt.Fprintf(out, "  warning: %s\n", warning)
		}
	}

	return nil
}
