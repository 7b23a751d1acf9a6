package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dinumapara/New-PDFCleaner/internal/classifier"
	"github.com/dinumapara/New-PDFCleaner/internal/config"
	"github.com/dinumapara/New-PDFCleaner/internal/database"
	applog "github.com/dinumapara/New-PDFCleaner/internal/log"
	"github.com/dinumapara/New-PDFCleaner/internal/model"
	"github.com/dinumapara/New-PDFCleaner/internal/ocr"
	"github.com/dinumapara/New-PDFCleaner/internal/pdf"
	"github.com/dinumapara/New-PDFCleaner/internal/pipeline"
	"github.com/dinumapara/New-PDFCleaner/internal/rebuild"
	"github.com/dinumapara/New-PDFCleaner/internal/report"
	"github.com/dinumapara/New-PDFCleaner/internal/transaction"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [file-or-directory]...",
		Short: "Remove blank pages from PDF files",
		Long: `Clean removes blank pages from scanned PDF files.

Each target is either a single PDF file or a directory whose PDF files
are processed (non-recursive). Files are processed one at a time, in
directory listing order.

A page is removed only when its embedded text layer is empty AND OCR on
a rendered image of the page confirms it carries no text. When OCR is
unavailable or fails on a page, that page is kept. A file whose pages
are all blank is never emptied; it is left untouched and reported as
failed.

Every file is backed up before rewriting. The backup is removed after a
successful rewrite. When the original may have been damaged by a failed
rewrite, the backup is kept next to the file for manual recovery; it is
never restored automatically.

Examples:
  # Clean all PDF files in a directory
  pdfcleaner clean ~/scans

  # Clean a single file with a higher OCR threshold
  pdfcleaner clean --threshold 10 report.pdf

  # German documents, JSON report written to file
  pdfcleaner clean --lang deu --json -o report.json ~/scans

  # Use a custom configuration file
  pdfcleaner clean -c myconfig.yml ~/scans`,
		Args: cobra.ArbitraryArgs,
		RunE: runCleanCmd,
	}

	// Detection flags
	cmd.Flags().Float64P("dpi", "d", config.DefaultRasterDPI,
		"Resolution for rendering pages to OCR input (72-600)")
	cmd.Flags().IntP("threshold", "t", config.DefaultOCRThreshold,
		"Minimum recognized characters for a page to count as non-blank")
	cmd.Flags().StringSliceP("lang", "l", []string{config.DefaultOCRLanguage},
		"Tesseract language hints (e.g., eng, deu)")

	// Safety flags
	cmd.Flags().StringP("backup-suffix", "b", config.DefaultBackupSuffix,
		"Suffix appended to form the backup file path")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pdfcleaner.yml in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")

	return cmd
}

// runCleanCmd executes the clean command.
func runCleanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging: console plus a per-run log file.
	logger, closeLog := applog.NewRunLogger(os.Stderr, cfg.LogDir, cfg.Verbose)
	defer func() { _ = closeLog() }()
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown.
	// Cancellation takes effect at file boundaries: the file being
	// processed when the signal arrives always completes.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, stopping after current file...")
		cancel()
	}()

	return runClean(ctx, cmd, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the config file and cobra command flags.
// Precedence is defaults < config file < explicitly set flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load the config file first so explicit flags can override it.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently continue when no file is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if cmd.Flags().Changed("dpi") {
		cfg.RasterDPI, err = cmd.Flags().GetFloat64("dpi")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("threshold") {
		cfg.OCRThreshold, err = cmd.Flags().GetInt("threshold")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("lang") {
		cfg.OCRLanguages, err = cmd.Flags().GetStringSlice("lang")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("backup-suffix") {
		cfg.BackupSuffix, err = cmd.Flags().GetString("backup-suffix")
		if err != nil {
			return nil, err
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	if noHistory {
		cfg.SaveHistory = false
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Targets = args

	return cfg, nil
}

// documentAdapter bridges pdf.Document to the page interface the
// transaction layer classifies against.
type documentAdapter struct {
	*pdf.Document
}

// Page returns the page at the given zero-based index.
func (d *documentAdapter) Page(index int) classifier.Page {
	return d.Document.Page(index)
}

// openDocument opens a PDF file for classification.
func openDocument(path string) (transaction.Document, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	return &documentAdapter{Document: doc}, nil
}

// runClean executes the cleaning run.
func runClean(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	files, err := discoverTargets(cfg.Targets)
	if err != nil {
		return err
	}

	logger.Info("starting run",
		"targets", cfg.Targets,
		"files", len(files),
		"dpi", cfg.RasterDPI,
		"threshold", cfg.OCRThreshold,
		"languages", cfg.OCRLanguages,
	)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processing %d PDF file(s)...\n\n", len(files))

	tx := transaction.New(
		openDocument,
		newClassifier(ctx, cfg, logger),
		rebuild.New(),
		transaction.WithBackupSuffix(cfg.BackupSuffix),
		transaction.WithLogger(logger),
	)

	// The runner goroutine sends progress over a channel; the main
	// goroutine drains it so per-file output never interleaves.
	progress := make(chan pipeline.ProgressEvent, 1)
	runner := pipeline.NewRunner(tx,
		pipeline.WithLogger(logger),
		pipeline.WithProgress(func(ev pipeline.ProgressEvent) {
			progress <- ev
		}),
	)

	startTime := time.Now()

	var (
		records []model.FileProcessingRecord
		runErr  error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(progress)
		records, runErr = runner.Run(gctx, files)
		return nil
	})

	for ev := range progress {
		fmt.Fprintf(out, "[%d/%d] %s\n", ev.Completed, ev.Total, ev.Record.LogLine())
	}
	_ = g.Wait()

	cancelled := errors.Is(runErr, context.Canceled)
	if runErr != nil && !cancelled {
		return runErr
	}

	runReport := model.NewRunReport(
		strings.Join(cfg.Targets, ", "),
		records,
		startTime,
		time.Since(startTime),
		cancelled,
	)

	if cancelled {
		fmt.Fprintf(out, "\nRun stopped by user after %d of %d file(s)\n\n",
			len(records), len(files))
	} else {
		fmt.Fprintf(out, "\nRun finished in %s\n\n",
			runReport.Elapsed.Round(time.Millisecond))
	}

	if err := outputReport(cfg, runReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	// History is saved even when the run was cancelled: the records of a
	// stopped run are still a faithful prefix of the batch.
	if err := saveRunReport(context.WithoutCancel(ctx), cfg, runReport, logger); err != nil {
		logger.Error("failed to save run history", "error", err)
	}

	return nil
}

// discoverTargets expands each target into its PDF files.
func discoverTargets(targets []string) ([]string, error) {
	var files []string
	for _, target := range targets {
		found, err := pipeline.DiscoverFiles(target)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// newClassifier builds the page classifier, probing Tesseract first.
// When OCR is unavailable the classifier runs without a recognizer and
// keeps every page, because blankness can no longer be confirmed.
func newClassifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) *classifier.Classifier {
	var recognizer ocr.Recognizer

	tess := ocr.NewTesseract(
		ocr.WithLanguages(cfg.OCRLanguages...),
		ocr.WithDPI(int(cfg.RasterDPI)),
	)
	if err := tess.Available(ctx); err != nil {
		logger.Warn("tesseract unavailable, pages cannot be confirmed blank", "error", err)
		fmt.Fprintln(os.Stderr,
			"Warning: Tesseract OCR is not available. No pages will be removed.")
	} else {
		recognizer = tess
	}

	return classifier.New(recognizer,
		classifier.WithThreshold(cfg.OCRThreshold),
		classifier.WithDPI(cfg.RasterDPI),
		classifier.WithLogger(logger),
	)
}

// outputReport outputs the run report in the requested format.
func outputReport(cfg *config.Config, runReport *model.RunReport) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output)
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(runReport)
	return err
}

// saveRunReport saves the run to the history database if enabled.
func saveRunReport(ctx context.Context, cfg *config.Config, runReport *model.RunReport, logger *slog.Logger) error {
	if !cfg.SaveHistory {
		return nil
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	runID, err := db.SaveRun(ctx, runReport)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	logger.Info("run saved to history", "runID", runID, "dir", cfg.DBDir)
	return nil
}
