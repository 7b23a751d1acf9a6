// Package main provides the entry point for the pdfcleaner CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pdfcleaner.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdfcleaner",
		Short: "Remove blank pages from scanned PDF files",
		Long: `pdfcleaner removes blank pages from scanned PDF files.

A page is removed only when its embedded text layer is empty AND OCR on a
rendered image of the page confirms it carries no text. When OCR cannot
run or fails, the page is kept. Every file is backed up before it is
rewritten in place.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCleanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
