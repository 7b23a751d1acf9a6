package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestGetVersion tests version string resolution.
func TestGetVersion(t *testing.T) {
	t.Run("returns non-empty version", func(t *testing.T) {
		if got := getVersion(); got == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("prefers ldflags value", func(t *testing.T) {
		original := version
		defer func() { version = original }()

		version = "1.2.3"
		if got := getVersion(); got != "1.2.3" {
			t.Errorf("expected 1.2.3, got %q", got)
		}
	})
}

// TestGetCommit tests commit hash resolution.
func TestGetCommit(t *testing.T) {
	t.Run("prefers ldflags value", func(t *testing.T) {
		original := commit
		defer func() { commit = original }()

		commit = "abc1234"
		if got := getCommit(); got != "abc1234" {
			t.Errorf("expected abc1234, got %q", got)
		}
	})

	t.Run("returns non-empty commit", func(t *testing.T) {
		if got := getCommit(); got == "" {
			t.Error("expected non-empty commit")
		}
	})
}

// TestNewVersionCmd tests the version command output.
func TestNewVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "pdfcleaner version") {
		t.Errorf("expected version line, got %q", output)
	}
	if !strings.Contains(output, "commit:") {
		t.Error("expected commit line")
	}
	if !strings.Contains(output, "built:") {
		t.Error("expected build date line")
	}
}
