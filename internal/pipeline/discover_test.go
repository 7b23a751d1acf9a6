package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestDiscoverFiles tests target resolution for files and directories.
func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	t.Run("directory lists pdfs case-insensitively, non-recursive", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		for _, name := range []string{"b.pdf", "a.PDF", "notes.txt"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600); err != nil {
				t.Fatal(err)
			}
		}
		// PDFs in subdirectories must not be picked up.
		sub := filepath.Join(dir, "nested")
		if err := os.Mkdir(sub, 0750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(sub, "deep.pdf"), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}

		files, err := DiscoverFiles(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{filepath.Join(dir, "a.PDF"), filepath.Join(dir, "b.pdf")}
		if len(files) != 2 || files[0] != want[0] || files[1] != want[1] {
			t.Errorf("DiscoverFiles() = %v, want %v", files, want)
		}
	})

	t.Run("single pdf file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.pdf")
		if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}

		files, err := DiscoverFiles(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 || files[0] != path {
			t.Errorf("DiscoverFiles() = %v, want [%s]", files, path)
		}
	})

	t.Run("non-pdf file is rejected", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.docx")
		if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}

		_, err := DiscoverFiles(path)
		if !errors.Is(err, ErrNotPDF) {
			t.Errorf("err = %v, want ErrNotPDF", err)
		}
	})

	t.Run("directory without pdfs", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}

		_, err := DiscoverFiles(dir)
		if !errors.Is(err, ErrNoPDFFiles) {
			t.Errorf("err = %v, want ErrNoPDFFiles", err)
		}
	})

	t.Run("missing target", func(t *testing.T) {
		t.Parallel()

		if _, err := DiscoverFiles(filepath.Join(t.TempDir(), "missing")); err == nil {
			t.Error("expected error for missing target")
		}
	})
}
