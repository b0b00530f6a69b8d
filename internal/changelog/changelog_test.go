package changelog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLinesPrefersBullets(t *testing.T) {
	doc := "# v1.2.0\n\n- Added widgets\n  - nested detail\n- Fixed frobnicator\n\nThanks to everyone!\n"
	got := Lines(doc)
	want := []string{"- Added widgets", "  - nested detail", "- Fixed frobnicator"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lines = %q, want %q", got, want)
	}
}

func TestLinesFallsBackToNonBlank(t *testing.T) {
	doc := "First change\n\nSecond change\n"
	got := Lines(doc)
	want := []string{"First change", "Second change"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lines = %q, want %q", got, want)
	}
}

func TestLinesHandlesCRLF(t *testing.T) {
	got := Lines("- one\r\n- two\r\n")
	want := []string{"- one", "- two"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lines = %q, want %q", got, want)
	}
}

func TestLinesEmptyDocument(t *testing.T) {
	if got := Lines("\n\n  \n"); len(got) != 0 {
		t.Fatalf("expected no lines, got %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nope.md"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty body for missing file, got %q", got)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "RELEASE_NOTES.md")
	if err := os.WriteFile(path, []byte("- from file\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"- from file"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Load = %q, want %q", got, want)
	}
}
