package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"mediamanager/internal/logging"
)

func TestCleanTempFilesRemovesOnlyCatalogTemps(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "metadata.json")

	files := map[string]bool{
		".metadata.json.123456.tmp": true,
		".metadata.json.abc.tmp":    true,
		"metadata.json":             false,
		".other.json.1.tmp":         false,
		"notes.tmp":                 false,
	}
	for name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	result := CleanTempFiles(catalogPath, logging.NewNop())
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors %+v", result.Errors)
	}
	if len(result.Removed) != 2 {
		t.Fatalf("expected 2 removals, got %v", result.Removed)
	}
	for name, removed := range files {
		_, err := os.Stat(filepath.Join(dir, name))
		if removed && !os.IsNotExist(err) {
			t.Fatalf("%s should be removed", name)
		}
		if !removed && err != nil {
			t.Fatalf("%s should remain: %v", name, err)
		}
	}
}

func TestCleanTempFilesMissingDirectory(t *testing.T) {
	result := CleanTempFiles(filepath.Join(t.TempDir(), "absent", "metadata.json"), nil)
	if len(result.Removed) != 0 || len(result.Errors) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}
