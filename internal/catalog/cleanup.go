package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mediamanager/internal/logging"
)

// CleanupResult contains the outcome of a temp file cleanup.
type CleanupResult struct {
	Removed []string
	Errors  []CleanupError
}

// CleanupError pairs a path with its cleanup error.
type CleanupError struct {
	Path  string
	Error error
}

// CleanTempFiles removes temp files left next to the catalog by a Save that
// never reached its rename. The caller must hold the collection lock so no
// concurrent Save owns one of them.
func CleanTempFiles(catalogPath string, logger *slog.Logger) CleanupResult {
	result := CleanupResult{}

	catalogPath = strings.TrimSpace(catalogPath)
	if catalogPath == "" {
		return result
	}
	dir := filepath.Dir(catalogPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, CleanupError{Path: dir, Error: err})
		}
		return result
	}

	prefix := tempPrefix(catalogPath)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, tempSuffix) {
			continue
		}
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: path, Error: err})
			if logger != nil {
				logger.Warn("failed to remove stale catalog temp file",
					logging.String("path", path),
					logging.Error(err),
					logging.String(logging.FieldEventType, "catalog_cleanup_failed"),
					logging.String(logging.FieldErrorHint, "check collection root permissions"),
					logging.String(logging.FieldImpact, "stray temp file stays in the collection root"),
				)
			}
			continue
		}
		result.Removed = append(result.Removed, path)
		if logger != nil {
			logger.Info("removed stale catalog temp file",
				logging.String("path", path),
				logging.String(logging.FieldEventType, "catalog_cleanup"),
			)
		}
	}
	return result
}
