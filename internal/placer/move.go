package placer

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"syscall"

	"mediamanager/internal/fileutil"
	"mediamanager/internal/logging"
)

// renameFile performs the same-volume move. Tests replace it to simulate
// failures.
var renameFile = renameNoReplace

// move renames src to dst without ever replacing dst. Cross-device moves fall
// back to a verified copy followed by removal of the source.
func (p *Placer) move(logger *slog.Logger, src, dst string) error {
	err := renameFile(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	logger.Debug("cross-device move; copying", logging.String("source", src), logging.String("destination", dst))
	if err := fileutil.CopyFileExclusive(src, dst); err != nil {
		return fmt.Errorf("copy across devices: %w", err)
	}
	if err := os.Remove(src); err != nil {
		logging.WarnWithContext(logger, "source kept after cross-device copy",
			"placer_source_remove_failed",
			logging.String("source", src),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove the original file manually"),
			logging.String(logging.FieldImpact, "the file now exists in both locations"),
		)
	}
	return nil
}

// renameChecked is the portable fallback: it refuses existing destinations
// before renaming. It is not atomic against other writers.
func renameChecked(src, dst string) error {
	taken, err := fileutil.Exists(dst)
	if err != nil {
		return err
	}
	if taken {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	}
	return os.Rename(src, dst)
}
