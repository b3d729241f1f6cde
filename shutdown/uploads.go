package shutdown

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"resumidor/core"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// isUploadName reports whether name has the "<uuid>_<original>" shape the
// processor gives stored uploads. Other files in the directory are left alone.
func isUploadName(name string) bool {
	if len(name) < 38 || name[36] != '_' {
		return false
	}
	_, err := uuid.Parse(name[:36])
	return err == nil
}

// SweepUploads removes upload files in dir last modified before cutoff.
// A zero cutoff removes every upload. A missing directory is not an error.
// It returns the number of files removed and stops early when ctx is done.
func SweepUploads(ctx context.Context, logger *zap.Logger, dir string, cutoff time.Time) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	removed, failed := 0, 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			logger.Warn("Upload sweep interrupted",
				zap.Int("removed", removed),
				zap.Error(err),
			)
			return removed, err
		}
		if entry.IsDir() || !isUploadName(entry.Name()) {
			continue
		}
		if !cutoff.IsZero() {
			info, err := entry.Info()
			if err != nil || !info.ModTime().Before(cutoff) {
				continue
			}
		}

		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			failed++
			logger.Warn("Failed to remove upload",
				zap.String("file", entry.Name()),
				zap.Error(err),
			)
			continue
		}
		removed++
		logger.Debug("Removed upload", zap.String("file", entry.Name()))
	}

	if removed > 0 || failed > 0 {
		logger.Info("Upload sweep complete",
			zap.String("directory", dir),
			zap.Int("removed", removed),
			zap.Int("failed", failed),
		)
	}
	return removed, nil
}

// CleanupUploads returns a hook that removes every upload left in dir, for
// instance by a request interrupted mid-copy. Failures are logged and never
// block shutdown.
func CleanupUploads(logger *zap.Logger, dir string) core.ShutdownFunc {
	return func(ctx context.Context) error {
		if _, err := SweepUploads(ctx, logger, dir, time.Time{}); err != nil && ctx.Err() == nil {
			if logger != nil {
				logger.Warn("Upload cleanup failed", zap.String("directory", dir), zap.Error(err))
			}
		}
		return nil
	}
}
