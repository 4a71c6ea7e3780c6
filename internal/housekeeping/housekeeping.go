// Package housekeeping contains filesystem chores around a crawl run:
// relocating generated static files and clearing work directories.
package housekeeping

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"
)

// workDirNames are the directories Clean removes wherever they appear
// under the root.
var workDirNames = []string{"cache", "data", "static"}

// MoveStatic moves the contents of staticDir into destDir, replacing
// anything already there with the same name. A missing staticDir is not
// an error.
func MoveStatic(staticDir, destDir string, logger *zap.Logger) error {
	entries, err := os.ReadDir(staticDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read static directory: %w", err)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	for _, entry := range entries {
		src := filepath.Join(staticDir, entry.Name())
		dst := filepath.Join(destDir, entry.Name())

		if err := os.RemoveAll(dst); err != nil {
			return fmt.Errorf("replace %s: %w", dst, err)
		}
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("move %s: %w", src, err)
		}
		logger.Info("moved static file", zap.String("from", src), zap.String("to", dst))
	}
	return nil
}

// Clean walks root and removes every cache, data, and static directory it
// finds, without descending into them.
func Clean(root string, logger *zap.Logger) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if !slices.Contains(workDirNames, d.Name()) {
			return nil
		}
		logger.Info("removing directory", zap.String("path", path))
		if rmErr := os.RemoveAll(path); rmErr != nil {
			return fmt.Errorf("remove %s: %w", path, rmErr)
		}
		return filepath.SkipDir
	})
}
