// Package cache stores fetched responses on disk, keyed by URL.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Cache is a directory of cached response bodies. Filenames are the SHA-256
// hex digest of the source URL so arbitrary URLs map to safe paths.
type Cache struct {
	dir string
}

// New creates a cache rooted at dir, creating the directory if needed.
func New(dir string) (*Cache, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Key returns the cache filename for a URL.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached body for url, if present.
func (c *Cache) Get(url string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(c.dir, Key(url)))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Put stores the body for url, replacing any previous response.
func (c *Cache) Put(url, body string) error {
	path := filepath.Join(c.dir, Key(url))
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}
