// Package storage defines the blob-store capability used for generated
// content files (PS3 RAP files, PSV ZRIF strings) served by the site.
package storage

import "context"

// Provider writes raw artifacts and returns a URI.
type Provider interface {
	PutObject(ctx context.Context, path string, contentType string, data []byte) (string, error)
}

// NoOpProvider discards all writes. Useful for dry runs and tests.
type NoOpProvider struct{}

// PutObject for NoOpProvider does nothing and returns an empty URI.
func (NoOpProvider) PutObject(_ context.Context, _ string, _ string, _ []byte) (string, error) {
	return "", nil
}
