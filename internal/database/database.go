// Package database defines the persistence contract for catalog entries.
// The writer is the only component allowed to call these methods, in the
// order Init, InsertEntry..., Close, exactly once per run for Init/Close.
package database

import (
	"context"

	"github.com/gamedex/catalog-crawler/internal/catalog"
)

// Store persists normalized catalog entries.
type Store interface {
	// Init opens the single persistence connection and prepares the schema.
	Init(ctx context.Context) error

	// InsertEntry persists one entry. Failures are not retried here.
	InsertEntry(ctx context.Context, entry *catalog.Entry) error

	// Close releases the connection. Safe to call after a failed Init.
	Close(ctx context.Context) error
}

// NoOpStore discards all entries. Useful for dry runs without a database.
type NoOpStore struct{}

// Init for NoOpStore does nothing.
func (NoOpStore) Init(context.Context) error { return nil }

// InsertEntry for NoOpStore does nothing.
func (NoOpStore) InsertEntry(context.Context, *catalog.Entry) error { return nil }

// Close for NoOpStore does nothing.
func (NoOpStore) Close(context.Context) error { return nil }
