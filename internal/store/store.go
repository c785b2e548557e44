// Package store provides RecordStore implementations for the purchase
// ledger: a flat CSV file with atomic replace-on-write, a SQLite
// database, and an in-memory store used as default backend and test
// double.
package store

import (
	"context"

	"purchases/internal/core"
)

// RecordStore loads and saves the whole record set. The ledger is a
// single-writer table rewritten in full on every mutation; stores do not
// provide locking or conflict detection across sessions (last writer
// wins).
type RecordStore interface {
	// Load returns the persisted record set. A missing backing store
	// is an empty table, not an error.
	Load(ctx context.Context) ([]core.PurchaseRecord, error)

	// Save replaces the persisted record set atomically.
	Save(ctx context.Context, records []core.PurchaseRecord) error

	Close() error
}
