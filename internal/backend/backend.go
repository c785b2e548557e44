// Package backend selects and constructs the record store from
// configuration.
package backend

import (
	"fmt"
	"log/slog"

	"purchases/internal/config"
	"purchases/internal/store"
)

// Type identifies a record store implementation.
type Type string

const (
	CSV    Type = "csv"
	SQLite Type = "sqlite"
	Memory Type = "memory"
)

// String implements fmt.Stringer.
func (t Type) String() string { return string(t) }

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case CSV, SQLite, Memory:
		return true
	default:
		return false
	}
}

// Open constructs the record store named by the configuration. The
// returned store's Close releases its resources.
func Open(cfg *config.Config, logger *slog.Logger) (store.RecordStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	t := Type(cfg.StoreBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid store backend: %s", cfg.StoreBackend)
	}

	switch t {
	case SQLite:
		s, err := store.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite store", "backend", t.String(), "path", cfg.SQLiteDBPath)
		return s, nil
	case CSV:
		logger.Info("Initialized csv store", "backend", t.String(), "path", cfg.CSVPath)
		return store.NewCSVStore(cfg.CSVPath), nil
	default:
		logger.Info("Initialized memory store", "backend", t.String())
		return store.NewMemoryStore(), nil
	}
}
