package store

import (
	"context"
	"sync"

	"purchases/internal/core"
)

// MemoryStore keeps the record set in process memory. It doubles as the
// test backend for the service layer.
type MemoryStore struct {
	mu      sync.Mutex
	records []core.PurchaseRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) ([]core.PurchaseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.PurchaseRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, records []core.PurchaseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]core.PurchaseRecord, len(records))
	copy(s.records, records)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
