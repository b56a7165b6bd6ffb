package store

import (
	"context"
	"sync"

	"github.com/seantiz/proposalgw/internal/model"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps records in process memory. Records are lost on exit.
type MemoryStore struct {
	mu      sync.RWMutex
	records []model.Record
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save appends a copy of r.
func (s *MemoryStore) Save(_ context.Context, r *model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *r)
	return nil
}

// Get returns a copy of the record with the given ID.
func (s *MemoryStore) Get(_ context.Context, id string) (*model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		if s.records[i].ID == id {
			r := s.records[i]
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

// ListAll returns copies of all records in insertion order.
func (s *MemoryStore) ListAll(_ context.Context) ([]*model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Record, len(s.records))
	for i := range s.records {
		r := s.records[i]
		out[i] = &r
	}
	return out, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
