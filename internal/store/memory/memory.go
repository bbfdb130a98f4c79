// Package memory is the in-memory record store. It mirrors the
// wholesale load/save semantics of a local-device blob: the whole set
// is swapped on SaveAll and snapshots are copies, never aliases.
package memory

import (
	"context"
	"sync"

	"gastos/internal/core"
	"gastos/internal/store"
)

type Store struct {
	mu      sync.Mutex
	records []core.Record
}

func New() *Store {
	return &Store{}
}

// NewSeeded creates a store preloaded with records, copying the input.
func NewSeeded(records []core.Record) *Store {
	s := New()
	s.records = append(s.records, records...)
	return s
}

func (s *Store) LoadAll(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *Store) SaveAll(_ context.Context, records []core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]core.Record, len(records))
	copy(s.records, records)
	return nil
}

func (s *Store) Add(_ context.Context, r core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return nil
}

func (s *Store) Update(_ context.Context, r core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == r.ID {
			s.records[i] = r
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) Close() error {
	return nil
}
