package storage

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps records in a map.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok || rec.IsExpired() {
		return nil, notFound(id)
	}
	return rec, nil
}

func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	if err := ValidateID(rec.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return notFound(id)
	}
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		if !rec.IsExpired() {
			out = append(out, rec)
		}
	}
	sortByCreation(out)
	return out, nil
}

func (s *MemoryStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, rec := range s.records {
		if !rec.ExpiresAt.IsZero() && now.After(rec.ExpiresAt) {
			delete(s.records, id)
		}
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func sortByCreation(recs []*Record) {
	slices.SortFunc(recs, func(a, b *Record) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}

var _ Store = (*MemoryStore)(nil)
