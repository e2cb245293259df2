package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rcliao/agentic-memory/internal/model"
)

// VolatileStore keeps records in process memory. Nothing survives a restart;
// it is meant for session-scoped memory and tests.
type VolatileStore struct {
	mu   sync.RWMutex
	recs map[string]*model.MemoryRecord
}

// NewVolatileStore creates an empty in-process store.
func NewVolatileStore() *VolatileStore {
	return &VolatileStore{recs: make(map[string]*model.MemoryRecord)}
}

func (s *VolatileStore) Save(ctx context.Context, rec *model.MemoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[rec.ID] = rec.Clone()
	return nil
}

func (s *VolatileStore) Get(ctx context.Context, id string) (*model.MemoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return rec.Clone(), nil
}

func (s *VolatileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[id]; !ok {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	delete(s.recs, id)
	return nil
}

func (s *VolatileStore) ListAll(ctx context.Context) ([]*model.MemoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.recs), nil
}

func (s *VolatileStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recs), nil
}

func (s *VolatileStore) Close() error { return nil }

// snapshot deep-copies a record map into a deterministic slice,
// newest created first, ties broken by id.
func snapshot(recs map[string]*model.MemoryRecord) []*model.MemoryRecord {
	out := make([]*model.MemoryRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
