package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
	order   []uuid.UUID
}

func NewMemory() *MemoryStore {
	return &MemoryStore{records: make(map[uuid.UUID]Record)}
}

// Record stores r. Re-recording an ID is a no-op.
func (m *MemoryStore) Record(_ context.Context, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[r.ID]; ok {
		return nil
	}
	m.records[r.ID] = r
	m.order = append(m.order, r.ID)
	return nil
}

// ByFile returns the records for path ordered by begin offset, then push time.
func (m *MemoryStore) ByFile(_ context.Context, path string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Record
	for _, id := range m.order {
		if r := m.records[id]; r.Path == path {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Begin != out[j].Begin {
			return out[i].Begin < out[j].Begin
		}
		return out[i].Pushed.Before(out[j].Pushed)
	})
	return out, nil
}

func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

func (m *MemoryStore) Close() error {
	return nil
}
