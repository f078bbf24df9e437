package archive

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type memStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMem returns a Store kept in memory only.
func NewMem() Store {
	return &memStore{records: map[string]Record{}}
}

func (m *memStore) Put(_ context.Context, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[r.ID] = r
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookup(id)
}

func (m *memStore) lookup(id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrNotFound
	}
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	var match Record
	n := 0
	for k, r := range m.records {
		if strings.HasPrefix(k, id) {
			match = r
			n++
		}
	}
	switch n {
	case 0:
		return Record{}, ErrNotFound
	case 1:
		return match, nil
	default:
		return Record{}, ErrAmbiguous
	}
}

func (m *memStore) List(_ context.Context, limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, err := m.lookup(id)
	if err != nil {
		return err
	}
	delete(m.records, r.ID)
	return nil
}

func (m *memStore) Close() error { return nil }
