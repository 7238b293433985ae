package prefs

import (
	"context"
	"sync"
)

// MemoryStore keeps preferences in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	owners map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{owners: make(map[string]map[string]string)}
}

func (m *MemoryStore) Load(_ context.Context, owner string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.owners[owner]))
	for k, v := range m.owners[owner] {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, owner string, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	vals, ok := m.owners[owner]
	if !ok {
		vals = make(map[string]string, len(values))
		m.owners[owner] = vals
	}
	for k, v := range values {
		vals[k] = v
	}
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, owner string, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.owners[owner], k)
	}
	if len(m.owners[owner]) == 0 {
		delete(m.owners, owner)
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }
