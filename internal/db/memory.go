package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MemoryDatabase is an in-process Database holding a JSON tree. It backs
// local development and tests; values are normalized through encoding/json
// so reads observe exactly what the hosted database would return.
type MemoryDatabase struct {
	mu   sync.RWMutex
	root map[string]interface{}
	keys *pushKeys
}

// NewMemoryDatabase returns an empty tree.
func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{
		root: map[string]interface{}{},
		keys: &pushKeys{now: time.Now},
	}
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func normalizeValue(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MemoryDatabase) lookup(parts []string) interface{} {
	var node interface{} = m.root
	for _, p := range parts {
		obj, ok := node.(map[string]interface{})
		if !ok {
			return nil
		}
		node, ok = obj[p]
		if !ok {
			return nil
		}
	}
	return node
}

// store writes value at parts, creating parents and pruning empty ones when
// value is nil. Empty objects are stored as absent, like the hosted database.
func (m *MemoryDatabase) store(parts []string, value interface{}) {
	if obj, ok := value.(map[string]interface{}); ok && len(obj) == 0 {
		value = nil
	}
	if len(parts) == 0 {
		if obj, ok := value.(map[string]interface{}); ok {
			m.root = obj
		} else {
			m.root = map[string]interface{}{}
		}
		return
	}
	m.root = storeIn(m.root, parts, value)
}

func storeIn(obj map[string]interface{}, parts []string, value interface{}) map[string]interface{} {
	if obj == nil {
		if value == nil {
			return nil
		}
		obj = map[string]interface{}{}
	}
	key := parts[0]
	if len(parts) == 1 {
		if value == nil {
			delete(obj, key)
		} else {
			obj[key] = value
		}
	} else {
		child, _ := obj[key].(map[string]interface{})
		child = storeIn(child, parts[1:], value)
		if len(child) == 0 {
			delete(obj, key)
		} else {
			obj[key] = child
		}
	}
	return obj
}

func (m *MemoryDatabase) GetRaw(_ context.Context, path string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	node := m.lookup(splitPath(path))
	if obj, ok := node.(map[string]interface{}); ok && len(obj) == 0 {
		node = nil
	}
	b, err := json.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return b, nil
}

func (m *MemoryDatabase) Get(ctx context.Context, path string, v interface{}) error {
	raw, err := m.GetRaw(ctx, path)
	if err != nil {
		return err
	}
	if err := decodeRaw(raw, v); err != nil {
		if err == ErrNotFound {
			return err
		}
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (m *MemoryDatabase) Push(_ context.Context, path string, v interface{}) (string, error) {
	value, err := normalizeValue(v)
	if err != nil {
		return "", fmt.Errorf("push %s: %w", path, err)
	}
	key, err := m.keys.next()
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(append(splitPath(path), key), value)
	return key, nil
}

func (m *MemoryDatabase) Set(_ context.Context, path string, v interface{}) error {
	value, err := normalizeValue(v)
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(splitPath(path), value)
	return nil
}

func (m *MemoryDatabase) Update(_ context.Context, path string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return ErrEmptyUpdate
	}
	values := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		nv, err := normalizeValue(v)
		if err != nil {
			return fmt.Errorf("update %s/%s: %w", path, k, err)
		}
		values[k] = nv
	}
	base := splitPath(path)
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		parts := append(append([]string(nil), base...), splitPath(k)...)
		m.store(parts, v)
	}
	return nil
}

func (m *MemoryDatabase) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(splitPath(path), nil)
	return nil
}

// Transaction holds the write lock while fn runs, so fn must not call back
// into the database.
func (m *MemoryDatabase) Transaction(_ context.Context, path string, fn TxFunc) error {
	parts := splitPath(path)
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := json.Marshal(m.lookup(parts))
	if err != nil {
		return fmt.Errorf("transaction %s: %w", path, err)
	}
	next, err := fn(current)
	if err != nil {
		return fmt.Errorf("transaction %s: %w", path, err)
	}
	value, err := normalizeValue(next)
	if err != nil {
		return fmt.Errorf("transaction %s: %w", path, err)
	}
	m.store(parts, value)
	return nil
}
