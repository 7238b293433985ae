package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// Entry is one decoded child of a collection node.
type Entry[T any] struct {
	Key   string
	Value T
}

// Collection gives typed access to the children of one top-level node.
type Collection[T any] struct {
	db   Database
	name string

	// OnDecodeError, when set, is told about children that could not be
	// decoded. Those children are left out of List results.
	OnDecodeError func(key string, err error)
}

// NewCollection binds a collection name to a Database.
func NewCollection[T any](d Database, name string) *Collection[T] {
	return &Collection[T]{db: d, name: name}
}

// Name returns the collection node name.
func (c *Collection[T]) Name() string { return c.name }

// Path returns the database path of the child with the given key.
func (c *Collection[T]) Path(key string) string { return c.name + "/" + key }

// List returns every child, ordered by key.
func (c *Collection[T]) List(ctx context.Context) ([]Entry[T], error) {
	raw, err := c.db.GetRaw(ctx, c.name)
	if err != nil {
		return nil, err
	}
	return DecodeEntries[T](raw, c.OnDecodeError)
}

// DecodeEntries decodes a collection snapshot into entries ordered by key.
func DecodeEntries[T any](raw json.RawMessage, onErr func(key string, err error)) ([]Entry[T], error) {
	if IsNull(raw) {
		return nil, nil
	}
	var children map[string]json.RawMessage
	if err := json.Unmarshal(raw, &children); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}

	keys := make([]string, 0, len(children))
	for k := range children {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry[T], 0, len(keys))
	for _, k := range keys {
		var v T
		if err := json.Unmarshal(children[k], &v); err != nil {
			if onErr != nil {
				onErr(k, err)
			}
			continue
		}
		entries = append(entries, Entry[T]{Key: k, Value: v})
	}
	return entries, nil
}

// Get returns the child with the given key or ErrNotFound.
func (c *Collection[T]) Get(ctx context.Context, key string) (T, error) {
	var v T
	err := c.db.Get(ctx, c.Path(key), &v)
	return v, err
}

// Push appends v and returns its generated key.
func (c *Collection[T]) Push(ctx context.Context, v T) (string, error) {
	return c.db.Push(ctx, c.name, v)
}

// Set overwrites the child with the given key.
func (c *Collection[T]) Set(ctx context.Context, key string, v T) error {
	return c.db.Set(ctx, c.Path(key), v)
}

// Update writes the given fields of one child.
func (c *Collection[T]) Update(ctx context.Context, key string, fields map[string]interface{}) error {
	return c.db.Update(ctx, c.Path(key), fields)
}

// Delete removes one child.
func (c *Collection[T]) Delete(ctx context.Context, key string) error {
	return c.db.Delete(ctx, c.Path(key))
}
