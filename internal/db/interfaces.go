package db

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned when a path holds no value.
var ErrNotFound = errors.New("node not found")

// ErrEmptyUpdate is returned by Update when no fields are given.
var ErrEmptyUpdate = errors.New("update requires at least one field")

// TxFunc receives the current JSON value at a path ("null" when absent) and
// returns the value to store. It may be called more than once when the
// write races with another client, so it must not have side effects.
type TxFunc func(current json.RawMessage) (interface{}, error)

// Database is the hosted tree database used for portfolio content. Paths are
// slash separated, e.g. "projects/-Nx12ab".
type Database interface {
	// GetRaw returns the JSON at path. A missing node yields "null" and no error.
	GetRaw(ctx context.Context, path string) (json.RawMessage, error)
	// Get decodes the value at path into v, or returns ErrNotFound.
	Get(ctx context.Context, path string, v interface{}) error
	// Push appends v under path with a generated, time-ordered key.
	Push(ctx context.Context, path string, v interface{}) (string, error)
	// Set overwrites the value at path.
	Set(ctx context.Context, path string, v interface{}) error
	// Update writes several children of path at once. Keys may themselves be
	// slash separated paths and a nil value deletes that child.
	Update(ctx context.Context, path string, fields map[string]interface{}) error
	Delete(ctx context.Context, path string) error
	// Transaction runs a compare-and-set read-modify-write on path.
	Transaction(ctx context.Context, path string, fn TxFunc) error
}

// IsNull reports whether raw encodes an absent value.
func IsNull(raw json.RawMessage) bool {
	s := string(raw)
	return len(raw) == 0 || s == "null"
}

// decodeRaw decodes raw into v, mapping an absent value to ErrNotFound.
func decodeRaw(raw json.RawMessage, v interface{}) error {
	if IsNull(raw) {
		return ErrNotFound
	}
	return json.Unmarshal(raw, v)
}
