package db

import (
	"context"
	"encoding/json"
	"fmt"

	fbdb "firebase.google.com/go/v4/db"
)

// RealtimeDatabase implements Database on the Firebase Realtime Database.
type RealtimeDatabase struct {
	client *fbdb.Client
}

// NewRealtimeDatabase wraps an initialized Realtime Database client.
func NewRealtimeDatabase(client *fbdb.Client) *RealtimeDatabase {
	return &RealtimeDatabase{client: client}
}

func (r *RealtimeDatabase) GetRaw(ctx context.Context, path string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := r.client.NewRef(path).Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	return raw, nil
}

func (r *RealtimeDatabase) Get(ctx context.Context, path string, v interface{}) error {
	raw, err := r.GetRaw(ctx, path)
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

func (r *RealtimeDatabase) Push(ctx context.Context, path string, v interface{}) (string, error) {
	ref, err := r.client.NewRef(path).Push(ctx, v)
	if err != nil {
		return "", fmt.Errorf("push %s: %w", path, err)
	}
	return ref.Key, nil
}

func (r *RealtimeDatabase) Set(ctx context.Context, path string, v interface{}) error {
	if err := r.client.NewRef(path).Set(ctx, v); err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

func (r *RealtimeDatabase) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return ErrEmptyUpdate
	}
	if err := r.client.NewRef(path).Update(ctx, fields); err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}
	return nil
}

func (r *RealtimeDatabase) Delete(ctx context.Context, path string) error {
	if err := r.client.NewRef(path).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

func (r *RealtimeDatabase) Transaction(ctx context.Context, path string, fn TxFunc) error {
	err := r.client.NewRef(path).Transaction(ctx, func(node fbdb.TransactionNode) (interface{}, error) {
		var current json.RawMessage
		if err := node.Unmarshal(&current); err != nil {
			return nil, err
		}
		if len(current) == 0 {
			current = json.RawMessage("null")
		}
		return fn(current)
	})
	if err != nil {
		return fmt.Errorf("transaction %s: %w", path, err)
	}
	return nil
}
