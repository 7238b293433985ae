package db

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/cache"
)

const cacheKeyPrefix = "rtdb:"

// CachedDatabase is a read-through cache in front of a Database. Only reads of
// whole top-level collections are cached; any write below a collection drops
// its entry. A read that overlaps a write never leaves its snapshot cached.
type CachedDatabase struct {
	Database
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger

	mu          sync.Mutex
	generations map[string]uint64
}

// NewCachedDatabase wraps next with c. Cache failures are logged and fall back
// to the wrapped database.
func NewCachedDatabase(next Database, c cache.Cache, ttl time.Duration, logger *zap.Logger) *CachedDatabase {
	return &CachedDatabase{Database: next, cache: c, ttl: ttl, logger: logger, generations: make(map[string]uint64)}
}

func (d *CachedDatabase) generation(collection string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generations[collection]
}

func topLevel(path string) (string, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return "", false
	}
	return parts[0], len(parts) == 1
}

func (d *CachedDatabase) GetRaw(ctx context.Context, path string) (json.RawMessage, error) {
	collection, whole := topLevel(path)
	if !whole {
		return d.Database.GetRaw(ctx, path)
	}
	key := cacheKeyPrefix + collection
	if b, ok, err := d.cache.Get(ctx, key); err != nil {
		d.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		return b, nil
	}

	gen := d.generation(collection)
	raw, err := d.Database.GetRaw(ctx, path)
	if err != nil {
		return nil, err
	}
	if d.generation(collection) != gen {
		return raw, nil
	}
	if err := d.cache.Set(ctx, key, raw, d.ttl); err != nil {
		d.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	// A write may have invalidated between the check and the Set.
	if d.generation(collection) != gen {
		d.drop(ctx, key)
	}
	return raw, nil
}

func (d *CachedDatabase) Get(ctx context.Context, path string, v interface{}) error {
	raw, err := d.GetRaw(ctx, path)
	if err != nil {
		return err
	}
	return decodeRaw(raw, v)
}

// Invalidate drops the cached snapshot of a collection.
func (d *CachedDatabase) Invalidate(ctx context.Context, collection string) {
	d.mu.Lock()
	d.generations[collection]++
	d.mu.Unlock()
	d.drop(ctx, cacheKeyPrefix+collection)
}

func (d *CachedDatabase) drop(ctx context.Context, key string) {
	if err := d.cache.Delete(ctx, key); err != nil {
		d.logger.Warn("Cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

func (d *CachedDatabase) invalidatePath(ctx context.Context, path string) {
	if collection, _ := topLevel(path); collection != "" {
		d.Invalidate(ctx, collection)
	}
}

func (d *CachedDatabase) Push(ctx context.Context, path string, v interface{}) (string, error) {
	defer d.invalidatePath(ctx, path)
	return d.Database.Push(ctx, path, v)
}

func (d *CachedDatabase) Set(ctx context.Context, path string, v interface{}) error {
	defer d.invalidatePath(ctx, path)
	return d.Database.Set(ctx, path, v)
}

func (d *CachedDatabase) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	defer func() {
		if len(splitPath(path)) > 0 {
			d.invalidatePath(ctx, path)
			return
		}
		// Root level multi-path update.
		for k := range fields {
			d.invalidatePath(ctx, k)
		}
	}()
	return d.Database.Update(ctx, path, fields)
}

func (d *CachedDatabase) Delete(ctx context.Context, path string) error {
	defer d.invalidatePath(ctx, path)
	return d.Database.Delete(ctx, path)
}

func (d *CachedDatabase) Transaction(ctx context.Context, path string, fn TxFunc) error {
	defer d.invalidatePath(ctx, path)
	return d.Database.Transaction(ctx, path, fn)
}
