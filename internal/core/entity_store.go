package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/db"
	"github.com/example/portfolio-admin/internal/events"
)

// entityStore holds the CRUD plumbing shared by the content services: key
// checks, decoding defaults, not-found mapping and change side effects.
type entityStore[T any] struct {
	coll     *db.Collection[T]
	deps     ServiceDeps
	notFound error
	// setID copies the database key into the record ("" clears it before writes).
	setID func(*T, string)
	// normalize fills defaults for fields that are absent in stored data.
	normalize func(*T)
}

func newEntityStore[T any](deps ServiceDeps, collection string, notFound error, setID func(*T, string), normalize func(*T)) *entityStore[T] {
	coll := db.NewCollection[T](deps.DB, collection)
	coll.OnDecodeError = func(key string, err error) {
		deps.Logger.Warn("Skipping malformed record",
			zap.String("collection", collection), zap.String("key", key), zap.Error(err))
	}
	if normalize == nil {
		normalize = func(*T) {}
	}
	return &entityStore[T]{coll: coll, deps: deps, notFound: notFound, setID: setID, normalize: normalize}
}

func (s *entityStore[T]) name() string { return s.coll.Name() }

func (s *entityStore[T]) list(ctx context.Context) ([]T, error) {
	entries, err := s.coll.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", s.name(), err)
	}
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		v := e.Value
		s.normalize(&v)
		s.setID(&v, e.Key)
		out = append(out, v)
	}
	return out, nil
}

func (s *entityStore[T]) get(ctx context.Context, id string) (*T, error) {
	if !validKey(id) {
		return nil, s.notFound
	}
	v, err := s.coll.Get(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, s.notFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s/%s: %w", s.name(), id, err)
	}
	s.normalize(&v)
	s.setID(&v, id)
	return &v, nil
}

func (s *entityStore[T]) create(ctx context.Context, v T) (*T, error) {
	s.setID(&v, "")
	key, err := s.coll.Push(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("creating %s record: %w", s.name(), err)
	}
	s.setID(&v, key)
	s.deps.recordChange(ctx, s.name(), events.ActionCreated, key, v)
	return &v, nil
}

// patch writes only fields to the record id; merged is the full record after
// the patch and is what callers get back.
func (s *entityStore[T]) patch(ctx context.Context, id string, merged T, fields map[string]interface{}) (*T, error) {
	if err := s.coll.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("updating %s/%s: %w", s.name(), id, err)
	}
	s.setID(&merged, id)
	s.deps.recordChange(ctx, s.name(), events.ActionUpdated, id, fields)
	return &merged, nil
}

func (s *entityStore[T]) replace(ctx context.Context, id string, v T) (*T, error) {
	s.setID(&v, "")
	if err := s.coll.Set(ctx, id, v); err != nil {
		return nil, fmt.Errorf("replacing %s/%s: %w", s.name(), id, err)
	}
	s.setID(&v, id)
	s.deps.recordChange(ctx, s.name(), events.ActionReplaced, id, v)
	return &v, nil
}

// remove deletes an existing record with exactly one delete call.
func (s *entityStore[T]) remove(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.coll.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting %s/%s: %w", s.name(), id, err)
	}
	s.deps.recordChange(ctx, s.name(), events.ActionDeleted, id, nil)
	return nil
}
