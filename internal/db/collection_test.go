package db

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/cache"
)

func TestCollectionListSkipsMalformed(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryDatabase()
	if err := m.Set(ctx, "skills", map[string]interface{}{
		"b": map[string]interface{}{"name": "Go", "level": 90},
		"a": map[string]interface{}{"name": "SQL", "level": 70},
		"c": "not an object",
	}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var bad []string
	coll := NewCollection[item](m, "skills")
	coll.OnDecodeError = func(key string, err error) { bad = append(bad, key) }

	entries, err := coll.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 || entries[0].Key != "a" || entries[1].Key != "b" {
		t.Fatalf("entries = %+v", entries)
	}
	if len(bad) != 1 || bad[0] != "c" {
		t.Errorf("decode errors = %v", bad)
	}
}

func TestDecodeEntriesNull(t *testing.T) {
	entries, err := DecodeEntries[item](json.RawMessage("null"), nil)
	if err != nil || len(entries) != 0 {
		t.Errorf("DecodeEntries(null) = %v, %v", entries, err)
	}
}

func TestCachedDatabaseInvalidatesOnWrite(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryDatabase()
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	d := NewCachedDatabase(inner, c, time.Minute, zap.NewNop())

	key, err := d.Push(ctx, "projects", item{Name: "one"})
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	var got map[string]item
	if err := d.Get(ctx, "projects", &got); err != nil || len(got) != 1 {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if _, ok, _ := c.Get(ctx, "rtdb:projects"); !ok {
		t.Fatal("collection read was not cached")
	}

	// A write that bypasses the decorator is invisible until invalidated.
	if _, err := inner.Push(ctx, "projects", item{Name: "two"}); err != nil {
		t.Fatalf("inner Push: %v", err)
	}
	got = nil
	_ = d.Get(ctx, "projects", &got)
	if len(got) != 1 {
		t.Errorf("expected cached snapshot, got %d records", len(got))
	}
	d.Invalidate(ctx, "projects")
	got = nil
	_ = d.Get(ctx, "projects", &got)
	if len(got) != 2 {
		t.Errorf("after Invalidate got %d records", len(got))
	}

	if err := d.Update(ctx, "projects/"+key, map[string]interface{}{"name": "uno"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "rtdb:projects"); ok {
		t.Error("Update did not invalidate the collection")
	}

	_ = d.Get(ctx, "projects", &got)
	if err := d.Update(ctx, "", map[string]interface{}{"projects/" + key + "/name": "eins"}); err != nil {
		t.Fatalf("root Update: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "rtdb:projects"); ok {
		t.Error("root multi-path Update did not invalidate the collection")
	}
}

// pausedReads holds the first GetRaw after it has read from the wrapped
// database, so a write can land while the stale result is in flight.
type pausedReads struct {
	Database
	entered chan struct{}
	release chan struct{}
}

func (p *pausedReads) GetRaw(ctx context.Context, path string) (json.RawMessage, error) {
	raw, err := p.Database.GetRaw(ctx, path)
	if p.entered != nil {
		entered := p.entered
		p.entered = nil
		close(entered)
		<-p.release
	}
	return raw, err
}

func TestCachedDatabaseSkipsSnapshotOverlappingWrite(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryDatabase()
	key, err := inner.Push(ctx, "skills", item{Name: "Go"})
	if err != nil {
		t.Fatalf("Push: %v", err)
	}

	paused := &pausedReads{Database: inner, entered: make(chan struct{}), release: make(chan struct{})}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	d := NewCachedDatabase(paused, c, time.Minute, zap.NewNop())

	entered := paused.entered
	done := make(chan json.RawMessage)
	go func() {
		raw, _ := d.GetRaw(ctx, "skills")
		done <- raw
	}()

	<-entered
	if err := d.Delete(ctx, "skills/"+key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	close(paused.release)
	if stale := <-done; IsNull(stale) {
		t.Fatal("in-flight read should still return the record it saw")
	}

	if _, ok, _ := c.Get(ctx, "rtdb:skills"); ok {
		t.Error("snapshot read before the delete was cached")
	}
	raw, err := d.GetRaw(ctx, "skills")
	if err != nil {
		t.Fatalf("GetRaw: %v", err)
	}
	if !IsNull(raw) {
		t.Errorf("deleted record still served: %s", raw)
	}
}
