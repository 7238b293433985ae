package core

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/example/portfolio-admin/internal/db"
	"github.com/example/portfolio-admin/internal/models"
)

// recordingDB wraps a Database and counts write calls.
type recordingDB struct {
	db.Database
	mu      sync.Mutex
	pushes  int
	sets    int
	updates int
	deletes []string
	txs     int
}

func newRecordingDB() *recordingDB {
	return &recordingDB{Database: db.NewMemoryDatabase()}
}

func (r *recordingDB) Push(ctx context.Context, path string, v interface{}) (string, error) {
	r.mu.Lock()
	r.pushes++
	r.mu.Unlock()
	return r.Database.Push(ctx, path, v)
}

func (r *recordingDB) Set(ctx context.Context, path string, v interface{}) error {
	r.mu.Lock()
	r.sets++
	r.mu.Unlock()
	return r.Database.Set(ctx, path, v)
}

func (r *recordingDB) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	r.mu.Lock()
	r.updates++
	r.mu.Unlock()
	return r.Database.Update(ctx, path, fields)
}

func (r *recordingDB) Delete(ctx context.Context, path string) error {
	r.mu.Lock()
	r.deletes = append(r.deletes, path)
	r.mu.Unlock()
	return r.Database.Delete(ctx, path)
}

func (r *recordingDB) Transaction(ctx context.Context, path string, fn db.TxFunc) error {
	r.mu.Lock()
	r.txs++
	r.mu.Unlock()
	return r.Database.Transaction(ctx, path, fn)
}

func (r *recordingDB) writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pushes + r.sets + r.updates + len(r.deletes) + r.txs
}

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type recordingNotifier struct {
	mu      sync.Mutex
	touched map[string]int
}

func (n *recordingNotifier) Touch(collection string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.touched == nil {
		n.touched = map[string]int{}
	}
	n.touched[collection]++
}

func testDeps(d db.Database) ServiceDeps {
	return ServiceDeps{
		DB:  d,
		Now: func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	}
}

// seed writes a raw record directly, bypassing services.
func seed(t *testing.T, d db.Database, collection string, v interface{}) string {
	t.Helper()
	key, err := d.Push(context.Background(), collection, v)
	if err != nil {
		t.Fatalf("seed %s: %v", collection, err)
	}
	return key
}

func activeCount(t *testing.T, d db.Database) int {
	t.Helper()
	raw, err := d.GetRaw(context.Background(), CollectionAbout)
	if err != nil {
		t.Fatalf("GetRaw: %v", err)
	}
	var node map[string]models.About
	if !db.IsNull(raw) {
		if err := json.Unmarshal(raw, &node); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	n := 0
	for _, a := range node {
		if a.Status == models.AboutStatusActive {
			n++
		}
	}
	return n
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
