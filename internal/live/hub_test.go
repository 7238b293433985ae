package live

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/example/portfolio-admin/internal/db"
)

func receive(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return Snapshot{}
}

func TestSubscribeDeliversInitialAndChanges(t *testing.T) {
	ctx := context.Background()
	d := db.NewMemoryDatabase()
	if err := d.Set(ctx, "skills/a", map[string]interface{}{"name": "Go"}); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var changed []string
	hub := NewHub(d, time.Hour, nil)
	hub.OnChange(func(c string) {
		mu.Lock()
		changed = append(changed, c)
		mu.Unlock()
	})
	defer hub.Close()

	ch, cancel, err := hub.Subscribe(ctx, "skills")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer cancel()

	first := receive(t, ch)
	if first.Collection != "skills" || string(first.Data) != `{"a":{"name":"Go"}}` {
		t.Errorf("first snapshot = %s", first.Data)
	}

	// A second subscriber gets the cached snapshot straight away.
	ch2, cancel2, _ := hub.Subscribe(ctx, "skills")
	if snap := receive(t, ch2); snap.Version != first.Version {
		t.Errorf("second subscriber version = %d, want %d", snap.Version, first.Version)
	}
	cancel2()

	d.Delete(ctx, "skills/a")
	hub.Touch("skills")
	next := receive(t, ch)
	if string(next.Data) != "null" || next.Version == first.Version {
		t.Errorf("after delete = %s (version %d)", next.Data, next.Version)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(changed) != 1 || changed[0] != "skills" {
		t.Errorf("OnChange calls = %v", changed)
	}
}

func TestPollingDetectsOutsideWrites(t *testing.T) {
	ctx := context.Background()
	d := db.NewMemoryDatabase()
	hub := NewHub(d, 10*time.Millisecond, nil)
	defer hub.Close()

	ch, cancel, _ := hub.Subscribe(ctx, "projects")
	defer cancel()
	receive(t, ch)

	d.Set(ctx, "projects/p1", map[string]interface{}{"title": "Site"})
	if snap := receive(t, ch); string(snap.Data) != `{"p1":{"title":"Site"}}` {
		t.Errorf("snapshot = %s", snap.Data)
	}
}

func TestCancelStopsWatcher(t *testing.T) {
	d := db.NewMemoryDatabase()
	hub := NewHub(d, time.Hour, nil)
	defer hub.Close()

	ctx, stop := context.WithCancel(context.Background())
	ch, cancel, _ := hub.Subscribe(ctx, "education")
	receive(t, ch)

	stop()
	deadline := time.After(2 * time.Second)
	for closed := false; !closed; {
		select {
		case _, ok := <-ch:
			closed = !ok
		case <-deadline:
			t.Fatal("channel not closed after context cancel")
		}
	}
	cancel()

	hub.mu.Lock()
	n := len(hub.watchers)
	hub.mu.Unlock()
	if n != 0 {
		t.Errorf("watchers = %d after last subscriber left", n)
	}
}

func TestClose(t *testing.T) {
	hub := NewHub(db.NewMemoryDatabase(), time.Hour, nil)
	ch, cancel, _ := hub.Subscribe(context.Background(), "contact")
	if err := hub.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	cancel()
	for range ch {
	}
	if _, _, err := hub.Subscribe(context.Background(), "contact"); err != ErrClosed {
		t.Errorf("Subscribe after Close err = %v", err)
	}
}
