package db

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"
)

type item struct {
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
	Level  int    `json:"level,omitempty"`
}

func TestMemoryDatabasePushOrdering(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryDatabase()

	var keys []string
	for i := 0; i < 20; i++ {
		k, err := m.Push(ctx, "skills", item{Name: "go"})
		if err != nil {
			t.Fatalf("Push: %v", err)
		}
		keys = append(keys, k)
	}
	if !sort.StringsAreSorted(keys) {
		t.Errorf("push keys are not in creation order: %v", keys)
	}
	seen := map[string]bool{}
	for _, k := range keys {
		if seen[k] {
			t.Fatalf("duplicate push key %s", k)
		}
		seen[k] = true
	}
}

func TestMemoryDatabaseCRUD(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryDatabase()

	key, err := m.Push(ctx, "education", item{Name: "B.Sc.", Status: "active"})
	if err != nil {
		t.Fatalf("Push: %v", err)
	}

	var got item
	if err := m.Get(ctx, "education/"+key, &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "B.Sc." {
		t.Errorf("Name = %q", got.Name)
	}

	if err := m.Update(ctx, "education/"+key, map[string]interface{}{"status": "inactive"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := m.Get(ctx, "education/"+key, &got); err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if got.Status != "inactive" || got.Name != "B.Sc." {
		t.Errorf("after update got %+v", got)
	}

	if err := m.Set(ctx, "education/"+key, item{Name: "M.Sc."}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Get(ctx, "education/"+key, &got); err != nil {
		t.Fatalf("Get after set: %v", err)
	}
	if got.Status != "" || got.Name != "M.Sc." {
		t.Errorf("Set should overwrite the record, got %+v", got)
	}

	if err := m.Delete(ctx, "education/"+key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := m.Get(ctx, "education/"+key, &got); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete err = %v, want ErrNotFound", err)
	}
	raw, err := m.GetRaw(ctx, "education")
	if err != nil {
		t.Fatalf("GetRaw: %v", err)
	}
	if !IsNull(raw) {
		t.Errorf("empty collection should read as null, got %s", raw)
	}
}

func TestMemoryDatabaseMultiPathUpdate(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryDatabase()
	a, _ := m.Push(ctx, "portfolios", item{Name: "a", Status: "active"})
	b, _ := m.Push(ctx, "portfolios", item{Name: "b", Status: "active"})

	err := m.Update(ctx, "", map[string]interface{}{
		"portfolios/" + a + "/status": "unActive",
		"portfolios/" + b + "/level":  7,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	var got map[string]item
	if err := m.Get(ctx, "portfolios", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got[a].Status != "unActive" || got[a].Name != "a" {
		t.Errorf("a = %+v", got[a])
	}
	if got[b].Level != 7 || got[b].Status != "active" {
		t.Errorf("b = %+v", got[b])
	}

	if err := m.Update(ctx, "portfolios", nil); !errors.Is(err, ErrEmptyUpdate) {
		t.Errorf("empty update err = %v", err)
	}
}

func TestMemoryDatabaseTransaction(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryDatabase()

	for i := 0; i < 3; i++ {
		err := m.Transaction(ctx, "projects/p1/views", func(current json.RawMessage) (interface{}, error) {
			var n int
			if !IsNull(current) {
				if err := json.Unmarshal(current, &n); err != nil {
					return nil, err
				}
			}
			return n + 1, nil
		})
		if err != nil {
			t.Fatalf("Transaction: %v", err)
		}
	}

	var views int
	if err := m.Get(ctx, "projects/p1/views", &views); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if views != 3 {
		t.Errorf("views = %d, want 3", views)
	}

	boom := errors.New("boom")
	err := m.Transaction(ctx, "projects/p1/views", func(json.RawMessage) (interface{}, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Transaction err = %v, want boom", err)
	}
	if err := m.Get(ctx, "projects/p1/views", &views); err != nil || views != 3 {
		t.Errorf("aborted transaction changed the value: %d, %v", views, err)
	}
}
