package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/app"
	"github.com/example/portfolio-admin/internal/config"
	"github.com/example/portfolio-admin/internal/core"
	"github.com/example/portfolio-admin/internal/models"
)

func newMemoryApp(t *testing.T) *app.App {
	t.Helper()
	a, err := app.New(context.Background(), &config.Config{
		DBBackend:     config.DBBackendMemory,
		AuthMode:      config.AuthModeNone,
		PrefsBackend:  config.PrefsBackendMemory,
		CacheBackend:  config.CacheBackendNone,
		WatchInterval: time.Hour,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestFetchAllWalksPages(t *testing.T) {
	items := make([]int, 2*core.MaxRowsPerPage+7)
	for i := range items {
		items[i] = i
	}
	calls := 0
	got, err := fetchAll(context.Background(), func(_ context.Context, req core.PageRequest) (*core.Page[int], error) {
		calls++
		return core.Paginate(items, req), nil
	})
	if err != nil {
		t.Fatalf("fetchAll: %v", err)
	}
	if len(got) != len(items) || got[len(got)-1] != len(items)-1 {
		t.Errorf("got %d items, want %d", len(got), len(items))
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}

	empty, err := fetchAll(context.Background(), func(_ context.Context, req core.PageRequest) (*core.Page[int], error) {
		return core.Paginate([]int{}, req), nil
	})
	if err != nil || len(empty) != 0 {
		t.Errorf("empty listing = %v, %v", empty, err)
	}
}

func TestListCollection(t *testing.T) {
	a := newMemoryApp(t)
	ctx := context.Background()
	for _, s := range []models.Skill{{Name: "Go", Level: 90}, {Name: "SQL", Level: 70}} {
		if _, err := a.Skills.Create(ctx, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	items, tbl, err := listCollection(ctx, a, core.CollectionSkills)
	if err != nil {
		t.Fatalf("listCollection: %v", err)
	}
	if skills, ok := items.([]models.Skill); !ok || len(skills) != 2 {
		t.Fatalf("items = %#v", items)
	}

	var buf bytes.Buffer
	tbl.write(&buf)
	out := buf.String()
	for _, want := range []string{"NAME", "LEVEL", "Go", "90", "SQL"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	if _, _, err := listCollection(ctx, a, "users"); !errors.Is(err, core.ErrInvalidCollection) {
		t.Errorf("unknown collection error = %v", err)
	}
}

func TestTableWrite(t *testing.T) {
	var buf bytes.Buffer
	table{header: []string{"ID", "NAME"}}.write(&buf)
	if !strings.Contains(buf.String(), "No records found.") {
		t.Errorf("empty table output = %q", buf.String())
	}

	buf.Reset()
	long := strings.Repeat("x", maxCellWidth+10)
	table{header: []string{"ID"}, rows: [][]string{{long}}}.write(&buf)
	if strings.Contains(buf.String(), long) {
		t.Error("long cell was not truncated")
	}
	if !strings.Contains(buf.String(), "...") {
		t.Errorf("truncated cell missing ellipsis: %q", buf.String())
	}
}

func TestThemeSetCommand(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("DB_BACKEND", "memory")
	t.Setenv("AUTH_MODE", "none")
	t.Setenv("PREFS_BACKEND", "memory")
	t.Setenv("CACHE_BACKEND", "none")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"theme", "set", "--owner", "alice", "--mode", "dark", "--nav", "teal", "--json"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		jsonOutput = false
	})

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{`"mode": "dark"`, `"navColor": "teal"`, `"sidebarColor": "default"`, `"dark": true`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %s:\n%s", want, out.String())
		}
	}
}
