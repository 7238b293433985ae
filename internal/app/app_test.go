package app

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/config"
	"github.com/example/portfolio-admin/internal/core"
	"github.com/example/portfolio-admin/internal/db"
	"github.com/example/portfolio-admin/internal/models"
)

func memoryConfig() *config.Config {
	return &config.Config{
		DBBackend:     config.DBBackendMemory,
		AuthMode:      config.AuthModeNone,
		PrefsBackend:  config.PrefsBackendMemory,
		CacheBackend:  config.CacheBackendMemory,
		CacheTTL:      time.Minute,
		WatchInterval: time.Hour,
	}
}

func TestNewMemoryApp(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, memoryConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if _, ok := a.DB.(*db.CachedDatabase); !ok {
		t.Errorf("DB = %T, want the caching wrapper", a.DB)
	}
	if a.Verifier != nil {
		t.Error("AUTH_MODE=none should not configure a verifier")
	}

	// Reads are cached; writes through the services must still be visible.
	before, err := a.Overview.Overview(ctx)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if before.Collections[core.CollectionSkills].Total != 0 {
		t.Fatalf("fresh database has skills: %+v", before)
	}
	if _, err := a.Skills.Create(ctx, models.Skill{Name: "Go", Level: 90}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	after, _ := a.Overview.Overview(ctx)
	if after.Collections[core.CollectionSkills].Total != 1 {
		t.Errorf("cached overview is stale: %+v", after.Collections)
	}

	if _, err := a.Theme.SetMode(ctx, "alice", "dark"); err != nil {
		t.Errorf("SetMode: %v", err)
	}
}

func TestNewCacheDisabled(t *testing.T) {
	cfg := memoryConfig()
	cfg.CacheBackend = config.CacheBackendNone
	a, err := New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()
	if _, ok := a.DB.(*db.MemoryDatabase); !ok {
		t.Errorf("DB = %T, want the memory database", a.DB)
	}
}

func TestNewJWTVerifier(t *testing.T) {
	cfg := memoryConfig()
	cfg.AuthMode = config.AuthModeJWT
	cfg.AuthJWTSecret = "s3cret"
	a, err := New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()
	if a.Verifier == nil {
		t.Error("AUTH_MODE=jwt should configure a verifier")
	}
}
