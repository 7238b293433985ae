// Package app builds the services of the admin backend from configuration.
// It is shared by the HTTP server and the admin CLI.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/portfolio-admin/internal/cache"
	"github.com/example/portfolio-admin/internal/config"
	"github.com/example/portfolio-admin/internal/core"
	"github.com/example/portfolio-admin/internal/db"
	"github.com/example/portfolio-admin/internal/events"
	"github.com/example/portfolio-admin/internal/live"
	"github.com/example/portfolio-admin/internal/mailer"
	"github.com/example/portfolio-admin/internal/media"
	"github.com/example/portfolio-admin/internal/middleware"
	"github.com/example/portfolio-admin/internal/prefs"
)

// App holds the initialized clients and services.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Firebase *db.FirebaseClients
	// DB is the database the services use; it may be a caching wrapper.
	DB db.Database

	About     core.AboutService
	Education core.EducationService
	Skills    core.SkillService
	Projects  core.ProjectService
	Contact   core.ContactService
	Overview  core.OverviewService
	Audit     core.AuditService
	Theme     *prefs.Service
	Hub       *live.Hub
	Verifier  middleware.TokenVerifier

	closers []func() error
}

// New connects every backend selected by cfg. On error, anything already
// opened is closed.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}
	if err := a.init(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg, logger := a.Config, a.Logger

	// Content database.
	content, clients, err := db.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("opening content database: %w", err)
	}
	a.Firebase = clients
	a.closers = append(a.closers, clients.Close)
	a.DB = content

	readCache, err := newCache(ctx, cfg)
	if err != nil {
		return err
	}
	var cached *db.CachedDatabase
	if readCache != nil {
		cached = db.NewCachedDatabase(content, readCache, cfg.CacheTTL, logger)
		a.DB = cached
		logger.Info("Snapshot read cache enabled", zap.String("backend", cfg.CacheBackend), zap.Duration("ttl", cfg.CacheTTL))
		if rc, ok := readCache.(*cache.RedisCache); ok {
			a.closers = append(a.closers, rc.Close)
		}
	}

	// The hub polls the uncached database and drops stale cache entries.
	a.Hub = live.NewHub(content, cfg.WatchInterval, logger)
	if cached != nil {
		a.Hub.OnChange(func(collection string) {
			cached.Invalidate(context.Background(), collection)
		})
	}
	a.closers = append(a.closers, a.Hub.Close)

	publisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, publisher.Close)

	var images core.ImageStore
	if cfg.MediaEnabled() {
		s3Store, err := media.NewS3Store(ctx, media.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("initializing media store: %w", err)
		}
		images = s3Store
		logger.Info("Image offload to S3 enabled", zap.String("bucket", cfg.S3Bucket))
	}

	var contactNotifier core.ContactNotifier
	if cfg.MailEnabled() {
		m, err := mailer.NewSMTPMailer(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.MailFrom,
			To:       cfg.MailTo,
		})
		if err != nil {
			return fmt.Errorf("initializing mailer: %w", err)
		}
		contactNotifier = m
		logger.Info("Contact notifications enabled", zap.String("to", cfg.MailTo))
	}

	store, err := newPrefsStore(cfg, clients)
	if err != nil {
		return err
	}
	a.Theme = prefs.NewService(store, logger)
	a.closers = append(a.closers, a.Theme.Close)

	switch cfg.AuthMode {
	case config.AuthModeFirebase:
		a.Verifier = middleware.NewFirebaseVerifier(clients.Auth)
	case config.AuthModeJWT:
		a.Verifier = middleware.NewJWTVerifier(cfg.AuthJWTSecret)
	default:
		logger.Warn("Authentication is disabled (AUTH_MODE=none)")
	}

	a.Audit = core.NewAuditService(a.DB)
	deps := core.ServiceDeps{
		DB:        a.DB,
		Audit:     a.Audit,
		Publisher: publisher,
		Notifier:  a.Hub,
		Images:    images,
		Logger:    logger,
	}
	a.About = core.NewAboutService(deps)
	a.Education = core.NewEducationService(deps)
	a.Skills = core.NewSkillService(deps)
	a.Projects = core.NewProjectService(deps)
	a.Contact = core.NewContactService(deps, contactNotifier)
	a.Overview = core.NewOverviewService(deps)
	return nil
}

func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Address:  cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   "portfolio-admin:",
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return rc, nil
	case config.CacheBackendMemory:
		return cache.NewMemoryCache(cfg.CacheTTL, 2*cfg.CacheTTL), nil
	default:
		return nil, nil
	}
}

func newPublisher(cfg *config.Config) (events.Publisher, error) {
	switch {
	case cfg.EventsNATSURL != "":
		p, err := events.NewNATSPublisher(cfg.EventsNATSURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to NATS: %w", err)
		}
		return p, nil
	case cfg.EventsAMQPURL != "":
		p, err := events.NewAMQPPublisher(cfg.EventsAMQPURL, cfg.EventsAMQPExchange)
		if err != nil {
			return nil, fmt.Errorf("connecting to RabbitMQ: %w", err)
		}
		return p, nil
	default:
		return events.NoopPublisher{}, nil
	}
}

func newPrefsStore(cfg *config.Config, clients *db.FirebaseClients) (prefs.Store, error) {
	switch cfg.PrefsBackend {
	case config.PrefsBackendFirestore:
		return prefs.NewFirestoreStore(clients.Firestore), nil
	case config.PrefsBackendMemory:
		return prefs.NewMemoryStore(), nil
	default:
		s, err := prefs.OpenSQLite(cfg.PrefsSQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// Close releases everything New opened, in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
