package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Backend and mode names accepted by the configuration.
const (
	DBBackendFirebase = "firebase"
	DBBackendMemory   = "memory"

	AuthModeFirebase = "firebase"
	AuthModeJWT      = "jwt"
	AuthModeNone     = "none"

	PrefsBackendSQLite    = "sqlite"
	PrefsBackendFirestore = "firestore"
	PrefsBackendMemory    = "memory"

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// Config holds all configuration for the application.
type Config struct {
	Port       string `mapstructure:"PORT"`
	GinMode    string `mapstructure:"GIN_MODE"`
	ConfigFile string `mapstructure:"CONFIG_FILE"`
	ClientURL  string `mapstructure:"CLIENT_URL"`

	DBBackend                        string `mapstructure:"DB_BACKEND"`
	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseDatabaseURL              string `mapstructure:"FIREBASE_DATABASE_URL"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`

	AuthMode      string `mapstructure:"AUTH_MODE"`
	AuthJWTSecret string `mapstructure:"AUTH_JWT_SECRET"`

	PrefsBackend    string `mapstructure:"PREFS_BACKEND"`
	PrefsSQLitePath string `mapstructure:"PREFS_SQLITE_PATH"`

	CacheBackend  string        `mapstructure:"CACHE_BACKEND"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`

	WatchInterval time.Duration `mapstructure:"WATCH_INTERVAL"`

	EventsNATSURL      string `mapstructure:"EVENTS_NATS_URL"`
	EventsAMQPURL      string `mapstructure:"EVENTS_AMQP_URL"`
	EventsAMQPExchange string `mapstructure:"EVENTS_AMQP_EXCHANGE"`

	SMTPHost string `mapstructure:"SMTP_HOST"`
	SMTPPort int    `mapstructure:"SMTP_PORT"`
	SMTPUser string `mapstructure:"SMTP_USER"`
	SMTPPass string `mapstructure:"SMTP_PASS"`
	MailFrom string `mapstructure:"MAIL_FROM"`
	MailTo   string `mapstructure:"MAIL_TO"`

	S3Bucket        string `mapstructure:"S3_BUCKET"`
	S3Region        string `mapstructure:"S3_REGION"`
	S3Endpoint      string `mapstructure:"S3_ENDPOINT"`
	S3PublicBaseURL string `mapstructure:"S3_PUBLIC_BASE_URL"`
}

var envKeys = []string{
	"PORT", "GIN_MODE", "CONFIG_FILE", "CLIENT_URL",
	"DB_BACKEND", "FIREBASE_PROJECT_ID", "FIREBASE_DATABASE_URL",
	"GOOGLE_APPLICATION_CREDENTIALS", "FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
	"AUTH_MODE", "AUTH_JWT_SECRET",
	"PREFS_BACKEND", "PREFS_SQLITE_PATH",
	"CACHE_BACKEND", "CACHE_TTL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"WATCH_INTERVAL",
	"EVENTS_NATS_URL", "EVENTS_AMQP_URL", "EVENTS_AMQP_EXCHANGE",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "MAIL_FROM", "MAIL_TO",
	"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_PUBLIC_BASE_URL",
}

// LoadConfig loads configuration from a .env file (outside release mode),
// an optional CONFIG_FILE and environment variables, in increasing priority.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if !strings.EqualFold(v.GetString("GIN_MODE"), "release") {
		// A missing .env is normal in containers.
		_ = godotenv.Load()
	}

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}
	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DB_BACKEND", DBBackendFirebase)
	v.SetDefault("AUTH_MODE", AuthModeFirebase)
	v.SetDefault("PREFS_BACKEND", PrefsBackendSQLite)
	v.SetDefault("PREFS_SQLITE_PATH", "prefs.db")
	v.SetDefault("CACHE_BACKEND", CacheBackendMemory)
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("WATCH_INTERVAL", "2s")
	v.SetDefault("EVENTS_AMQP_EXCHANGE", "portfolio.events")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("S3_REGION", "us-east-1")
}

func normalize(cfg *Config) {
	cfg.DBBackend = strings.ToLower(strings.TrimSpace(cfg.DBBackend))
	cfg.AuthMode = strings.ToLower(strings.TrimSpace(cfg.AuthMode))
	cfg.PrefsBackend = strings.ToLower(strings.TrimSpace(cfg.PrefsBackend))
	cfg.CacheBackend = strings.ToLower(strings.TrimSpace(cfg.CacheBackend))
}

// Validate checks that the backends are known and that every backend has
// the settings it needs.
func (c *Config) Validate() error {
	switch c.DBBackend {
	case DBBackendFirebase:
		if c.FirebaseDatabaseURL == "" {
			return errors.New("FIREBASE_DATABASE_URL is required when DB_BACKEND=firebase")
		}
	case DBBackendMemory:
	default:
		return fmt.Errorf("unknown DB_BACKEND %q", c.DBBackend)
	}

	switch c.AuthMode {
	case AuthModeFirebase, AuthModeNone:
	case AuthModeJWT:
		if c.AuthJWTSecret == "" {
			return errors.New("AUTH_JWT_SECRET is required when AUTH_MODE=jwt")
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode)
	}

	switch c.PrefsBackend {
	case PrefsBackendSQLite:
		if c.PrefsSQLitePath == "" {
			return errors.New("PREFS_SQLITE_PATH is required when PREFS_BACKEND=sqlite")
		}
	case PrefsBackendFirestore, PrefsBackendMemory:
	default:
		return fmt.Errorf("unknown PREFS_BACKEND %q", c.PrefsBackend)
	}

	switch c.CacheBackend {
	case CacheBackendMemory, CacheBackendNone:
	case CacheBackendRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required when CACHE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend)
	}
	if c.CacheBackend != CacheBackendNone && c.CacheTTL <= 0 {
		return errors.New("CACHE_TTL must be positive (use CACHE_BACKEND=none to disable caching)")
	}

	if c.NeedsFirebase() && c.FirebaseProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID is required")
	}
	if c.WatchInterval <= 0 {
		return errors.New("WATCH_INTERVAL must be positive")
	}
	if c.EventsNATSURL != "" && c.EventsAMQPURL != "" {
		return errors.New("set only one of EVENTS_NATS_URL and EVENTS_AMQP_URL")
	}
	return nil
}

// NeedsFirebase reports whether any configured backend talks to Firebase.
func (c *Config) NeedsFirebase() bool {
	return c.DBBackend == DBBackendFirebase ||
		c.AuthMode == AuthModeFirebase ||
		c.PrefsBackend == PrefsBackendFirestore
}

// MailEnabled reports whether contact notifications can be sent.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.MailFrom != "" && c.MailTo != ""
}

// MediaEnabled reports whether embedded images are offloaded to S3.
func (c *Config) MediaEnabled() bool {
	return c.S3Bucket != ""
}

// AllowedOrigins splits CLIENT_URL on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.ClientURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
