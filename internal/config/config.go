package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingJWTSecret   = errors.New("AUTH_JWT_SECRET must be set in production")
	ErrMissingSearchCreds = errors.New("SEARCH_API_KEY and SEARCH_ENGINE_ID must be set in production")
	ErrMissingDSN         = errors.New("DATABASE_DSN must be set for the postgres driver")
	ErrUnknownDriver      = errors.New("unknown database driver")
)

type (
	Config struct {
		App
		HTTP
		Global
		Database
		Auth
		Search
		Redis
		RateLimit
		AMQP
		Tasks
		Tracing
		CORS
	}

	App struct {
		Name        string
		Environment string
	}
	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver string // "sqlite" or "postgres"
		DSN    string // postgres connection string
		Path   string // sqlite file path
	}
	Auth struct {
		JWTSecret         string
		UsingDevJWTSecret bool
		TokenExpiry       time.Duration
		BcryptCost        int

		MaxLoginAttempts int           // failed attempts before lockout (default: 5)
		RateLimitWindow  time.Duration // window for counting attempts (default: 15m)
		LockoutDuration  time.Duration // lockout length (default: 15m)
	}
	Search struct {
		APIKey      string
		EngineID    string
		BaseURL     string
		Timeout     time.Duration
		MaxAttempts int
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	RateLimit struct {
		Enabled        bool
		Capacity       int
		RefillTokens   int
		RefillInterval time.Duration
		TTL            time.Duration
		Prefix         string
	}
	AMQP struct {
		URL      string
		Exchange string
	}
	Tasks struct {
		Enabled              bool
		Workers              int
		ReleaseAfter         time.Duration
		CleanupInterval      time.Duration
		StatsSchedule        string // cron format
		AuditRetentionDays   int
		AuditCleanupSchedule string // cron format
	}
	Tracing struct {
		Enabled     bool
		Endpoint    string
		Insecure    bool
		SampleRatio float64
	}
	CORS struct {
		AllowedOrigins []string
	}
)

// IsProduction reports whether the service runs with production hardening.
func (a App) IsProduction() bool {
	return strings.EqualFold(a.Environment, EnvironmentProduction)
}

// SearchEnabled reports whether provider credentials are present.
func (s Search) SearchEnabled() bool {
	return s.APIKey != "" && s.EngineID != ""
}

// NewConfig loads configuration from an optional .env file and the process environment.
func NewConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app_name", "learnhub")
	v.SetDefault("app_environment", EnvironmentDevelopment)
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 10)

	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_path", DefaultDatabasePath)

	v.SetDefault("auth_jwt_secret", "")
	v.SetDefault("auth_token_expiry", "720h") // 30 days
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "15m")

	v.SetDefault("search_base_url", DefaultSearchBaseURL)
	v.SetDefault("search_timeout", "10s")
	v.SetDefault("search_max_attempts", 3)

	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("rate_limit_enabled", false)
	v.SetDefault("rate_limit_capacity", 60)
	v.SetDefault("rate_limit_refill_tokens", 60)
	v.SetDefault("rate_limit_refill_interval", "1m")
	v.SetDefault("rate_limit_ttl", "10m")
	v.SetDefault("rate_limit_prefix", "rl")

	v.SetDefault("amqp_url", "")
	v.SetDefault("amqp_exchange", "learnhub.events")

	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("stats_schedule", "*/30 * * * *")
	v.SetDefault("audit_retention_days", 90)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *")

	v.SetDefault("tracing_enabled", false)
	v.SetDefault("tracing_sample_ratio", 0.1)

	v.SetDefault("cors_allowed_origins", "http://localhost:3000,http://localhost:5173")

	cfg := &Config{
		App: App{
			Name:        v.GetString("APP_NAME"),
			Environment: strings.ToLower(v.GetString("APP_ENVIRONMENT")),
		},
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
			DSN:    firstNonEmpty(v.GetString("DATABASE_DSN"), v.GetString("DATABASE_URL")),
			Path:   v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			JWTSecret:        v.GetString("AUTH_JWT_SECRET"),
			TokenExpiry:      v.GetDuration("AUTH_TOKEN_EXPIRY"),
			BcryptCost:       v.GetInt("AUTH_BCRYPT_COST"),
			MaxLoginAttempts: v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:  v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:  v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		Search: Search{
			APIKey:      v.GetString("SEARCH_API_KEY"),
			EngineID:    v.GetString("SEARCH_ENGINE_ID"),
			BaseURL:     v.GetString("SEARCH_BASE_URL"),
			Timeout:     v.GetDuration("SEARCH_TIMEOUT"),
			MaxAttempts: v.GetInt("SEARCH_MAX_ATTEMPTS"),
		},
		Redis: Redis{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimit{
			Enabled:        v.GetBool("RATE_LIMIT_ENABLED"),
			Capacity:       v.GetInt("RATE_LIMIT_CAPACITY"),
			RefillTokens:   v.GetInt("RATE_LIMIT_REFILL_TOKENS"),
			RefillInterval: v.GetDuration("RATE_LIMIT_REFILL_INTERVAL"),
			TTL:            v.GetDuration("RATE_LIMIT_TTL"),
			Prefix:         v.GetString("RATE_LIMIT_PREFIX"),
		},
		AMQP: AMQP{
			URL:      v.GetString("AMQP_URL"),
			Exchange: v.GetString("AMQP_EXCHANGE"),
		},
		Tasks: Tasks{
			Enabled:              v.GetBool("TASKS_ENABLED"),
			Workers:              v.GetInt("TASK_WORKERS"),
			ReleaseAfter:         v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:      v.GetDuration("TASK_CLEANUP_INTERVAL"),
			StatsSchedule:        v.GetString("STATS_SCHEDULE"),
			AuditRetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			AuditCleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Tracing: Tracing{
			Enabled:     v.GetBool("TRACING_ENABLED"),
			Endpoint:    v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Insecure:    v.GetBool("OTEL_EXPORTER_OTLP_INSECURE"),
			SampleRatio: v.GetFloat64("TRACING_SAMPLE_RATIO"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate enforces production requirements and fills development fallbacks.
func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if c.Database.DSN == "" {
			return ErrMissingDSN
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Database.Driver)
	}

	if c.Auth.JWTSecret == "" {
		if c.App.IsProduction() {
			return ErrMissingJWTSecret
		}
		c.Auth.JWTSecret = devJWTSecret
		c.Auth.UsingDevJWTSecret = true
	}

	if c.App.IsProduction() && !c.Search.SearchEnabled() {
		return ErrMissingSearchCreds
	}

	if c.Search.MaxAttempts < 1 {
		c.Search.MaxAttempts = 1
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
