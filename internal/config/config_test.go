package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "development")
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, 720*time.Hour, cfg.Auth.TokenExpiry)
	assert.Equal(t, 10*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 3, cfg.Search.MaxAttempts)
	assert.Equal(t, DefaultSearchBaseURL, cfg.Search.BaseURL)
	assert.Equal(t, "learnhub.events", cfg.AMQP.Exchange)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
}

func TestNewConfig_DevSecretFallback(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "development")
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, devJWTSecret, cfg.Auth.JWTSecret)
	assert.True(t, cfg.Auth.UsingDevJWTSecret)
}

func TestNewConfig_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "production")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("SEARCH_API_KEY", "key")
	t.Setenv("SEARCH_ENGINE_ID", "cx")

	_, err := NewConfig()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestNewConfig_ProductionRequiresSearchCredentials(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "production")
	t.Setenv("AUTH_JWT_SECRET", "prod-secret")
	t.Setenv("SEARCH_API_KEY", "")
	t.Setenv("SEARCH_ENGINE_ID", "")

	_, err := NewConfig()
	assert.ErrorIs(t, err, ErrMissingSearchCreds)
}

func TestNewConfig_Production(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "Production")
	t.Setenv("AUTH_JWT_SECRET", "prod-secret")
	t.Setenv("SEARCH_API_KEY", "key")
	t.Setenv("SEARCH_ENGINE_ID", "cx")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, "prod-secret", cfg.Auth.JWTSecret)
	assert.False(t, cfg.Auth.UsingDevJWTSecret)
	assert.True(t, cfg.Search.SearchEnabled())
}

func TestNewConfig_DatabaseDriver(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		dsn     string
		url     string
		wantErr error
		wantDSN string
	}{
		{name: "sqlite", driver: "sqlite"},
		{name: "postgres with dsn", driver: "postgres", dsn: "host=db", wantDSN: "host=db"},
		{name: "postgres with url", driver: "postgres", url: "postgres://db/learnhub", wantDSN: "postgres://db/learnhub"},
		{name: "postgres without dsn", driver: "postgres", wantErr: ErrMissingDSN},
		{name: "unknown", driver: "oracle", wantErr: ErrUnknownDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENVIRONMENT", "test")
			t.Setenv("DATABASE_DRIVER", tt.driver)
			t.Setenv("DATABASE_DSN", tt.dsn)
			t.Setenv("DATABASE_URL", tt.url)

			cfg, err := NewConfig()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDSN, cfg.Database.DSN)
		})
	}
}
