package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LMS_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "LMS API", cfg.AppName)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	require.True(t, cfg.SeedUsers)
	require.Equal(t, "test-secret", cfg.JWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LMS_JWT_SECRET", "test-secret")
	t.Setenv("LMS_APP_ENV", "production")
	t.Setenv("LMS_APP_PORT", "9090")
	t.Setenv("LMS_TOKEN_TTL", "1h")
	t.Setenv("LMS_SEED_USERS", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "production", cfg.AppEnv)
	require.Equal(t, "9090", cfg.AppPort)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.False(t, cfg.SeedUsers)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("LMS_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestHTTPAddress(t *testing.T) {
	require.Equal(t, ":8080", Config{AppPort: "8080"}.HTTPAddress())
	require.Equal(t, ":9090", Config{AppPort: ":9090"}.HTTPAddress())
}
