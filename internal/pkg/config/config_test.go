package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET": "dev-secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "http://localhost:8080", cfg.Backend.URL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.False(t, cfg.Audit.Enabled)
	assert.Equal(t, 5, cfg.Login.Burst)
	assert.False(t, cfg.Production())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET":       "0123456789abcdef0123456789abcdef",
		"ENV":                  "production",
		"BACKEND_TIMEOUT":      "3s",
		"BACKEND_ALLOWED_URLS": "http://a:8080,http://b:8080",
		"AUDIT_ENABLED":        "true",
		"AUDIT_WORKERS":        "8",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.Production())
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, []string{"http://a:8080", "http://b:8080"}, cfg.Backend.AllowedURLs)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, 8, cfg.Audit.Workers)
}

func TestLoad_RequiresSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoad_ShortSecretInProduction(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET": "short",
		"ENV":            "production",
	}))
	require.Error(t, err)
}
