package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CCBOARD_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:8080", cfg.PublicURL)
	assert.Equal(t, "data/ccboard.db", cfg.DatabasePath)
	assert.Equal(t, "test-secret", cfg.Secret)
	assert.Equal(t, 100, cfg.SubmitRateLimit)
	assert.Equal(t, time.Hour, cfg.SubmitRateWindow)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CCBOARD_SECRET", "test-secret")
	t.Setenv("CCBOARD_LISTEN_ADDR", ":9090")
	t.Setenv("CCBOARD_REQUIRED_EMAIL_DOMAIN", "@example.com")
	t.Setenv("CCBOARD_SUBMIT_RATE_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "@example.com", cfg.RequiredEmailDomain)
	assert.Equal(t, 5, cfg.SubmitRateLimit)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CCBOARD_SECRET")
}
