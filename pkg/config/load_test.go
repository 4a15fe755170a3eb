package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwhwang/atmbank/pkg/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("testdata/does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 120*time.Second, cfg.Session.TTL, "session TTL defaults to 120 seconds")
	assert.Equal(t, "atm:session:", cfg.Redis.KeyPrefix)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SESSION_TTL", "30s")
	t.Setenv("DATABASE_URL", "postgres://atm:secret@db:5432/atmbank")

	cfg, err := config.Load("testdata/does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Session.TTL)
	assert.Equal(t, "postgres://atm:secret@db:5432/atmbank", cfg.DB.Url)
}
