package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with required values set", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/hourglass")
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "5000", cfg.Server.Port)
		assert.Equal(t, 10, cfg.Database.MaxConns)
		assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
		assert.Equal(t, 30*time.Minute, cfg.JWT.AccessValidity)
		assert.Equal(t, 30*24*time.Hour, cfg.JWT.RefreshValidity)
		assert.Equal(t, "development", cfg.App.Environment)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/hourglass")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("PORT", "9090")
		t.Setenv("DB_MAX_CONNS", "25")
		t.Setenv("JWT_ACCESS_VALIDITY", "15m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 25, cfg.Database.MaxConns)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessValidity)
	})

	t.Run("missing DSN fails validation", func(t *testing.T) {
		t.Setenv("DB_DSN", "")
		t.Setenv("JWT_SECRET", "secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_DSN")
	})

	t.Run("missing JWT secret fails validation", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/hourglass")
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("malformed numbers fall back to defaults", func(t *testing.T) {
		t.Setenv("DB_DSN", "postgres://localhost/hourglass")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("DB_MAX_CONNS", "lots")
		t.Setenv("JWT_REFRESH_VALIDITY", "a while")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 10, cfg.Database.MaxConns)
		assert.Equal(t, 30*24*time.Hour, cfg.JWT.RefreshValidity)
	})
}
