package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_NAME", "orderdesk")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("DB_PORT", "")
		t.Setenv("APP_PORT", "")
		t.Setenv("APP_ENV", "")
		t.Setenv("JWT_EXPIRY", "")
		t.Setenv("ORDER_TIMEZONE", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "development", cfg.AppEnv)
		assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
		assert.Equal(t, "America/Argentina/Buenos_Aires", cfg.OrderTimezone)
		require.NotNil(t, cfg.OrderLocation)
	})

	t.Run("MissingDBConfig", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("DB_HOST", "")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("MissingJWTSecret", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_SECRET", "")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("InvalidJWTExpiry", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_EXPIRY", "yesterday")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("InvalidTimezone", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("ORDER_TIMEZONE", "Mars/Olympus_Mons")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("CustomExpiry", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_EXPIRY", "30m")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, cfg.JWTExpiry)
	})
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBUser:     "postgres",
		DBPassword: "secret",
		DBName:     "orderdesk",
		DBPort:     "5432",
	}
	assert.Equal(t,
		"host=localhost user=postgres password=secret dbname=orderdesk port=5432 sslmode=disable",
		cfg.DSN())
}
