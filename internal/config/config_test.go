package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "MONGODB_URI", "MONGO_URI", "POSTGRES_URI", "REDIS_URI", "PORT",
		"SERVER_NAME", "VERSION", "ADMIN_KEY_HASH", "FRONTEND_URL",
		"FRONTEND_URL_2", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "mongodb://localhost:27017/papaya", cfg.MongoURI)
	assert.Equal(t, "postgres://localhost:5432/papaya?sslmode=disable", cfg.PostgresURI)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURI)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "papaya-backend", cfg.ServerName)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoadAllowedOriginsList(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://app.papayafresh.com, https://www.papayafresh.com")

	cfg := Load()

	assert.Equal(t, []string{"https://app.papayafresh.com", "https://www.papayafresh.com"}, cfg.AllowedOrigins)
}

func TestLoadProductionEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "Production")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
}
