package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "technotes", cfg.Database.DBName)
	assert.Equal(t, 3500, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "logs", cfg.Logging.Dir)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiry)
	assert.Equal(t, 10, cfg.Hashing.BcryptCost)
}

func TestLoad_RequiredVariables(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{name: "missing DATABASE_URI", unset: "DATABASE_URI"},
		{name: "missing JWT_SECRET", unset: "JWT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			_, err := Load()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.unset)
		})
	}
}

func TestLoad_CORSOrigins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://technotes.example.com ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:3000", "https://technotes.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad port", key: "PORT", value: "not-a-port"},
		{name: "bad access expiry", key: "JWT_ACCESS_TOKEN_EXPIRY", value: "soon"},
		{name: "bad refresh expiry", key: "JWT_REFRESH_TOKEN_EXPIRY", value: "later"},
		{name: "bad bcrypt cost", key: "BCRYPT_COST", value: "ten"},
		{name: "bcrypt cost out of range", key: "BCRYPT_COST", value: "99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadTestConfig(t *testing.T) {
	t.Setenv("TEST_DATABASE_URI", "mongodb://localhost:27017")
	t.Setenv("TEST_DATABASE_NAME", "")

	cfg := LoadTestConfig()

	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "technotes_test", cfg.Database.DBName)
	assert.Equal(t, 4, cfg.Hashing.BcryptCost)
}
