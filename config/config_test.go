package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithOptions(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-jwt-secret")
	t.Setenv("API_TOKEN_HASH", "$2a$10$abcdefghijklmnopqrstuv")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "promoforge", cfg.Database.DBName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "test-jwt-secret", cfg.Security.JWTSecret)
	// Preview link secret falls back to the JWT secret.
	assert.Equal(t, "test-jwt-secret", cfg.Security.PreviewLinkSecret)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "none", cfg.Tracing.TraceExporter)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("API_TOKEN_HASH", "")

	_, err := LoadWithOptions(LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("API_TOKEN_HASH", "h")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("PREVIEW_LINK_SECRET", "preview-secret")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "preview-secret", cfg.Security.PreviewLinkSecret)
}

func TestConnectionString(t *testing.T) {
	db := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "pw", DBName: "promoforge", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=pw dbname=promoforge sslmode=disable",
		db.ConnectionString())
}
