package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "helheim.table.realms", cfg.RealmsTable)
	assert.Equal(t, "gsi.user-realms-lookup-2", cfg.RealmsUserGSI)
	assert.Equal(t, "helheim.table.authentication", cfg.AuthTable)
	assert.Equal(t, "gsi.username", cfg.AuthUsernameGSI)
	assert.Equal(t, "helheim.storage", cfg.WorldsBucket)
	assert.Equal(t, "helheim_instance_lambda", cfg.InstanceLambda)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.IsProduction())
	// The insecure default secret is flagged.
	assert.NotEmpty(t, cfg.Warnings)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("REALMS_TABLE_NAME", "custom.realms")
	t.Setenv("JWT_SECRET", "real-secret")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "5.5")
	t.Setenv("RATE_LIMIT_BURST", "10")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "custom.realms", cfg.RealmsTable)
	assert.Equal(t, "real-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 5.5, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Empty(t, cfg.Warnings)
}

func TestProductionRejectsInsecureDefaults(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("AWS_REGION_NAME", "eu-north-1")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "real-secret")
	_, err = LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CORS")

	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example")
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestSlogLevel(t *testing.T) {
	for input, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	} {
		cfg := &Config{LogLevel: input}
		assert.Equal(t, want, cfg.SlogLevel(), "level %q", input)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\n\nTEST_DOTENV_A=value-a\nTEST_DOTENV_B=\"quoted value\"\nmalformed line\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("TEST_DOTENV_A", "")
	t.Setenv("TEST_DOTENV_B", "")
	require.NoError(t, LoadDotEnv(path))

	assert.Equal(t, "value-a", os.Getenv("TEST_DOTENV_A"))
	assert.Equal(t, "quoted value", os.Getenv("TEST_DOTENV_B"))
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_DOTENV_C=file-value\n"), 0o600))

	t.Setenv("TEST_DOTENV_C", "env-value")
	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "env-value", os.Getenv("TEST_DOTENV_C"))
}

func TestLoadDotEnvMissingFileIsNotAnError(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "does-not-exist")))
}
