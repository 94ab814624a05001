package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "WINDOW_DAYS", "SEED", "LOAD_DELAY", "THINK_DELAY", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, loaded := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.False(t, loaded)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 30, cfg.WindowDays)
	assert.Equal(t, time.Second, cfg.LoadDelay)
	assert.Equal(t, time.Second, cfg.ThinkDelay)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.NotZero(t, cfg.Seed, "seed falls back to the clock")
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("WINDOW_DAYS", "7")
	t.Setenv("SEED", "42")
	t.Setenv("THINK_DELAY", "250ms")
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("ENVIRONMENT", "dev")

	cfg, _ := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 7, cfg.WindowDays)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 250*time.Millisecond, cfg.ThinkDelay)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL, "invalid durations keep the default")
	assert.True(t, cfg.IsDev())
}

func TestLoadDotEnvFile(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")
	t.Setenv("WINDOW_DAYS", "")
	os.Unsetenv("WINDOW_DAYS")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=DEBUG\nWINDOW_DAYS=-3\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("WINDOW_DAYS")
	})

	cfg, loaded := Load(path)

	assert.True(t, loaded)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 30, cfg.WindowDays, "non-positive window falls back to 30")
}
