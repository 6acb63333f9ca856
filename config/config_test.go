package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "STORAGE_BACKEND", "JWT_TTL", "GEMINI_RETRY_ATTEMPTS", "ORDER_MARKS_BOX_ORDERED"} {
		unsetenv(t, key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 1, cfg.RetryAttempts)
	assert.False(t, cfg.MarkOrdered)
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("GEMINI_RETRY_ATTEMPTS", "3")
	t.Setenv("GEMINI_RETRY_BACKOFF", "250ms")
	t.Setenv("ORDER_MARKS_BOX_ORDERED", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageRedis, cfg.Storage)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryBackoff)
	assert.True(t, cfg.MarkOrdered)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_BACKEND", "sqlite")

	_, err := Load()
	require.Error(t, err)
}

func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
