package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 2*time.Second, cfg.NotifyDelay)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(envAddr, ":8081")
	t.Setenv(envBackend, "redis")
	t.Setenv(envRedisAddr, "redis:6379")
	t.Setenv(envNotifyDelay, "500ms")
	t.Setenv(envLogFormat, "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.Addr)
	assert.Equal(t, "redis", cfg.Backend)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 500*time.Millisecond, cfg.NotifyDelay)
	assert.Equal(t, LogFormatJSON, cfg.LogFormat)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FRUSTRATIONS_BACKEND=badger\nFRUSTRATIONS_REDIS_PREFIX=dotenv\n"), 0o600))
	chdir(t, dir)
	t.Setenv(envBackend, "")
	t.Setenv(envRedisPrefix, "")
	// Setenv restores the original value on cleanup; unset now so godotenv,
	// which never overrides a set variable, can fill them in.
	os.Unsetenv(envBackend)
	os.Unsetenv(envRedisPrefix)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "badger", cfg.Backend)
	assert.Equal(t, "dotenv", cfg.RedisPrefix)
}

func TestLoad_BadDelay(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(envNotifyDelay, "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Backend = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.NotifyDelay = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Backend = "redis"
	cfg.RedisAddr = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogFormat = "xml"
	assert.Error(t, cfg.Validate())
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
