package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"key-dance/pkg/acrcloud"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ACRCLOUD_HOST", "ACRCLOUD_ACCESS_KEY", "ACRCLOUD_ACCESS_SECRET", "ACRCLOUD_TIMEOUT",
		"SERVER_ADDRESS", "STORAGE_PATH", "STATIC_DIR", "LOG_LEVEL", "RECOGNITION_WORKERS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, time.Duration(0), cfg.Provider.Timeout)
	assert.Equal(t, "./data", cfg.StoragePath)
	assert.Equal(t, 4, cfg.Pipeline.RecognitionWorkers)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACRCLOUD_HOST", "identify-eu-west-1.acrcloud.com")
	t.Setenv("ACRCLOUD_ACCESS_KEY", "key")
	t.Setenv("ACRCLOUD_ACCESS_SECRET", "secret")
	t.Setenv("ACRCLOUD_TIMEOUT", "10s")
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:9090")
	t.Setenv("RECOGNITION_WORKERS", "2")

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, acrcloud.Credentials{
		Host:         "identify-eu-west-1.acrcloud.com",
		AccessKey:    "key",
		AccessSecret: "secret",
	}, cfg.Credentials())
	assert.Equal(t, 10*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Address)
	assert.Equal(t, 2, cfg.Pipeline.RecognitionWorkers)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  address: ":7000"
provider:
  host: yaml-host
  access_key: yaml-key
  access_secret: yaml-secret
  timeout: 5s
storage_path: /var/lib/key-dance
`), 0o644))
	t.Setenv("ACRCLOUD_ACCESS_KEY", "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Address)
	assert.Equal(t, "yaml-host", cfg.Provider.Host)
	assert.Equal(t, "env-key", cfg.Provider.AccessKey)
	assert.Equal(t, 5*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, "/var/lib/key-dance", cfg.StoragePath)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("ACRCLOUD_TIMEOUT", "soon")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate_MissingCredentials(t *testing.T) {
	cfg := Default()
	cfg.Provider.Host = "host"
	cfg.Provider.AccessKey = "key"

	err := cfg.Validate()
	assert.ErrorIs(t, err, acrcloud.ErrMissingCredentials)
	assert.Contains(t, err.Error(), "access secret")
}
