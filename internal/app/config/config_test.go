package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv(envAPIURL, "")
	t.Setenv(envTokenStore, "")

	cfg, err := NewConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, "file", cfg.TokenStore.Driver)
	assert.Equal(t, "admin_token", filepath.Base(cfg.TokenStore.File))
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiresIn)
	assert.False(t, cfg.MinIO.Enabled())
	assert.Equal(t, "localhost:8081", cfg.FakeAPI.Addr())
	assert.Equal(t, "uploads", cfg.FakeAPI.UploadDir)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv(envAPIURL, "https://market.example.com/api/")
	t.Setenv(envTokenStore, "Redis")
	t.Setenv(envRedisPort, "6380")
	t.Setenv(envMinIOEndpoint, "minio:9000")
	t.Setenv(envMinIOBucket, "products")
	t.Setenv(envMinIORegion, "ap-southeast-3")

	cfg, err := NewConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://market.example.com/api", cfg.APIURL, "trailing slash is trimmed")
	assert.Equal(t, "redis", cfg.TokenStore.Driver)
	assert.Equal(t, 6380, cfg.Redis.Port)
	assert.True(t, cfg.MinIO.Enabled())
	assert.Equal(t, "ap-southeast-3", cfg.MinIO.Region)
}

func TestNewConfig_File(t *testing.T) {
	t.Setenv(envAPIURL, "")
	t.Setenv(envTokenStore, "")

	path := filepath.Join(t.TempDir(), "admin.toml")
	content := `
api_url = "http://backend:9000/api"
log_level = "debug"

[token_store]
driver = "memory"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000/api", cfg.APIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "memory", cfg.TokenStore.Driver)
}

func TestNewConfig_UnknownTokenStore(t *testing.T) {
	t.Setenv(envTokenStore, "localstorage")

	_, err := NewConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "localstorage")
}

func TestNewConfig_MissingExplicitFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
