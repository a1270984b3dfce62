package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: test-secret
mongodb:
  uri: mongodb://localhost:27017
  database: storefront
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, 999.0, cfg.Shipping.FreeAbove)
	assert.Equal(t, 49.0, cfg.Shipping.FlatRate)
	assert.Equal(t, "/uploads", cfg.Upload.PublicPath)
	assert.Equal(t, int64(5), cfg.Upload.MaxSizeMB)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9090
jwt:
  secret: test-secret
  expiry: 1h
shipping:
  free_above: 1500
  flat_rate: 99
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, 1500.0, cfg.Shipping.FreeAbove)
	assert.Equal(t, 99.0, cfg.Shipping.FlatRate)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
