package stacio

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.False(t, cfg.HTTP.Enabled)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, uint64(0), cfg.HTTP.MaxRetries)
	assert.Equal(t, DefaultUserAgent, cfg.HTTP.UserAgent)
	assert.Equal(t, DefaultMaxBytes, cfg.HTTP.MaxBytes)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(afero.NewMemMapFs(), "/etc/stac/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, cfg.HTTP.UserAgent)
}

func TestLoadConfig_File(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/stac/config.yaml", []byte(`
http:
  enabled: true
  timeout: 5s
  max_retries: 3
  user_agent: my-crawler
  max_bytes: 1048576
`), 0o644))

	cfg, err := LoadConfig(fs, "/etc/stac/config.yaml")
	require.NoError(t, err)
	assert.True(t, cfg.HTTP.Enabled)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, uint64(3), cfg.HTTP.MaxRetries)
	assert.Equal(t, "my-crawler", cfg.HTTP.UserAgent)

	f := cfg.HTTP.Fetcher()
	assert.Equal(t, 5*time.Second, f.Client.Timeout)
	assert.Equal(t, uint64(3), f.MaxRetries)
	assert.Equal(t, int64(1<<20), f.MaxBytes)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c.yaml", []byte("http:\n  enabled: false\n"), 0o644))
	t.Setenv("STAC_HTTP_ENABLED", "true")
	t.Setenv("STAC_HTTP_TIMEOUT", "2s")

	cfg, err := LoadConfig(fs, "/c.yaml")
	require.NoError(t, err)
	assert.True(t, cfg.HTTP.Enabled)
	assert.Equal(t, 2*time.Second, cfg.HTTP.Timeout)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c.yaml", []byte("http: [unclosed"), 0o644))

	_, err := LoadConfig(fs, "/c.yaml")
	assert.Error(t, err)
}

func TestLoadConfig_NegativeTimeout(t *testing.T) {
	t.Setenv("STAC_HTTP_TIMEOUT", "-1s")
	_, err := LoadConfig(afero.NewMemMapFs(), "")
	assert.ErrorContains(t, err, "http.timeout must not be negative")
}

func TestLoadConfig_NegativeMaxBytes(t *testing.T) {
	t.Setenv("STAC_HTTP_MAX_BYTES", "-1")
	_, err := LoadConfig(afero.NewMemMapFs(), "")
	assert.ErrorContains(t, err, "http.max_bytes must not be negative")
}
