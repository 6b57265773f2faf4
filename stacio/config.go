package stacio

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// DefaultUserAgent is sent with HTTP requests unless configured otherwise.
const DefaultUserAgent = "stac-go"

// Config holds I/O settings.
type Config struct {
	HTTP HTTPConfig `mapstructure:"http"`
}

// HTTPConfig controls network reads.
type HTTPConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries uint64        `mapstructure:"max_retries"`
	UserAgent  string        `mapstructure:"user_agent"`
	MaxBytes   int64         `mapstructure:"max_bytes"`
}

// Fetcher builds an HTTPFetcher from the settings.
func (c HTTPConfig) Fetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client:     &http.Client{Timeout: c.Timeout},
		UserAgent:  c.UserAgent,
		MaxRetries: c.MaxRetries,
		MaxBytes:   c.MaxBytes,
	}
}

// LoadConfig reads settings from an optional YAML/JSON/TOML file at path on
// fsys, overridden by STAC_* environment variables (e.g. STAC_HTTP_ENABLED).
// A missing file or empty path yields the defaults.
func LoadConfig(fsys afero.Fs, path string) (*Config, error) {
	v := viper.New()
	v.SetFs(fsys)

	v.SetDefault("http.enabled", false)
	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("http.max_retries", 0)
	v.SetDefault("http.user_agent", DefaultUserAgent)
	v.SetDefault("http.max_bytes", DefaultMaxBytes)

	v.SetEnvPrefix("STAC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("stacio: read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("stacio: decode config: %w", err)
	}
	if cfg.HTTP.Timeout < 0 {
		return nil, fmt.Errorf("stacio: http.timeout must not be negative (got %s)", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.MaxBytes < 0 {
		return nil, fmt.Errorf("stacio: http.max_bytes must not be negative (got %d)", cfg.HTTP.MaxBytes)
	}
	return &cfg, nil
}
