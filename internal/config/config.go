// Package config provides configuration loading for the chatto client.
//
// Configuration is read from ~/.config/chatto/config.yaml and overridden by
// CHATTO_* environment variables. The only required value is the backend
// base URL; everything else has a default.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds the complete client configuration.
type Config struct {
	API APIConfig `koanf:"api"`
	Log LogConfig `koanf:"log"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	// BaseURL is the Chatto backend root, e.g. https://api.chatto.app.
	BaseURL string `koanf:"base_url"`
	// Timeout bounds every request.
	Timeout time.Duration `koanf:"timeout"`
	// CSRFToken is attached as the legacy csrftoken cookie when set.
	CSRFToken Secret `koanf:"csrf_token"`
}

// LogConfig holds logging settings. The TUI owns the terminal, so logs go to
// a rotated file rather than stderr.
type LogConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:8000"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 3
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must be http or https, got %q", u.Scheme)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout cannot be negative")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}
