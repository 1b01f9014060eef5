// Package config loads dashboard client configuration.
//
// Values are resolved in three layers, later layers overriding
// earlier ones: built-in defaults, an optional YAML file, then
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-yaml"
)

// Config holds runtime settings for the admin dashboard client.
type Config struct {
	// BaseURL is the admin API endpoint. Required.
	BaseURL string `yaml:"base_url" env:"RENTADMIN_BASE_URL"`

	// Timeout bounds every API request.
	Timeout time.Duration `yaml:"timeout" env:"RENTADMIN_TIMEOUT"`

	// SessionFile is where the session is persisted. Empty selects
	// the default path under the user config directory.
	SessionFile string `yaml:"session_file" env:"RENTADMIN_SESSION_FILE"`

	// LoginPath is where anonymous browsers are redirected.
	LoginPath string `yaml:"login_path" env:"RENTADMIN_LOGIN_PATH"`

	// MetricsEnabled turns Prometheus collectors on.
	MetricsEnabled bool `yaml:"metrics_enabled" env:"RENTADMIN_METRICS_ENABLED"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"RENTADMIN_LOG_LEVEL"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Timeout:   15 * time.Second,
		LoginPath: "/login",
		LogLevel:  "info",
	}
}

// Load resolves configuration from defaults, the YAML file at path
// (skipped when path is empty or the file does not exist) and
// environment variables, in that order of precedence.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		if err := overlayFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("rentadmin/config: parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("rentadmin/config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("rentadmin/config: parse %s: %w", path, err)
	}
	return nil
}

func (c Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("rentadmin/config: base_url is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("rentadmin/config: timeout must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("rentadmin/config: unknown log level %q", c.LogLevel)
	}
	return nil
}
