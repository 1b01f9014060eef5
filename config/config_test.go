package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fleetly/rentadmin-go/config"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rentadmin.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RENTADMIN_BASE_URL", "https://api.demo.test")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Timeout)
	}
	if cfg.LoginPath != "/login" || cfg.LogLevel != "info" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeYAML(t, "base_url: https://api.file.test\ntimeout: 5s\nlog_level: debug\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.BaseURL != "https://api.file.test" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeYAML(t, "base_url: https://api.file.test\ntimeout: 5s\n")
	t.Setenv("RENTADMIN_BASE_URL", "https://api.env.test")
	t.Setenv("RENTADMIN_TIMEOUT", "30s")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.BaseURL != "https://api.env.test" {
		t.Errorf("BaseURL = %q, env must win over file", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	t.Setenv("RENTADMIN_BASE_URL", "https://api.demo.test")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.BaseURL != "https://api.demo.test" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestLoad_RequiresBaseURL(t *testing.T) {
	if _, err := config.Load(""); err == nil {
		t.Fatal("expected error without base_url")
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := writeYAML(t, "base_url: [unterminated\n")

	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoad_RejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("RENTADMIN_BASE_URL", "https://api.demo.test")
	t.Setenv("RENTADMIN_LOG_LEVEL", "verbose")

	if _, err := config.Load(""); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}
