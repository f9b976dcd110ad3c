package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spyglass.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
service:
  base_url: https://search.example.org
  timeout: 10s
  max_retries: 5
auth:
  username: fielduser
  password: secret
cache:
  enabled: true
  path: /tmp/spyglass-cache.db
  ttl: 2m
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Service.BaseURL != "https://search.example.org" {
		t.Errorf("expected base URL from file, got %q", cfg.Service.BaseURL)
	}
	if cfg.Service.Timeout.Std() != 10*time.Second {
		t.Errorf("expected 10s timeout, got %s", cfg.Service.Timeout.Std())
	}
	if cfg.Service.MaxRetries != 5 {
		t.Errorf("expected 5 retries, got %d", cfg.Service.MaxRetries)
	}
	if cfg.Cache.TTL.Std() != 2*time.Minute {
		t.Errorf("expected 2m cache TTL, got %s", cfg.Cache.TTL.Std())
	}

	// Defaults fill unset fields.
	if cfg.Service.MaxIdleConns != DefaultMaxIdleConns {
		t.Errorf("expected default max idle conns, got %d", cfg.Service.MaxIdleConns)
	}
	if cfg.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("expected default metrics namespace, got %q", cfg.Metrics.Namespace)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "service: [not a mapping")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
service:
  base_url: https://search.example.org
auth:
  username: fromfile
`)

	t.Setenv("SPYGLASS_SERVICE_BASE_URL", "https://override.example.org")
	t.Setenv("SPYGLASS_USERNAME", "fromenv")
	t.Setenv("SPYGLASS_PASSWORD", "envsecret")
	t.Setenv("SPYGLASS_SERVICE_TIMEOUT", "45s")
	t.Setenv("SPYGLASS_CACHE_ENABLED", "true")
	t.Setenv("SPYGLASS_CACHE_PATH", "/tmp/cache.db")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Service.BaseURL != "https://override.example.org" {
		t.Errorf("expected env override for base URL, got %q", cfg.Service.BaseURL)
	}
	if cfg.Auth.Username != "fromenv" {
		t.Errorf("expected env override for username, got %q", cfg.Auth.Username)
	}
	if cfg.Auth.Password != "envsecret" {
		t.Errorf("expected env override for password, got %q", cfg.Auth.Password)
	}
	if cfg.Service.Timeout.Std() != 45*time.Second {
		t.Errorf("expected 45s timeout, got %s", cfg.Service.Timeout.Std())
	}
	if !cfg.Cache.Enabled {
		t.Error("expected cache enabled from env")
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("base URL required", func(t *testing.T) {
		t.Setenv("SPYGLASS_SERVICE_BASE_URL", "")
		if _, err := FromEnv(); err == nil {
			t.Error("expected error without base URL")
		}
	})

	t.Run("credentials resolved", func(t *testing.T) {
		t.Setenv("SPYGLASS_SERVICE_BASE_URL", "https://search.example.org")
		t.Setenv("SPYGLASS_USERNAME", "fielduser")
		t.Setenv("SPYGLASS_PASSWORD", "secret")

		cfg, err := FromEnv()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Auth.Username != "fielduser" || cfg.Auth.Password != "secret" {
			t.Errorf("expected credentials from env, got %q/%q", cfg.Auth.Username, cfg.Auth.Password)
		}
		if cfg.Service.Timeout.Std() != DefaultTimeout {
			t.Errorf("expected default timeout, got %s", cfg.Service.Timeout.Std())
		}
	})
}

func TestDurationUnmarshal(t *testing.T) {
	path := writeConfigFile(t, `
service:
  base_url: https://search.example.org
  timeout: 1500000000
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Bare integers are nanoseconds.
	if cfg.Service.Timeout.Std() != 1500*time.Millisecond {
		t.Errorf("expected 1.5s timeout, got %s", cfg.Service.Timeout.Std())
	}
}
