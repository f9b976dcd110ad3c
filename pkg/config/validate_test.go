package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Service.BaseURL = "https://search.example.org"
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		if err := Validate(validConfig()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing base URL", func(t *testing.T) {
		cfg := validConfig()
		cfg.Service.BaseURL = ""
		err := Validate(cfg)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "service.base_url") {
			t.Errorf("expected base_url field error, got %v", err)
		}
	})

	t.Run("malformed base URL", func(t *testing.T) {
		cfg := validConfig()
		cfg.Service.BaseURL = "not-a-url"
		if err := Validate(cfg); err == nil {
			t.Error("expected error for URL without scheme")
		}
	})

	t.Run("negative retries", func(t *testing.T) {
		cfg := validConfig()
		cfg.Service.MaxRetries = -1
		if err := Validate(cfg); err == nil {
			t.Error("expected error for negative retries")
		}
	})

	t.Run("cache enabled without path", func(t *testing.T) {
		cfg := validConfig()
		cfg.Cache.Enabled = true
		cfg.Cache.Path = ""
		err := Validate(cfg)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "cache.path") {
			t.Errorf("expected cache.path field error, got %v", err)
		}
	})

	t.Run("invalid keep-alive schedule", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.KeepAliveSchedule = "every hour"
		if err := Validate(cfg); err == nil {
			t.Error("expected error for invalid cron expression")
		}
	})

	t.Run("valid cron schedules", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.KeepAliveSchedule = "*/30 * * * *"
		cfg.Cache.Enabled = true
		cfg.Cache.Path = "/tmp/cache.db"
		cfg.Cache.SweepSchedule = "0 * * * *"
		if err := Validate(cfg); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("errors are collected", func(t *testing.T) {
		cfg := &Config{}
		cfg.Cache.Enabled = true
		err := Validate(cfg)
		verr, ok := err.(ValidationError)
		if !ok {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(verr.Errors) < 2 {
			t.Errorf("expected multiple field errors, got %v", verr.Errors)
		}
	})
}
