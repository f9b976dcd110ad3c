package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified
// path, applies default values and validates the result. Environment
// variables are not consulted; use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Variables follow the naming
// convention SPYGLASS_SECTION_FIELD (e.g. SPYGLASS_SERVICE_BASE_URL)
// with the credential shorthands SPYGLASS_USERNAME and
// SPYGLASS_PASSWORD. Environment variables always take precedence over
// file values.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// FromEnv builds a configuration from defaults plus environment
// variables alone, for library users that carry no config file. At
// minimum SPYGLASS_SERVICE_BASE_URL must be set.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies SPYGLASS_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	// Service overrides
	if val := os.Getenv("SPYGLASS_SERVICE_BASE_URL"); val != "" {
		cfg.Service.BaseURL = val
	}
	if val := os.Getenv("SPYGLASS_SERVICE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Service.Timeout = Duration(d)
		}
	}
	if val := os.Getenv("SPYGLASS_SERVICE_MAX_RETRIES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Service.MaxRetries = i
		}
	}
	if val := os.Getenv("SPYGLASS_SERVICE_USER_AGENT"); val != "" {
		cfg.Service.UserAgent = val
	}

	// Credential shorthands
	if val := os.Getenv("SPYGLASS_USERNAME"); val != "" {
		cfg.Auth.Username = val
	}
	if val := os.Getenv("SPYGLASS_PASSWORD"); val != "" {
		cfg.Auth.Password = val
	}
	if val := os.Getenv("SPYGLASS_AUTH_KEEP_ALIVE_SCHEDULE"); val != "" {
		cfg.Auth.KeepAliveSchedule = val
	}

	// Cache overrides
	if val := os.Getenv("SPYGLASS_CACHE_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Cache.Enabled = b
		}
	}
	if val := os.Getenv("SPYGLASS_CACHE_PATH"); val != "" {
		cfg.Cache.Path = val
	}
	if val := os.Getenv("SPYGLASS_CACHE_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Cache.TTL = Duration(d)
		}
	}
	if val := os.Getenv("SPYGLASS_CACHE_SWEEP_SCHEDULE"); val != "" {
		cfg.Cache.SweepSchedule = val
	}

	// Metrics overrides
	if val := os.Getenv("SPYGLASS_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
}
