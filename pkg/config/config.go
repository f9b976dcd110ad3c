package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the Spyglass client.
type Config struct {
	// Service contains the search service endpoint configuration.
	Service ServiceConfig `yaml:"service"`

	// Auth contains the session authentication configuration.
	Auth AuthConfig `yaml:"auth"`

	// Cache contains the local result cache configuration.
	Cache CacheConfig `yaml:"cache"`

	// Metrics contains the Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServiceConfig contains the search service endpoint settings.
type ServiceConfig struct {
	// BaseURL is the root URL of the search service (required).
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-request timeout.
	// Default: 30s
	Timeout Duration `yaml:"timeout"`

	// MaxRetries is the number of retries for transient failures.
	// Default: 3
	MaxRetries int `yaml:"max_retries"`

	// MaxIdleConns is the connection pool size.
	// Default: 100
	MaxIdleConns int `yaml:"max_idle_conns"`

	// MaxIdleConnsPerHost is the per-host connection pool size.
	// Default: 10
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// IdleConnTimeout is how long idle connections are kept open.
	// Default: 90s
	IdleConnTimeout Duration `yaml:"idle_conn_timeout"`

	// SearchPath and CountPath override the default endpoint paths.
	SearchPath string `yaml:"search_path"`
	CountPath  string `yaml:"count_path"`

	// UserAgent is sent on every request.
	UserAgent string `yaml:"user_agent"`
}

// AuthConfig contains the session authentication settings.
type AuthConfig struct {
	// Username and Password are the session credentials. The
	// SPYGLASS_USERNAME and SPYGLASS_PASSWORD environment variables
	// override both.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// LoginPath and LogoutPath override the default endpoint paths.
	LoginPath  string `yaml:"login_path"`
	LogoutPath string `yaml:"logout_path"`

	// KeepAliveSchedule is an optional cron expression to re-issue
	// the login, keeping the session cookie fresh.
	KeepAliveSchedule string `yaml:"keep_alive_schedule"`
}

// CacheConfig contains the local result cache settings.
type CacheConfig struct {
	// Enabled controls whether search responses are cached locally.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file path (required when enabled).
	Path string `yaml:"path"`

	// TTL is the cache entry lifetime.
	// Default: 5m
	TTL Duration `yaml:"ttl"`

	// SweepSchedule is an optional cron expression for purging
	// expired entries.
	SweepSchedule string `yaml:"sweep_schedule"`
}

// MetricsConfig contains the Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled controls whether client metrics are collected.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "spyglass"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric name subsystem segment.
	// Default: "client"
	Subsystem string `yaml:"subsystem"`
}

// Duration wraps time.Duration so YAML configuration can use duration
// strings ("30s", "5m"). Bare integers are read as nanoseconds for
// compatibility with serialized time.Duration values.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(n)
		return nil
	}

	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	return fmt.Errorf("invalid duration value %q", value.Value)
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
