package config

import "time"

// Default values for configuration fields.
const (
	// Service defaults
	DefaultTimeout             = 30 * time.Second
	DefaultMaxRetries          = 3
	DefaultMaxIdleConns        = 100
	DefaultMaxIdleConnsPerHost = 10
	DefaultIdleConnTimeout     = 90 * time.Second
	DefaultUserAgent           = "spyglass-go"

	// Cache defaults
	DefaultCacheTTL = 5 * time.Minute

	// Metrics defaults
	DefaultMetricsNamespace = "spyglass"
	DefaultMetricsSubsystem = "client"
)

// ApplyDefaults fills unset configuration fields with their default
// values. Endpoint path defaults live in pkg/client; empty paths here
// mean "use the client default".
func ApplyDefaults(cfg *Config) {
	if cfg.Service.Timeout == 0 {
		cfg.Service.Timeout = Duration(DefaultTimeout)
	}
	if cfg.Service.MaxRetries == 0 {
		cfg.Service.MaxRetries = DefaultMaxRetries
	}
	if cfg.Service.MaxIdleConns == 0 {
		cfg.Service.MaxIdleConns = DefaultMaxIdleConns
	}
	if cfg.Service.MaxIdleConnsPerHost == 0 {
		cfg.Service.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	}
	if cfg.Service.IdleConnTimeout == 0 {
		cfg.Service.IdleConnTimeout = Duration(DefaultIdleConnTimeout)
	}
	if cfg.Service.UserAgent == "" {
		cfg.Service.UserAgent = DefaultUserAgent
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = Duration(DefaultCacheTTL)
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}
