package client

import (
	"fmt"

	"codex-hq/spyglass/pkg/cache"
	"codex-hq/spyglass/pkg/config"
	"codex-hq/spyglass/pkg/telemetry/metrics"
)

// FromConfig builds a fully wired client from a loaded configuration:
// the transport, credentials, and - when enabled - the result cache and
// metrics collector. A cache created here is owned by the client and
// closed by Close, unlike one attached with WithCache.
//
// Additional options are applied after the configuration-driven ones,
// so they win on conflict.
func FromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	clientCfg := Config{
		BaseURL:             cfg.Service.BaseURL,
		Username:            cfg.Auth.Username,
		Password:            cfg.Auth.Password,
		LoginPath:           cfg.Auth.LoginPath,
		LogoutPath:          cfg.Auth.LogoutPath,
		SearchPath:          cfg.Service.SearchPath,
		CountPath:           cfg.Service.CountPath,
		Timeout:             cfg.Service.Timeout.Std(),
		MaxRetries:          cfg.Service.MaxRetries,
		MaxIdleConns:        cfg.Service.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Service.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.Service.IdleConnTimeout.Std(),
		UserAgent:           cfg.Service.UserAgent,
		KeepAliveSchedule:   cfg.Auth.KeepAliveSchedule,
	}

	var configOpts []Option
	var store *cache.Cache

	if cfg.Cache.Enabled {
		var err error
		store, err = cache.New(cfg.Cache.Path, cfg.Cache.TTL.Std())
		if err != nil {
			return nil, fmt.Errorf("failed to open result cache: %w", err)
		}
		configOpts = append(configOpts, WithCache(store), ownCache())
	}

	if cfg.Metrics.Enabled {
		collector := metrics.NewCollector(metrics.Config{
			Namespace: cfg.Metrics.Namespace,
			Subsystem: cfg.Metrics.Subsystem,
		}, nil)
		configOpts = append(configOpts, WithMetrics(collector))
	}

	c, err := New(clientCfg, append(configOpts, opts...)...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}
	return c, nil
}

// ownCache marks the attached cache as client-owned so Close releases
// it.
func ownCache() Option {
	return func(c *Client) { c.ownsCache = true }
}
