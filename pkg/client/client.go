package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"codex-hq/spyglass/pkg/cache"
	"codex-hq/spyglass/pkg/telemetry/metrics"
)

// Default configuration values applied by New.
const (
	DefaultTimeout             = 30 * time.Second
	DefaultMaxRetries          = 3
	DefaultMaxIdleConns        = 100
	DefaultMaxIdleConnsPerHost = 10
	DefaultIdleConnTimeout     = 90 * time.Second

	DefaultLoginPath  = "/api/v1/login"
	DefaultLogoutPath = "/api/v1/logout"
	DefaultSearchPath = "/api/v1/search"
	DefaultCountPath  = "/api/v1/search/count"
)

// Config contains the client configuration.
type Config struct {
	// BaseURL is the root URL of the search service (required)
	BaseURL string

	// Username and Password are the session credentials. They may be
	// empty if the caller never logs in (anonymous endpoints only).
	Username string
	Password string

	// LoginPath, LogoutPath, SearchPath and CountPath override the
	// service's default endpoint paths.
	LoginPath  string
	LogoutPath string
	SearchPath string
	CountPath  string

	// Timeout is the per-request timeout
	Timeout time.Duration

	// MaxRetries is the number of retries for transient failures
	MaxRetries int

	// Connection pool settings
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration

	// UserAgent is sent on every request
	UserAgent string

	// KeepAliveSchedule is an optional cron expression; when set,
	// StartKeepAlive re-issues the login on that schedule to keep the
	// session cookie fresh.
	KeepAliveSchedule string
}

// Client is a session-authenticated HTTP client for the search
// service. It is safe for concurrent use.
type Client struct {
	config Config

	// client is the HTTP client with connection pooling and cookie jar
	client *http.Client

	logger  *slog.Logger
	metrics *metrics.Collector
	cache   *cache.Cache

	// ownsCache is set when the cache was created by FromConfig and
	// must be closed with the client
	ownsCache bool

	// sessionMu protects the session state below
	sessionMu sync.Mutex
	loggedIn  bool
	keepAlive *cron.Cron
}

// Option configures optional client collaborators.
type Option func(*Client)

// WithMetrics attaches a metrics collector; request counts, durations,
// error classes and cache hit rates are recorded on it.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) { c.metrics = m }
}

// WithCache attaches a query-result cache used by Search. The cache is
// owned by the caller and is not closed by Client.Close.
func WithCache(store *cache.Cache) Option {
	return func(c *Client) { c.cache = store }
}

// WithLogger overrides the default component logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a new client. The configuration is validated and filled
// with defaults; see the Default* constants.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, &ConfigError{Field: "base_url", Message: "base URL is required"}
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &ConfigError{Field: "base_url", Message: fmt.Sprintf("invalid base URL %q", cfg.BaseURL)}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = DefaultMaxIdleConns
	}
	if cfg.MaxIdleConnsPerHost == 0 {
		cfg.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	}
	if cfg.IdleConnTimeout == 0 {
		cfg.IdleConnTimeout = DefaultIdleConnTimeout
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = DefaultLoginPath
	}
	if cfg.LogoutPath == "" {
		cfg.LogoutPath = DefaultLogoutPath
	}
	if cfg.SearchPath == "" {
		cfg.SearchPath = DefaultSearchPath
	}
	if cfg.CountPath == "" {
		cfg.CountPath = DefaultCountPath
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	c := &Client{
		config: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
			Jar:       jar,
		},
		logger: slog.Default().With("component", "client"),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger.Debug("client initialized", "base_url", cfg.BaseURL)
	return c, nil
}

// BaseURL returns the configured service root URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// do performs an HTTP request with retry logic. Server errors (5xx)
// and network failures are retried with exponential backoff; client
// errors (4xx) fail immediately as typed errors.
func (c *Client) do(ctx context.Context, method, path string, body []byte, params url.Values) (*http.Response, error) {
	target := c.config.BaseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	requestID := uuid.NewString()

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			c.logger.Debug("retrying request",
				"request_id", requestID,
				"attempt", attempt,
				"max_retries", c.config.MaxRetries,
				"backoff", backoff,
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("X-Request-ID", requestID)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.config.UserAgent != "" {
			req.Header.Set("User-Agent", c.config.UserAgent)
		}

		c.logger.Debug("sending request",
			"request_id", requestID,
			"method", method,
			"path", path,
		)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, &TimeoutError{Timeout: c.config.Timeout}
			}
			c.logger.Warn("request failed, will retry",
				"request_id", requestID,
				"attempt", attempt+1,
				"error", err,
			)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		errorBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		apiErr := c.statusError(resp, path, errorBody)
		if _, retryable := apiErr.(*ServerError); !retryable {
			return nil, apiErr
		}

		lastErr = apiErr
		c.logger.Warn("request returned error status, will retry",
			"request_id", requestID,
			"status", resp.StatusCode,
			"attempt", attempt+1,
		)
	}

	return nil, lastErr
}

// statusError maps a non-2xx response to a typed error.
func (c *Client) statusError(resp *http.Response, path string, body []byte) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &AuthError{Message: errorMessage(body)}
	case http.StatusForbidden:
		return &ForbiddenError{Message: errorMessage(body)}
	case http.StatusNotFound:
		return &NotFoundError{Path: path, Message: errorMessage(body)}
	case http.StatusBadRequest:
		return badRequestError(body)
	case http.StatusTooManyRequests:
		return &RateLimitError{
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Message:    errorMessage(body),
		}
	default:
		return &ServerError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}
}

// doJSON performs a request with a JSON body and decodes the JSON
// response into respBody (when non-nil). Request metrics are recorded
// under the given operation label.
func (c *Client) doJSON(ctx context.Context, operation, method, path string, reqBody []byte, respBody any, params url.Values) error {
	start := time.Now()

	resp, err := c.do(ctx, method, path, reqBody, params)
	if err != nil {
		c.record(operation, "error", start)
		if c.metrics != nil {
			c.metrics.RecordError(errorClass(err))
		}
		return err
	}
	defer resp.Body.Close()

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		c.record(operation, "error", start)
		return &ParseError{Cause: fmt.Errorf("failed to read response: %w", err)}
	}

	if respBody != nil && len(responseBytes) > 0 {
		if err := decodeJSON(responseBytes, respBody); err != nil {
			c.record(operation, "error", start)
			if c.metrics != nil {
				c.metrics.RecordError("parse")
			}
			return err
		}
	}

	c.record(operation, "ok", start)
	return nil
}

func (c *Client) record(operation, status string, start time.Time) {
	if c.metrics != nil {
		c.metrics.ObserveRequest(operation, status, time.Since(start))
	}
}

// Close stops the keep-alive scheduler and releases idle connections.
// A cache attached with WithCache is owned by the caller and left
// open; one created by FromConfig is closed here.
func (c *Client) Close() error {
	c.StopKeepAlive()
	if transport, ok := c.client.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
	var err error
	if c.ownsCache && c.cache != nil {
		err = c.cache.Close()
	}
	c.logger.Debug("client closed")
	return err
}

// parseRetryAfter parses a Retry-After header value. Both delay-seconds
// and HTTP-date formats are supported.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}

	var seconds int
	if _, err := fmt.Sscanf(header, "%d", &seconds); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}

	return 0
}
