package client

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// AuthError represents a rejected or missing session credential
// (HTTP 401). The caller should log in (again) before retrying.
type AuthError struct {
	// Message is the error message from the service
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication required: %s", e.Message)
}

// ForbiddenError represents a request the authenticated session is not
// allowed to perform (HTTP 403).
type ForbiddenError struct {
	// Message is the error message from the service
	Message string
}

// Error implements the error interface.
func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Message)
}

// NotFoundError represents an unknown path or resource (HTTP 404).
type NotFoundError struct {
	// Path is the request path that was not found
	Path string

	// Message is the error message from the service
	Message string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("not found: %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("not found: %s", e.Path)
}

// BadRequestError represents a request the service rejected as invalid
// (HTTP 400). FieldErrors carries the per-field messages decoded from
// the response body when the service provides them.
type BadRequestError struct {
	// Message is the overall error message from the service
	Message string

	// FieldErrors maps field names to their individual error messages
	FieldErrors map[string]string
}

// Error implements the error interface.
func (e *BadRequestError) Error() string {
	if len(e.FieldErrors) == 0 {
		return fmt.Sprintf("bad request: %s", e.Message)
	}
	fields := make([]string, 0, len(e.FieldErrors))
	for f := range e.FieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.FieldErrors[f]))
	}
	return fmt.Sprintf("bad request: %s (%s)", e.Message, strings.Join(parts, "; "))
}

// RateLimitError represents a rate limit exceeded response (HTTP 429).
// It includes the retry-after duration if the service provided one.
type RateLimitError struct {
	// RetryAfter is the duration to wait before retrying (if provided)
	RetryAfter time.Duration

	// Message is the error message from the service
	Message string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limit exceeded (retry after %s): %s", e.RetryAfter, e.Message)
	}
	return fmt.Sprintf("rate limit exceeded: %s", e.Message)
}

// ServerError represents a remote failure (HTTP 5xx). These are
// retried with backoff before being surfaced.
type ServerError struct {
	// StatusCode is the HTTP status code
	StatusCode int

	// Message is the error message from the service
	Message string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Message)
}

// TimeoutError represents a request that exceeded its deadline.
type TimeoutError struct {
	// Timeout is the configured request timeout
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Timeout)
}

// ParseError represents a response body that could not be decoded.
type ParseError struct {
	// RawResponse is the raw response body that failed to parse
	RawResponse string

	// Cause is the underlying decode error
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("response parse error: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ConfigError represents an invalid client configuration.
type ConfigError struct {
	// Field is the configuration field that is invalid
	Field string

	// Message describes the configuration error
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("client configuration error for field %q: %s", e.Field, e.Message)
}

// errorClass returns the metrics label for an error value.
func errorClass(err error) string {
	switch err.(type) {
	case *AuthError:
		return "auth"
	case *ForbiddenError:
		return "forbidden"
	case *NotFoundError:
		return "not_found"
	case *BadRequestError:
		return "bad_request"
	case *RateLimitError:
		return "rate_limit"
	case *ServerError:
		return "server"
	case *TimeoutError:
		return "timeout"
	case *ParseError:
		return "parse"
	default:
		return "other"
	}
}
