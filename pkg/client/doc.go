// Package client implements the HTTP transport for the Spyglass search
// service.
//
// # Overview
//
// The package wraps a connection-pooled HTTP client with session-cookie
// authentication, retry logic for transient failures, and a typed error
// taxonomy mapped from response status codes. Query trees assembled
// with pkg/query are wrapped into transport envelopes and posted to the
// service; pagination and sort travel as URL query-string parameters.
//
// # Basic Usage
//
//	cfg := client.Config{
//	    BaseURL:  "https://search.example.org",
//	    Username: os.Getenv("SPYGLASS_USERNAME"),
//	    Password: os.Getenv("SPYGLASS_PASSWORD"),
//	}
//
//	c, err := client.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	if err := c.Login(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	q, _ := query.Term("sex", "female")
//	resp, err := c.Search(ctx, q, nil)
//
// # Error Handling
//
// Failures are surfaced as typed errors:
//
//   - AuthError: unauthenticated (HTTP 401)
//   - ForbiddenError: authenticated but not allowed (HTTP 403)
//   - NotFoundError: unknown path or resource (HTTP 404)
//   - BadRequestError: invalid request with per-field errors (HTTP 400)
//   - RateLimitError: rate limit exceeded (HTTP 429)
//   - ServerError: remote failure (HTTP 5xx)
//   - TimeoutError: request deadline exceeded
//   - ParseError: undecodable response body
//
// Only server errors and network failures are retried, with exponential
// backoff; client errors fail immediately.
//
// # Thread Safety
//
// A Client is safe for concurrent use from multiple goroutines.
package client
