package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"codex-hq/spyglass/pkg/query"
)

// Hit is a single matched document.
type Hit struct {
	// ID is the document identifier
	ID string

	// Score is the relevance score assigned by the service
	Score float64

	// Source is the stored document body
	Source map[string]any
}

// SearchResponse is the decoded result of a search request.
type SearchResponse struct {
	// Total is the total number of matching documents, which may
	// exceed the number of returned hits
	Total int64

	// Hits contains the documents for the requested page
	Hits []Hit
}

// searchResponseBody is the wire shape of a search response.
type searchResponseBody struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string         `json:"_id"`
			Score  float64        `json:"_score"`
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// countResponseBody is the wire shape of a count response.
type countResponseBody struct {
	Count int64 `json:"count"`
}

// Search executes a query against the service. A nil params uses the
// default pagination (first page of ten, service sort order). The
// query is wrapped into its transport envelope; pagination and sort
// travel as URL query-string parameters, not in the body.
//
// When a cache is attached, the decoded response is served from and
// stored into it keyed by the envelope and parameters.
func (c *Client) Search(ctx context.Context, q query.Query, params *query.SearchParams) (*SearchResponse, error) {
	p := query.DefaultSearchParams()
	if params != nil {
		p = *params
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	body, err := query.Wrap(q).JSON()
	if err != nil {
		return nil, &ParseError{Cause: err}
	}
	values := p.Values()

	var key string
	if c.cache != nil {
		key = cacheKey(body, values.Encode())
		if cached, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			var resp SearchResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				if c.metrics != nil {
					c.metrics.RecordCacheHit()
				}
				c.logger.Debug("search served from cache", "key", key)
				return &resp, nil
			}
		}
		if c.metrics != nil {
			c.metrics.RecordCacheMiss()
		}
	}

	var decoded searchResponseBody
	if err := c.doJSON(ctx, "search", http.MethodPost, c.config.SearchPath, body, &decoded, values); err != nil {
		return nil, err
	}

	resp := &SearchResponse{
		Total: decoded.Hits.Total.Value,
		Hits:  make([]Hit, len(decoded.Hits.Hits)),
	}
	for i, h := range decoded.Hits.Hits {
		resp.Hits[i] = Hit{ID: h.ID, Score: h.Score, Source: h.Source}
	}

	if c.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := c.cache.Put(ctx, key, data); err != nil {
				c.logger.Warn("failed to cache search response", "key", key, "error", err)
			}
		}
	}

	return resp, nil
}

// SearchRaw executes a pre-assembled envelope and returns the raw
// response body without decoding or caching. It is the escape hatch
// for request shapes the typed API does not cover.
func (c *Client) SearchRaw(ctx context.Context, envelope query.Envelope, params query.SearchParams) (json.RawMessage, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	body, err := envelope.JSON()
	if err != nil {
		return nil, &ParseError{Cause: err}
	}

	var raw json.RawMessage
	if err := c.doJSON(ctx, "search_raw", http.MethodPost, c.config.SearchPath, body, &raw, params.Values()); err != nil {
		return nil, err
	}
	return raw, nil
}

// Count returns the number of documents matching a query.
func (c *Client) Count(ctx context.Context, q query.Query) (int64, error) {
	body, err := query.Wrap(q).JSON()
	if err != nil {
		return 0, &ParseError{Cause: err}
	}

	var decoded countResponseBody
	if err := c.doJSON(ctx, "count", http.MethodPost, c.config.CountPath, body, &decoded, nil); err != nil {
		return 0, err
	}
	return decoded.Count, nil
}

// cacheKey derives a stable cache key from the request body and
// encoded query-string parameters.
func cacheKey(body []byte, params string) string {
	h := sha256.New()
	h.Write(body)
	h.Write([]byte{0})
	h.Write([]byte(params))
	return hex.EncodeToString(h.Sum(nil))
}
