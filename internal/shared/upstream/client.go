// Package upstream performs JSON calls to third-party data providers with a
// fixed per-call timeout and an optional response cache.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"farmai-backend/internal/shared/metrics"
	"farmai-backend/internal/shared/storage/cache"
	"farmai-backend/internal/shared/telemetry"
)

const maxBodyBytes = 32 << 20

// ErrInvalidJSON is returned when a provider answers 2xx with a non-JSON body.
var ErrInvalidJSON = errors.New("upstream returned invalid JSON")

// StatusError reports a non-2xx provider response.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream http status %d: %s", e.Status, e.Body)
}

// Client is shared by the provider packages.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Cache     cache.Cache
	TTL       time.Duration
}

// New constructs a Client. A nil cache disables caching.
func New(timeout time.Duration, userAgent string, c cache.Cache, ttl time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if c == nil {
		c = cache.Nop{}
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		UserAgent: userAgent,
		Cache:     c,
		TTL:       ttl,
	}
}

// Request describes one provider call.
type Request struct {
	// Name labels logs and metrics, e.g. "open-meteo-forecast".
	Name   string
	Method string
	URL    string
	Body   any
	// CacheKey enables caching of successful responses when non-empty.
	CacheKey string
}

// Do performs the request and returns the raw JSON body.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	if req.CacheKey != "" {
		if body, ok := c.lookup(ctx, req); ok {
			return body, nil
		}
	}

	body, err := c.fetch(ctx, req)
	if err != nil {
		metrics.IncUpstreamFailure(req.Name)
		telemetry.Error("upstream.error", map[string]any{
			"upstream": req.Name,
			"url":      req.URL,
			"error":    err,
		})
		return nil, err
	}

	if req.CacheKey != "" && c.TTL > 0 {
		if err := c.Cache.Set(ctx, req.CacheKey, body, c.TTL); err != nil {
			telemetry.Warn("upstream.cache_set_failed", map[string]any{
				"upstream": req.Name,
				"error":    err,
			})
		}
	}
	return body, nil
}

// GetJSON performs a GET and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, name, rawURL string, out any) error {
	body, err := c.Do(ctx, Request{Name: name, Method: http.MethodGet, URL: rawURL})
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func (c *Client) lookup(ctx context.Context, req Request) ([]byte, bool) {
	body, ok, err := c.Cache.Get(ctx, req.CacheKey)
	if err != nil {
		telemetry.Warn("upstream.cache_get_failed", map[string]any{
			"upstream": req.Name,
			"error":    err,
		})
		return nil, false
	}
	if ok {
		metrics.IncUpstreamCacheHit(req.Name)
	}
	return body, ok
}

func (c *Client) fetch(ctx context.Context, req Request) ([]byte, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	var reader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, reader)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if reader != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", req.Name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s read body: %w", req.Name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode, Body: truncate(strings.TrimSpace(string(body)), 256)}
	}
	if !json.Valid(body) {
		return nil, ErrInvalidJSON
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
