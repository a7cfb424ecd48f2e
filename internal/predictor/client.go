// Package predictor provides an HTTP client for the contest rating prediction
// API and its data models.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is the public prediction API.
const DefaultBaseURL = "https://lccn.lbao.site/api/v1"

// RequestIDHeader carries a unique id for every outgoing request.
const RequestIDHeader = "X-Request-Id"

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 16 << 20
)

// Client is a prediction API client.
type Client struct {
	baseURL        *url.URL
	displayBaseURL string
	http           *http.Client
	cache          Cache
	logger         *slog.Logger
	newID          func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithCache enables read-through response caching.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewClient creates a new client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("parse api url: unsupported scheme %q", parsed.Scheme)
	}

	c := &Client{
		baseURL:        parsed,
		displayBaseURL: sanitizeURL(parsed),
		http:           &http.Client{Timeout: defaultTimeout},
		logger:         slog.New(slog.DiscardHandler),
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// DisplayBaseURL returns the API base URL with credentials removed.
func (c *Client) DisplayBaseURL() string {
	return c.displayBaseURL
}

// Close releases the cache connection, if any.
func (c *Client) Close() error {
	if closer, ok := c.cache.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func sanitizeURL(u *url.URL) string {
	clean := *u
	clean.User = nil
	return clean.String()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	return c.do(ctx, http.MethodGet, c.endpoint(path, query), nil, dest)
}

func (c *Client) post(ctx context.Context, path string, payload, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, c.endpoint(path, nil), body, dest)
}

func (c *Client) do(ctx context.Context, method, target string, body []byte, dest any) error {
	key := cacheKey(method, target, body)
	if data, ok := c.cacheGet(ctx, key); ok {
		if err := json.Unmarshal(data, dest); err == nil {
			return nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable cache entry", "key", key)
	}

	data, err := c.roundTrip(ctx, method, target, body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, target, err)
	}
	c.cacheSet(ctx, key, data)
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, target string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	id := c.newID()
	req.Header.Set(RequestIDHeader, id)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "api request failed",
			"method", method, "url", target, "request_id", id, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.logger.DebugContext(ctx, "api request",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"request_id", id,
		"duration", time.Since(start),
	)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, target, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Method:     method,
			URL:        target,
			Detail:     errorDetail(data),
		}
	}
	return data, nil
}

func (c *Client) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "cache get failed", "key", key, "error", err)
		return nil, false
	}
	return data, ok
}

func (c *Client) cacheSet(ctx context.Context, key string, data []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, data); err != nil {
		c.logger.WarnContext(ctx, "cache set failed", "key", key, "error", err)
	}
}

// ErrNotFound is returned when the API responds with 404.
var ErrNotFound = errors.New("not found")

// StatusError describes a non-2xx API response.
type StatusError struct {
	StatusCode int
	Method     string
	URL        string
	Detail     string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is reports 404 responses as ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// errorDetail extracts the "detail" field FastAPI-style services return.
func errorDetail(data []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return text
	}
	return string(payload.Detail)
}
