// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package client is the Go API client for the Harmonia dashboard backend.

It speaks the same cookie session and CSRF protocol as the browser dashboard,
or a bearer token for non-browser callers.

Behaviour:

  - Session: cookies live in a [cookiejar.Jar] shared by every request.
  - CSRF: unsafe requests carry the csrftoken cookie in X-CSRFToken; a missing
    token is fetched once no matter how many callers need it.
  - Reads: GET responses are cached per path and concurrent reads of the same
    path share one request. Mutations invalidate the affected paths.
  - Errors: non-2xx responses surface as [*APIError] with the server detail.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/harmonia/internal/platform/constants"
)

const (
	apiPrefix = "/api/v1"

	// DefaultTimeout bounds a single HTTP round trip.
	DefaultTimeout = 15 * time.Second

	// DefaultCacheTTL is how long a GET response is served from memory.
	DefaultCacheTTL = 30 * time.Second

	maxResponseBytes = 8 << 20
)

// # Client

// Client talks to one Harmonia API server. It is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
	bearer  string

	cacheTTL time.Duration
	cache    *gocache.Cache
	// generation is bumped on every invalidation so in-flight reads that
	// started before a mutation never repopulate the cache.
	generation atomic.Uint64

	csrfGroup singleflight.Group
	readGroup singleflight.Group
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is attached
// when the given client has none.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.http = httpClient }
}

// WithBearerToken authenticates with a token instead of the session cookie.
func WithBearerToken(token string) Option {
	return func(c *Client) { c.bearer = token }
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithCacheTTL sets how long GET responses are cached. Zero disables expiry.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cacheTTL = ttl }
}

// New constructs a [Client] for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("client: invalid base url %q", baseURL)
	}

	c := &Client{
		baseURL:  parsed,
		logger:   slog.Default(),
		cacheTTL: DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{Timeout: DefaultTimeout}
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("client: cookie jar: %w", err)
		}
		c.http.Jar = jar
	}

	// No janitor goroutine: expired entries are skipped on read and swept on invalidation.
	ttl := c.cacheTTL
	if ttl == 0 {
		ttl = gocache.NoExpiration
	}
	c.cache = gocache.New(ttl, 0)

	return c, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// # Transport

// flightContext detaches a shared fetch from the caller that started it, so one
// cancelled caller does not fail the others. The fetch stays bounded by the
// HTTP timeout.
func (c *Client) flightContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := c.http.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + apiPrefix + path
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

// do sends one request and returns the raw body of a 2xx response.
// A CSRF rejection drops the token and retries once with a fresh one.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("client: encode %s %s: %w", method, path, err)
		}
		payload = encoded
	}

	raw, err := c.send(ctx, method, path, payload)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Code == "CSRF_FAILED" {
		c.logger.DebugContext(ctx, "csrf_token_rejected", slog.String("path", path))
		c.dropCSRFToken()
		return c.send(ctx, method, path, payload)
	}
	return raw, err
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return nil, fmt.Errorf("client: build %s %s: %w", method, path, err)
	}
	request.Header.Set("Accept", "application/json")
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	if c.bearer != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+c.bearer)
	} else if !isSafeMethod(method) {
		token, err := c.EnsureCSRFToken(ctx)
		if err != nil {
			return nil, err
		}
		request.Header.Set(constants.HeaderXCSRFToken, token)
	}

	response, err := c.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("client: read %s %s: %w", method, path, err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, decodeError(response.StatusCode, raw)
	}
	return raw, nil
}

// # Envelopes

type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta json.RawMessage `json:"meta"`
}

// decodeInto unpacks {"data": ..., "meta": ...} into data and meta. Either may be nil.
func decodeInto(raw []byte, data, meta any) error {
	if len(raw) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("client: decode envelope: %w", err)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			return fmt.Errorf("client: decode data: %w", err)
		}
	}
	if meta != nil && len(env.Meta) > 0 {
		if err := json.Unmarshal(env.Meta, meta); err != nil {
			return fmt.Errorf("client: decode meta: %w", err)
		}
	}
	return nil
}

// # Request Helpers

// get reads a cached resource.
func (c *Client) get(ctx context.Context, path string, data any) error {
	return c.getWithMeta(ctx, path, data, nil)
}

func (c *Client) getWithMeta(ctx context.Context, path string, data, meta any) error {
	raw, err := c.cachedGet(ctx, path)
	if err != nil {
		return err
	}
	return decodeInto(raw, data, meta)
}

// mutate sends an unsafe request and, once it succeeds, invalidates every
// cached path under the given prefixes.
func (c *Client) mutate(ctx context.Context, method, path string, body, data any, invalidates ...string) error {
	raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if len(invalidates) > 0 {
		c.Invalidate(invalidates...)
	}
	return decodeInto(raw, data, nil)
}
