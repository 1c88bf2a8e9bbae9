package apikit

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/apikit/pkg/authguard"
	"github.com/dmitrymomot/apikit/pkg/httpx"
)

// Client is the assembled request pipeline: build, execute with retries,
// resolve, and react to authentication failures. A Client is safe for
// concurrent use.
type Client struct {
	builder  *httpx.Builder
	executor *httpx.Executor
	guard    *authguard.Guard
	defaults httpx.CallOptions
	log      *slog.Logger
}

// New creates a Client targeting the given API base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	cfg := newSettings()
	for _, opt := range opts {
		opt(cfg)
	}

	builder, err := httpx.NewBuilder(baseURL, cfg.builderOpts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		builder:  builder,
		executor: httpx.NewExecutor(cfg.executorOpts...),
		guard:    cfg.guard,
		defaults: cfg.defaults,
		log:      cfg.log,
	}, nil
}

// Do runs one logical API call through the full pipeline. Zero-valued
// fields in the descriptor's Options fall back to the client defaults.
//
// HTTP error statuses come back as *httpx.Error; a 401 additionally
// triggers the auth guard (token clearing and a once-only login redirect)
// unless the call opts out via SkipAuthGuard. The OnAuthFailure callback,
// when set, runs on every 401 regardless.
func (c *Client) Do(ctx context.Context, d httpx.Descriptor) (*httpx.Envelope, error) {
	opts := c.mergeDefaults(d.Options)

	req, err := c.builder.Build(ctx, d)
	if err != nil {
		return nil, err
	}

	raw, err := c.executor.Do(req, opts)
	if err != nil {
		return nil, err
	}

	env, err := httpx.Resolve(raw, opts.Decode)
	if err != nil && httpx.IsAuthFailure(err) {
		c.handleAuthFailure(ctx, opts)
	}
	return env, err
}

// Get issues a GET request. Query may be nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*httpx.Envelope, error) {
	return c.Do(ctx, httpx.Descriptor{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST request with the given body variant.
func (c *Client) Post(ctx context.Context, path string, body httpx.Body) (*httpx.Envelope, error) {
	return c.Do(ctx, httpx.Descriptor{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues a PUT request with the given body variant.
func (c *Client) Put(ctx context.Context, path string, body httpx.Body) (*httpx.Envelope, error) {
	return c.Do(ctx, httpx.Descriptor{Method: http.MethodPut, Path: path, Body: body})
}

// Patch issues a PATCH request with the given body variant.
func (c *Client) Patch(ctx context.Context, path string, body httpx.Body) (*httpx.Envelope, error) {
	return c.Do(ctx, httpx.Descriptor{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*httpx.Envelope, error) {
	return c.Do(ctx, httpx.Descriptor{Method: http.MethodDelete, Path: path})
}

func (c *Client) handleAuthFailure(ctx context.Context, opts httpx.CallOptions) {
	c.log.DebugContext(ctx, "authentication failure", slog.Bool("guard_skipped", opts.SkipAuthGuard))
	switch {
	case opts.SkipAuthGuard, c.guard == nil:
		// The guard's side effects are skipped, the callback is not.
		if opts.OnAuthFailure != nil {
			opts.OnAuthFailure()
		}
	default:
		c.guard.Handle(ctx, opts.OnAuthFailure, false)
	}
}

func (c *Client) mergeDefaults(opts httpx.CallOptions) httpx.CallOptions {
	if opts.Timeout == 0 {
		opts.Timeout = c.defaults.Timeout
	}
	if opts.Retries == 0 {
		opts.Retries = c.defaults.Retries
	}
	if opts.RetryDelay == 0 {
		opts.RetryDelay = c.defaults.RetryDelay
	}
	return opts
}
