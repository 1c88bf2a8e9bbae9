package apikit

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/apikit/pkg/authguard"
	"github.com/dmitrymomot/apikit/pkg/httpx"
)

// settings collects everything New forwards into the pipeline pieces.
type settings struct {
	builderOpts  []httpx.BuilderOption
	executorOpts []httpx.ExecutorOption
	guard        *authguard.Guard
	defaults     httpx.CallOptions
	log          *slog.Logger
}

func newSettings() *settings {
	return &settings{
		defaults: httpx.CallOptions{
			Timeout:    30 * time.Second,
			RetryDelay: 300 * time.Millisecond,
		},
		log: slog.New(slog.DiscardHandler),
	}
}

// Option configures a Client.
type Option func(*settings)

// WithTenantSource wires tenant resolution into the request headers.
// *tenant.Resolver satisfies the interface.
func WithTenantSource(src httpx.TenantSource) Option {
	return func(s *settings) {
		s.builderOpts = append(s.builderOpts, httpx.WithTenantSource(src))
	}
}

// WithTokenSource wires bearer token injection into the request headers.
// *tokenstore.TokenStore satisfies the interface.
func WithTokenSource(src httpx.TokenSource) Option {
	return func(s *settings) {
		s.builderOpts = append(s.builderOpts, httpx.WithTokenSource(src))
	}
}

// WithAuthGuard installs the authentication failure guard invoked on 401
// responses.
func WithAuthGuard(guard *authguard.Guard) Option {
	return func(s *settings) { s.guard = guard }
}

// WithHTTPClient replaces the transport used by the executor.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		s.executorOpts = append(s.executorOpts, httpx.WithHTTPClient(client))
	}
}

// WithLogger enables debug logging of retries and auth failures.
func WithLogger(log *slog.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
			s.executorOpts = append(s.executorOpts, httpx.WithLogger(log))
		}
	}
}

// WithCallDefaults sets the fallback per-call options applied when a
// descriptor leaves them zero.
func WithCallDefaults(defaults httpx.CallOptions) Option {
	return func(s *settings) { s.defaults = defaults }
}
