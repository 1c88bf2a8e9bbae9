package sessionbridge

import (
	"log/slog"
	"time"
)

const (
	defaultAccessCookie  = "access_token"
	defaultRefreshCookie = "refresh_token"
	defaultAccessTTL     = 15 * time.Minute
	defaultRefreshTTL    = 7 * 24 * time.Hour
	defaultRefreshLeeway = 30 * time.Second
)

// Option configures a Bridge.
type Option func(*Bridge)

// WithCookieNames overrides the access and refresh cookie names.
func WithCookieNames(access, refresh string) Option {
	return func(b *Bridge) {
		if access != "" {
			b.accessCookie = access
		}
		if refresh != "" {
			b.refreshCookie = refresh
		}
	}
}

// WithAccessTTL sets the access token cookie lifetime.
func WithAccessTTL(ttl time.Duration) Option {
	return func(b *Bridge) {
		if ttl > 0 {
			b.accessTTL = ttl
		}
	}
}

// WithRefreshTTL sets the refresh token cookie lifetime.
func WithRefreshTTL(ttl time.Duration) Option {
	return func(b *Bridge) {
		if ttl > 0 {
			b.refreshTTL = ttl
		}
	}
}

// WithRefreshLeeway sets how long before expiry an access token is
// refreshed proactively.
func WithRefreshLeeway(leeway time.Duration) Option {
	return func(b *Bridge) {
		if leeway > 0 {
			b.refreshLeeway = leeway
		}
	}
}

// WithLogger sets the logger used for refresh diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(b *Bridge) {
		if log != nil {
			b.log = log
		}
	}
}
