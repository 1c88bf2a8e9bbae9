package sessionbridge

import (
	"time"

	"github.com/dmitrymomot/apikit/pkg/cookie"
)

// Config holds session bridge settings loaded from the environment.
type Config struct {
	AccessCookieName  string        `env:"SESSION_ACCESS_COOKIE" envDefault:"access_token"`
	RefreshCookieName string        `env:"SESSION_REFRESH_COOKIE" envDefault:"refresh_token"`
	AccessTTL         time.Duration `env:"SESSION_ACCESS_TTL" envDefault:"15m"`
	RefreshTTL        time.Duration `env:"SESSION_REFRESH_TTL" envDefault:"168h"`
	RefreshLeeway     time.Duration `env:"SESSION_REFRESH_LEEWAY" envDefault:"30s"`
}

// NewFromConfig creates a Bridge from environment configuration.
// Options passed here are applied after the config values and win.
func NewFromConfig(cfg Config, cookies *cookie.Manager, refresh RefreshFunc, opts ...Option) *Bridge {
	base := []Option{
		WithCookieNames(cfg.AccessCookieName, cfg.RefreshCookieName),
		WithAccessTTL(cfg.AccessTTL),
		WithRefreshTTL(cfg.RefreshTTL),
		WithRefreshLeeway(cfg.RefreshLeeway),
	}
	return New(cookies, refresh, append(base, opts...)...)
}
