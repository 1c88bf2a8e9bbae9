package apikit

import (
	"time"

	"github.com/dmitrymomot/apikit/pkg/httpx"
)

// Config holds client settings loaded from the environment via pkg/config.
type Config struct {
	BaseURL    string        `env:"API_BASE_URL,required"`
	Timeout    time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	Retries    int           `env:"API_RETRIES" envDefault:"2"`
	RetryDelay time.Duration `env:"API_RETRY_DELAY" envDefault:"300ms"`
}

// NewFromConfig creates a Client from environment configuration. Options
// passed here are applied after the config values and win.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	base := []Option{
		WithCallDefaults(httpx.CallOptions{
			Timeout:    cfg.Timeout,
			Retries:    cfg.Retries,
			RetryDelay: cfg.RetryDelay,
		}),
	}
	return New(cfg.BaseURL, append(base, opts...)...)
}
