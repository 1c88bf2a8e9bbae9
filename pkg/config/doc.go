// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Each configuration type is parsed at most once per process and cached, so
// independent packages can load their own Config structs without worrying
// about duplicated parsing or divergent values.
//
// # Usage
//
//	import "github.com/dmitrymomot/apikit/pkg/config"
//
//	type ClientConfig struct {
//		BaseURL    string        `env:"API_BASE_URL,required"`
//		Timeout    time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
//		Retries    int           `env:"API_RETRIES" envDefault:"2"`
//	}
//
//	var cfg ClientConfig
//	config.MustLoad(&cfg)
//
// Parsing is delegated to github.com/caarlos0/env; see its documentation for
// the full tag syntax (required, envDefault, custom separators, etc.).
package config
