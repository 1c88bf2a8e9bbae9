package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apikit/pkg/config"
)

type testConfig struct {
	Host    string        `env:"CONFIG_TEST_HOST" envDefault:"localhost"`
	Port    int           `env:"CONFIG_TEST_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"CONFIG_TEST_TIMEOUT" envDefault:"5s"`
}

type requiredConfig struct {
	Secret string `env:"CONFIG_TEST_MISSING_SECRET,required"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults when env vars are missing", func(t *testing.T) {
		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("reads values from environment", func(t *testing.T) {
		t.Setenv("CONFIG_TEST_OVERRIDE_HOST", "api.example.com")

		type overrideConfig struct {
			Host string `env:"CONFIG_TEST_OVERRIDE_HOST"`
		}

		var cfg overrideConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "api.example.com", cfg.Host)
	})

	t.Run("returns cached value on repeated load", func(t *testing.T) {
		var first testConfig
		require.NoError(t, config.Load(&first))

		// Changing the environment after the first load must not change
		// the cached result.
		t.Setenv("CONFIG_TEST_HOST", "changed.example.com")

		var second testConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first, second)
	})

	t.Run("fails on missing required variable", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("rejects nil pointer", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		assert.Panics(t, func() {
			var cfg requiredConfig
			config.MustLoad(&cfg)
		})
	})
}
