package redis

import "errors"

var (
	// ErrInvalidURL indicates the connection URL could not be parsed.
	ErrInvalidURL = errors.New("redis.invalid_url")

	// ErrNotReady indicates the server did not answer a ping within the
	// configured attempts and timeout.
	ErrNotReady = errors.New("redis.not_ready")

	// ErrHealthcheckFailed indicates a readiness probe failure on an
	// established connection.
	ErrHealthcheckFailed = errors.New("redis.healthcheck_failed")
)
