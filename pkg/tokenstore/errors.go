package tokenstore

import "errors"

var (
	// ErrNoAccessToken is returned when no access token is available.
	ErrNoAccessToken = errors.New("tokenstore: no access token")

	// ErrNoRefreshToken is returned when a refresh is requested without a refresh token.
	ErrNoRefreshToken = errors.New("tokenstore: no refresh token")

	// ErrRefreshFailed is returned when the refresh endpoint rejects the refresh token.
	ErrRefreshFailed = errors.New("tokenstore: refresh failed")
)
