package sessionbridge

import "errors"

var (
	// ErrNoRefreshToken indicates the request carried no usable refresh
	// cookie, so a 401 cannot be recovered from.
	ErrNoRefreshToken = errors.New("sessionbridge.no_refresh_token")

	// ErrRefreshFailed indicates the refresh endpoint rejected the
	// refresh token or returned an unusable pair.
	ErrRefreshFailed = errors.New("sessionbridge.refresh_failed")
)
