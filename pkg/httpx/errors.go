package httpx

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout marks a call terminated by the per-call timeout before a
	// response arrived.
	ErrTimeout = errors.New("httpx: request timed out")

	// ErrNetwork marks a transport-level failure before any response.
	ErrNetwork = errors.New("httpx: network failure")
)

// maxMessageLength bounds user-visible messages; full bodies stay on the
// error for diagnostics.
const maxMessageLength = 200

// Error is the normalized error surfaced to callers for both HTTP-level and
// transport-level failures. Status is zero when no response was received
// (network failure, timeout, cancellation).
type Error struct {
	Status  int
	URL     string
	Message string
	Body    any // decoded response body, nil for transport failures

	err error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("httpx: %s (status %d, url %s)", e.Message, e.Status, e.URL)
	}
	return fmt.Sprintf("httpx: %s (url %s)", e.Message, e.URL)
}

func (e *Error) Unwrap() error {
	return e.err
}

// AsError extracts an *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an HTTP-level failure with the given
// status code.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == status
}

// IsAuthFailure reports whether err is an HTTP 401.
func IsAuthFailure(err error) bool {
	return IsStatus(err, 401)
}

// truncate shortens a message for direct display.
func truncate(s string) string {
	if len(s) <= maxMessageLength {
		return s
	}
	return s[:maxMessageLength-1] + "…"
}
