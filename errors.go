package apikit

import "github.com/dmitrymomot/apikit/pkg/httpx"

// Re-exported transport sentinels so callers matching failure classes do
// not need to import pkg/httpx directly.
var (
	ErrTimeout = httpx.ErrTimeout
	ErrNetwork = httpx.ErrNetwork
)
