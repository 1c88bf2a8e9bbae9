package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request correlation identifier.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Tenant records the tenant slug a request belongs to.
func Tenant(slug string) slog.Attr {
	if slug == "" {
		return slog.Attr{}
	}
	return slog.String("tenant", slug)
}

// Status records an HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// Attempt records a 1-based retry attempt number.
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

// URL records the target URL of an outgoing request.
func URL(u string) slog.Attr {
	if u == "" {
		return slog.Attr{}
	}
	return slog.String("url", u)
}
