package sessionbridge

import (
	"context"
	"net/http"
)

type contextKey struct{}

// Middleware returns standard net/http middleware (chi-compatible) that
// extracts the access token from the session cookies, refreshing it first
// when it is missing or about to expire, and stores it in the request
// context for handlers to pick up via AccessFromContext.
func (b *Bridge) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			access, _ := b.cookies.GetSealed(r, b.accessCookie)
			refreshToken, _ := b.cookies.GetSealed(r, b.refreshCookie)

			if refreshToken != "" && b.expiringSoon(access) {
				if fresh, err := b.doRefresh(r.Context(), w, refreshToken); err == nil {
					access = fresh
				}
			}

			if access != "" {
				r = r.WithContext(context.WithValue(r.Context(), contextKey{}, access))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AccessFromContext returns the access token placed by Middleware,
// or false when the request carried no live session.
func AccessFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(contextKey{}).(string)
	return token, ok && token != ""
}
