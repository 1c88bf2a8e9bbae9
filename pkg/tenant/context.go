package tenant

import "context"

type contextKey struct{}

// WithContext returns a context carrying an explicit tenant override. The
// override wins over every other resolution source.
func WithContext(ctx context.Context, slug string) context.Context {
	return context.WithValue(ctx, contextKey{}, slug)
}

// FromContext extracts the tenant override from the context, if present.
func FromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	slug, ok := ctx.Value(contextKey{}).(string)
	return slug, ok && slug != ""
}
