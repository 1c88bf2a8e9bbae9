package tokenstore

import "context"

// Store is the persistent key-value backend behind a TokenStore. A missing
// key yields ("", nil), not an error. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
