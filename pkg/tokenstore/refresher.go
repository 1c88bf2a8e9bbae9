package tokenstore

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"
)

// RefreshFunc exchanges a refresh token for a new token pair by calling the
// remote refresh endpoint. Returning an empty RefreshToken keeps the old
// one (no rotation).
type RefreshFunc func(ctx context.Context, refreshToken string) (Pair, error)

// Refresher coalesces concurrent refresh attempts into a single in-flight
// call. When N requests fail with 401 at the same time, the first one
// triggers the refresh endpoint and the rest wait for its result instead of
// racing their own refreshes.
type Refresher struct {
	store *TokenStore
	fn    RefreshFunc
	group singleflight.Group
}

// NewRefresher creates a Refresher bound to a store and a refresh endpoint
// call.
func NewRefresher(store *TokenStore, fn RefreshFunc) *Refresher {
	return &Refresher{store: store, fn: fn}
}

// Refresh mints a new access token and installs it in the store, returning
// the new token. A failed refresh clears the store: the refresh token is
// the last line of authentication, so once it is rejected the credentials
// are gone.
func (r *Refresher) Refresh(ctx context.Context) (string, error) {
	v, err, _ := r.group.Do("refresh", func() (any, error) {
		refresh, ok := r.store.RefreshToken(ctx)
		if !ok {
			return nil, ErrNoRefreshToken
		}

		pair, err := r.fn(ctx, refresh)
		if err != nil {
			r.store.Clear(ctx)
			return nil, errors.Join(ErrRefreshFailed, err)
		}
		if pair.AccessToken == "" {
			r.store.Clear(ctx)
			return nil, ErrRefreshFailed
		}
		if pair.RefreshToken == "" {
			pair.RefreshToken = refresh
		}

		r.store.Set(ctx, pair.AccessToken, pair.RefreshToken, pair.User)
		return pair.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
