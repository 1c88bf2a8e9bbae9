// Package tokenstore holds the current access/refresh token pair and the
// user profile snapshot attached to it.
//
// The store keeps an in-memory copy for fast reads and mirrors every change
// into an injectable persistent backend (in-memory by default, Redis for
// multi-process deployments). Both copies are replaced under one lock, so a
// process restart and an in-memory read always agree on the credentials.
//
// # Ownership
//
// Only the login, refresh, and logout flows write to the store:
//
//	store := tokenstore.New(tokenstore.WithStore(tokenstore.NewRedisStore(client)))
//
//	// login flow
//	store.Set(ctx, resp.AccessToken, resp.RefreshToken, &tokenstore.User{ID: resp.UserID})
//
//	// request pipeline
//	if access, ok := store.Access(ctx); ok {
//		req.Header.Set("Authorization", "Bearer "+access)
//	}
//
//	// logout flow
//	store.Clear(ctx)
//
// # Refresh coalescing
//
// Refresher wraps the refresh endpoint with a singleflight group: when
// several in-flight calls hit 401 at once, exactly one refresh round trip
// happens and all callers share its outcome.
//
//	refresher := tokenstore.NewRefresher(store, callRefreshEndpoint)
//	access, err := refresher.Refresh(ctx)
//
// # Interop
//
// TokenSource adapts the store to oauth2.TokenSource for SDKs built on
// golang.org/x/oauth2.
package tokenstore
