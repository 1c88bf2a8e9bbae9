// Package sessionbridge carries the token refresh-and-replay flow into
// server-rendered request handling, where tokens live in sealed httpOnly
// cookies instead of a client-side store.
//
// A Bridge runs one upstream API call through a small linear state
// machine: attempt, refresh on 401, replay exactly once. Concurrent
// requests holding the same refresh token share a single refresh round
// trip, and each response gets both rewritten token cookies before any
// body bytes.
//
// # Usage
//
//	bridge := sessionbridge.New(cookies, callRefreshEndpoint)
//
//	r.Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
//		resp, err := bridge.Execute(w, r, func(ctx context.Context, token string) (*http.Response, error) {
//			req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"/dashboard", nil)
//			req.Header.Set("Authorization", "Bearer "+token)
//			return http.DefaultClient.Do(req)
//		})
//		// ...
//	})
//
// For routes that only need the current access token, Middleware
// refreshes it proactively and exposes it through AccessFromContext.
package sessionbridge
