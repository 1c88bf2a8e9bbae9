package tokenstore

import (
	"context"
	"encoding/json"
	"sync"
)

// defaultStoreKey is the persistent key the token record lives under.
const defaultStoreKey = "apikit:tokens"

// User is the profile snapshot attached to a token pair at login time.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Pair is an access/refresh token pair with its user snapshot. The pair is
// owned exclusively by TokenStore; it is created on login or refresh,
// replaced on refresh, and destroyed on logout or unrecoverable auth
// failure.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user,omitempty"`
}

// TokenStore is the single source of truth for the current credentials. It
// keeps an in-memory copy and mirrors every change into a persistent Store
// under one key, so both copies are always replaced together and a process
// restart observes the same pair an in-memory read would.
//
// Only the login, refresh, and logout flows may call Set and Clear; every
// other component reads through Access.
type TokenStore struct {
	mu       sync.RWMutex
	pair     *Pair
	hydrated bool // persistent copy consulted at least once

	store Store
	key   string
}

// Option configures a TokenStore.
type Option func(*TokenStore)

// WithStore sets the persistence backend. Defaults to an in-memory store.
func WithStore(s Store) Option {
	return func(ts *TokenStore) {
		if s != nil {
			ts.store = s
		}
	}
}

// WithStoreKey overrides the persistent key the token record lives under,
// e.g. to namespace several stores in one Redis database.
func WithStoreKey(key string) Option {
	return func(ts *TokenStore) {
		if key != "" {
			ts.key = key
		}
	}
}

// New creates a TokenStore backed by an in-memory store unless WithStore
// overrides it.
func New(opts ...Option) *TokenStore {
	ts := &TokenStore{
		store: NewMemoryStore(),
		key:   defaultStoreKey,
	}
	for _, opt := range opts {
		opt(ts)
	}
	return ts
}

// Set replaces the current token pair. The in-memory copy and the
// persistent copy are written under one lock so no reader observes a
// partially updated pair. Persistence failures are swallowed; the
// in-memory value still changes.
func (ts *TokenStore) Set(ctx context.Context, access, refresh string, user *User) {
	pair := &Pair{AccessToken: access, RefreshToken: refresh, User: user}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.pair = pair
	ts.hydrated = true

	if data, err := json.Marshal(pair); err == nil {
		_ = ts.store.Set(ctx, ts.key, string(data))
	}
}

// Clear destroys the current pair in memory and in the persistent store.
func (ts *TokenStore) Clear(ctx context.Context) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.pair = nil
	ts.hydrated = true
	_ = ts.store.Delete(ctx, ts.key)
}

// Access returns the current access token. The in-memory copy is preferred;
// a freshly started process falls through to the persistent store once and
// caches whatever it finds.
func (ts *TokenStore) Access(ctx context.Context) (string, bool) {
	pair, ok := ts.current(ctx)
	if !ok || pair.AccessToken == "" {
		return "", false
	}
	return pair.AccessToken, true
}

// RefreshToken returns the current refresh token, if any.
func (ts *TokenStore) RefreshToken(ctx context.Context) (string, bool) {
	pair, ok := ts.current(ctx)
	if !ok || pair.RefreshToken == "" {
		return "", false
	}
	return pair.RefreshToken, true
}

// User returns the profile snapshot captured with the current pair.
func (ts *TokenStore) User(ctx context.Context) (*User, bool) {
	pair, ok := ts.current(ctx)
	if !ok || pair.User == nil {
		return nil, false
	}
	u := *pair.User
	return &u, true
}

func (ts *TokenStore) current(ctx context.Context) (*Pair, bool) {
	ts.mu.RLock()
	pair, hydrated := ts.pair, ts.hydrated
	ts.mu.RUnlock()

	if pair != nil {
		return pair, true
	}
	if hydrated {
		return nil, false
	}
	return ts.hydrate(ctx)
}

// hydrate loads the persisted record into memory. Runs at most once per
// store lifetime; a failed or empty load still marks the store hydrated so
// cleared credentials stay cleared.
func (ts *TokenStore) hydrate(ctx context.Context) (*Pair, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.pair != nil {
		return ts.pair, true
	}
	if ts.hydrated {
		return nil, false
	}
	ts.hydrated = true

	raw, err := ts.store.Get(ctx, ts.key)
	if err != nil || raw == "" {
		return nil, false
	}

	var pair Pair
	if err := json.Unmarshal([]byte(raw), &pair); err != nil {
		return nil, false
	}

	ts.pair = &pair
	return ts.pair, true
}
