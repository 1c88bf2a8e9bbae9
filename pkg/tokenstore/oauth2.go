package tokenstore

import (
	"context"

	"golang.org/x/oauth2"
)

// TokenSource adapts the store to oauth2.TokenSource so oauth2-aware SDKs
// can draw their bearer token from the same source of truth as the rest of
// the application.
func (ts *TokenStore) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, store: ts}
}

// SetFromToken installs an oauth2 token obtained from a login flow.
func (ts *TokenStore) SetFromToken(ctx context.Context, tok *oauth2.Token, user *User) {
	if tok == nil {
		return
	}
	ts.Set(ctx, tok.AccessToken, tok.RefreshToken, user)
}

type tokenSource struct {
	ctx   context.Context
	store *TokenStore
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	access, ok := s.store.Access(s.ctx)
	if !ok {
		return nil, ErrNoAccessToken
	}
	return &oauth2.Token{AccessToken: access, TokenType: "Bearer"}, nil
}
