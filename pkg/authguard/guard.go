package authguard

import (
	"context"
	"net/url"
	"sync/atomic"
)

const defaultLoginPath = "/login"

// TokenClearer destroys stored credentials on an authentication failure.
// *tokenstore.TokenStore satisfies this.
type TokenClearer interface {
	Clear(ctx context.Context)
}

// Navigator performs the redirect to the login destination. In a browser
// context this maps to a location change; tests inject a recorder.
type Navigator interface {
	Redirect(target string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(target string)

func (f NavigatorFunc) Redirect(target string) { f(target) }

// Locator reports the current location, used to compute the return path
// the login page sends the user back to.
type Locator interface {
	Location() *url.URL
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func() *url.URL

func (f LocatorFunc) Location() *url.URL { return f() }

// Guard reacts to authentication failures: it clears the token store and
// redirects to the login page at most once per Guard lifetime, so a burst
// of concurrently failing calls produces exactly one redirect.
type Guard struct {
	tokens     TokenClearer
	nav        Navigator
	loc        Locator
	loginPath  string
	redirected atomic.Bool
}

// Option configures a Guard.
type Option func(*Guard)

// WithTokenClearer wires the token store to clear on failure.
func WithTokenClearer(tc TokenClearer) Option {
	return func(g *Guard) { g.tokens = tc }
}

// WithNavigator sets the redirect sink.
func WithNavigator(nav Navigator) Option {
	return func(g *Guard) { g.nav = nav }
}

// WithLocator sets the source of the current location.
func WithLocator(loc Locator) Option {
	return func(g *Guard) { g.loc = loc }
}

// WithLoginPath overrides the login destination (default "/login").
func WithLoginPath(path string) Option {
	return func(g *Guard) {
		if path != "" {
			g.loginPath = path
		}
	}
}

// New creates a Guard. Without a Navigator the guard still clears tokens
// and runs callbacks but performs no redirect.
func New(opts ...Option) *Guard {
	g := &Guard{loginPath: defaultLoginPath}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Handle processes one authentication failure. The token store is cleared
// and onFailure runs unconditionally, before any redirect logic and even
// when the redirect is suppressed. The redirect itself happens at most
// once per Guard lifetime.
func (g *Guard) Handle(ctx context.Context, onFailure func(), suppressRedirect bool) {
	if g.tokens != nil {
		g.tokens.Clear(ctx)
	}
	if onFailure != nil {
		onFailure()
	}
	if suppressRedirect || g.nav == nil {
		return
	}
	if !g.redirected.CompareAndSwap(false, true) {
		return
	}
	g.nav.Redirect(g.loginTarget())
}

// Reset re-arms the redirect guard. Intended for tests; a real page
// session constructs a fresh Guard instead.
func (g *Guard) Reset() {
	g.redirected.Store(false)
}

// loginTarget builds the login URL carrying the current path and query as
// the "next" parameter.
func (g *Guard) loginTarget() string {
	next := "/"
	if g.loc != nil {
		if u := g.loc.Location(); u != nil {
			next = u.EscapedPath()
			if next == "" {
				next = "/"
			}
			if u.RawQuery != "" {
				next += "?" + u.RawQuery
			}
		}
	}

	q := url.Values{"next": {next}}
	return g.loginPath + "?" + q.Encode()
}
