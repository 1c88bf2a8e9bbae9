package sessionbridge

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/apikit/pkg/cookie"
	"github.com/dmitrymomot/apikit/pkg/logger"
	"github.com/dmitrymomot/apikit/pkg/tokenstore"
)

// state is one node of the refresh-and-replay state machine. The flow is
// linear: firstAttempt -> (401) needsRefresh -> refreshInFlight ->
// replay -> terminal. A replayed request is terminal whatever its status,
// so a second refresh can never start for the same logical call.
type state string

const (
	stateFirstAttempt    state = "first_attempt"
	stateNeedsRefresh    state = "needs_refresh"
	stateRefreshInFlight state = "refresh_in_flight"
	stateReplay          state = "replay"
	stateSuccess         state = "success"
	stateFailure         state = "failure"
)

// IssueFunc performs the original API request with the given access token.
// The bridge calls it once, and exactly once more after a successful
// refresh.
type IssueFunc func(ctx context.Context, accessToken string) (*http.Response, error)

// RefreshFunc exchanges a refresh token for a new token pair by calling
// the remote refresh endpoint.
type RefreshFunc func(ctx context.Context, refreshToken string) (tokenstore.Pair, error)

// Bridge is the server-context counterpart of the client auth flow: it
// reads tokens from httpOnly cookies, performs a single coalesced
// refresh-and-replay on authentication failure, and rewrites both token
// cookies together.
type Bridge struct {
	cookies *cookie.Manager
	refresh RefreshFunc
	group   singleflight.Group
	log     *slog.Logger

	accessCookie  string
	refreshCookie string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	refreshLeeway time.Duration
}

// New creates a Bridge over a cookie manager and a refresh endpoint call.
func New(cookies *cookie.Manager, refresh RefreshFunc, opts ...Option) *Bridge {
	b := &Bridge{
		cookies:       cookies,
		refresh:       refresh,
		log:           slog.New(slog.DiscardHandler),
		accessCookie:  defaultAccessCookie,
		refreshCookie: defaultRefreshCookie,
		accessTTL:     defaultAccessTTL,
		refreshTTL:    defaultRefreshTTL,
		refreshLeeway: defaultRefreshLeeway,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Execute runs one API call through the state machine. Tokens come from
// the incoming request's cookies; refreshed tokens are written to w before
// the response body, both cookies in one step. The returned response may
// carry any status; only transport and refresh failures produce errors.
func (b *Bridge) Execute(w http.ResponseWriter, r *http.Request, issue IssueFunc) (*http.Response, error) {
	ctx := r.Context()
	access, _ := b.cookies.GetSealed(r, b.accessCookie)
	refreshToken, _ := b.cookies.GetSealed(r, b.refreshCookie)

	// Refresh ahead of the first attempt when the access token is absent
	// or about to expire; saves a guaranteed 401 round trip.
	if refreshToken != "" && b.expiringSoon(access) {
		if fresh, err := b.doRefresh(ctx, w, refreshToken); err == nil {
			access = fresh
		}
	}

	var (
		st   = stateFirstAttempt
		resp *http.Response
		err  error
	)

	for {
		switch st {
		case stateFirstAttempt:
			resp, err = issue(ctx, access)
			switch {
			case err != nil:
				st = stateFailure
			case resp.StatusCode == http.StatusUnauthorized:
				st = stateNeedsRefresh
			default:
				st = stateSuccess
			}

		case stateNeedsRefresh:
			drain(resp)
			if refreshToken == "" {
				b.clearCookies(w)
				err = ErrNoRefreshToken
				st = stateFailure
				break
			}
			st = stateRefreshInFlight

		case stateRefreshInFlight:
			access, err = b.doRefresh(ctx, w, refreshToken)
			if err != nil {
				st = stateFailure
				break
			}
			st = stateReplay

		case stateReplay:
			// One replay only; whatever it returns is terminal.
			resp, err = issue(ctx, access)
			if err != nil {
				st = stateFailure
				break
			}
			st = stateSuccess

		case stateSuccess:
			return resp, nil

		case stateFailure:
			return nil, err
		}
	}
}

// doRefresh calls the refresh endpoint, coalescing concurrent refreshes of
// the same refresh token into one round trip. Every waiter rewrites the
// cookies on its own response so all of them leave with the new pair.
func (b *Bridge) doRefresh(ctx context.Context, w http.ResponseWriter, refreshToken string) (string, error) {
	v, err, _ := b.group.Do(refreshToken, func() (any, error) {
		pair, err := b.refresh(ctx, refreshToken)
		if err != nil {
			return nil, errors.Join(ErrRefreshFailed, err)
		}
		if pair.AccessToken == "" {
			return nil, ErrRefreshFailed
		}
		if pair.RefreshToken == "" {
			// Endpoint did not rotate; keep the current refresh token.
			pair.RefreshToken = refreshToken
		}
		return pair, nil
	})
	if err != nil {
		b.log.DebugContext(ctx, "session refresh failed", logger.Error(err))
		b.clearCookies(w)
		return "", err
	}

	pair := v.(tokenstore.Pair)
	b.writeCookies(w, pair)
	return pair.AccessToken, nil
}

// writeCookies replaces both token cookies together, before any response
// body is written.
func (b *Bridge) writeCookies(w http.ResponseWriter, pair tokenstore.Pair) {
	_ = b.cookies.SetSealed(w, b.accessCookie, pair.AccessToken, cookie.WithMaxAge(int(b.accessTTL.Seconds())))
	_ = b.cookies.SetSealed(w, b.refreshCookie, pair.RefreshToken, cookie.WithMaxAge(int(b.refreshTTL.Seconds())))
}

func (b *Bridge) clearCookies(w http.ResponseWriter) {
	b.cookies.Delete(w, b.accessCookie)
	b.cookies.Delete(w, b.refreshCookie)
}

// expiringSoon peeks at the access token's exp claim without validating
// the signature; validation is the backend's job. Tokens without an exp
// claim are assumed live.
func (b *Bridge) expiringSoon(access string) bool {
	if access == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < b.refreshLeeway
}

func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	_ = resp.Body.Close()
}
