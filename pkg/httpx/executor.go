package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/apikit/pkg/logger"
)

const defaultRetryDelay = 300 * time.Millisecond

// retryableStatuses are the HTTP statuses worth re-attempting: rate limits
// and temporary unavailability.
var retryableStatuses = map[int]struct{}{
	http.StatusTooManyRequests:    {},
	http.StatusServiceUnavailable: {},
}

// RawResponse is a fully-read response. The executor drains and closes the
// network body so retries and response resolution never deal with streams.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	URL        string
}

// Executor sends built requests with composed cancellation and a bounded
// retry/backoff loop. HTTP-level error statuses are returned as ordinary
// responses; only transport-level failures produce errors.
type Executor struct {
	client *http.Client
	log    *slog.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) ExecutorOption {
	return func(e *Executor) {
		if client != nil {
			e.client = client
		}
	}
}

// WithLogger enables debug logging of retries and failures.
func WithLogger(log *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		if log != nil {
			e.log = log
		}
	}
}

// NewExecutor creates an Executor over http.DefaultClient unless overridden.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		client: http.DefaultClient,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Do executes the request. Cancellation is the logical OR of the request's
// own context and the per-call timeout; whichever fires first terminates
// the in-flight attempt. The timeout timer is disarmed once the call
// settles.
//
// The attempt loop runs at most opts.Retries+1 times. A response with a
// non-retryable status ends the loop immediately; a retryable one waits for
// the Retry-After header when present, otherwise for an exponentially
// growing delay, before the next attempt. Attempts are strictly sequential.
func (e *Executor) Do(req *http.Request, opts CallOptions) (*RawResponse, error) {
	ctx := req.Context()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, opts.Timeout, ErrTimeout)
		defer cancel()
	}

	attempts := opts.Retries + 1
	if attempts < 1 {
		attempts = 1
	}
	baseDelay := opts.RetryDelay
	if baseDelay <= 0 {
		baseDelay = defaultRetryDelay
	}

	reqURL := req.URL.String()
	var lastErr error

	for attempt := range attempts {
		attemptReq, err := cloneRequest(req, ctx)
		if err != nil {
			return nil, &Error{URL: reqURL, Message: "request body is not replayable", err: err}
		}

		resp, err := e.client.Do(attemptReq)
		if err != nil {
			lastErr = err
			if attempt == attempts-1 {
				break
			}
			e.log.DebugContext(ctx, "retrying after transport failure",
				logger.URL(reqURL), logger.Attempt(attempt+1), logger.Error(err))
			if err := sleep(ctx, backoffDelay(baseDelay, attempt)); err != nil {
				return nil, e.classify(ctx, reqURL, err)
			}
			continue
		}

		if _, retryable := retryableStatuses[resp.StatusCode]; !retryable || attempt == attempts-1 {
			return readResponse(resp, reqURL)
		}

		delay, ok := retryAfter(resp.Header)
		if !ok {
			delay = backoffDelay(baseDelay, attempt)
		}
		e.log.DebugContext(ctx, "retrying after retryable status",
			logger.URL(reqURL), logger.Status(resp.StatusCode), logger.Attempt(attempt+1))

		drain(resp)
		if err := sleep(ctx, delay); err != nil {
			return nil, e.classify(ctx, reqURL, err)
		}
	}

	return nil, e.classify(ctx, reqURL, lastErr)
}

// classify distinguishes the internal timeout from caller cancellation and
// from any other transport failure, by inspecting the cancellation cause.
func (e *Executor) classify(ctx context.Context, reqURL string, err error) error {
	switch {
	case errors.Is(context.Cause(ctx), ErrTimeout):
		return &Error{URL: reqURL, Message: "request timed out", err: ErrTimeout}
	case ctx.Err() != nil:
		// Caller-initiated cancellation or the caller's own deadline.
		return &Error{URL: reqURL, Message: "request canceled", err: context.Cause(ctx)}
	default:
		return &Error{URL: reqURL, Message: "network failure", err: errors.Join(ErrNetwork, err)}
	}
}

// cloneRequest produces a fresh request for one attempt, rewinding the body
// via GetBody so retries re-send identical payloads.
func cloneRequest(req *http.Request, ctx context.Context) (*http.Request, error) {
	clone := req.Clone(ctx)
	if req.Body == nil || req.GetBody == nil {
		return clone, nil
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	clone.Body = body
	return clone, nil
}

func readResponse(resp *http.Response, reqURL string) (*RawResponse, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: reqURL, Message: "failed to read response body", err: errors.Join(ErrNetwork, err)}
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		URL:        reqURL,
	}, nil
}

// retryAfter parses the Retry-After header as either delay seconds or an
// HTTP date, clamped to zero when the date is already past.
func retryAfter(h http.Header) (time.Duration, bool) {
	value := h.Get("Retry-After")
	if value == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			secs = 0
		}
		return time.Duration(secs) * time.Second, true
	}
	if at, err := http.ParseTime(value); err == nil {
		return max(time.Until(at), 0), true
	}
	return 0, false
}

func backoffDelay(base time.Duration, attempt int) time.Duration {
	return base * (1 << attempt)
}

// sleep waits for the delay or the composed cancellation, whichever comes
// first. The timer never outlives the call.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// drain discards a retryable response so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	_ = resp.Body.Close()
}
