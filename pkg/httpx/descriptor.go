package httpx

import (
	"net/http"
	"net/url"
	"time"
)

// Descriptor is the logical description of one API call. It is consumed by
// Builder.Build and never mutated afterwards.
type Descriptor struct {
	// Method defaults to GET when empty.
	Method string

	// Path is resolved against the builder's base URL, unless it is
	// already an absolute URL, in which case it is used as the full
	// target.
	Path string

	// Header carries caller-set headers. Headers the pipeline would
	// inject (Accept, tenant, authorization) are only set when the
	// caller has not set them here.
	Header http.Header

	// Query parameters to append to the URL. A multi-valued key is
	// encoded once per non-empty element under the same key; empty
	// values and elements are dropped entirely.
	Query url.Values

	// Body is one of the tagged variants constructed with JSON, Text,
	// Binary, Form, or Multipart. Nil means no body.
	Body Body

	// Options tunes this single call.
	Options CallOptions
}

// CallOptions are the per-call knobs of the request pipeline.
type CallOptions struct {
	// Timeout bounds the whole call including retries. Zero disables
	// the internal timeout; the caller's context still applies.
	Timeout time.Duration

	// Retries is the number of re-attempts after the first try for
	// retryable statuses and transport failures.
	Retries int

	// RetryDelay is the base backoff delay, doubled on every attempt.
	// Zero uses the executor default.
	RetryDelay time.Duration

	// Decode forces a response decoding kind instead of inferring one
	// from the response headers.
	Decode DecodeKind

	// SkipAuthGuard suppresses the 401 side effects (token clearing and
	// login redirect) for this call.
	SkipAuthGuard bool

	// OnAuthFailure is invoked on a 401 before any redirect logic, even
	// when SkipAuthGuard is set.
	OnAuthFailure func()
}
