// Package httpx implements the request pipeline shared by every API call:
// building absolute requests from logical descriptors, executing them with
// composed cancellation and bounded retries, and decoding responses into
// typed envelopes or normalized errors.
//
// # Pipeline
//
// A call flows through three stages:
//
//	Descriptor --Builder--> *http.Request --Executor--> RawResponse --Resolve--> Envelope
//
// Builder resolves the path against the API base URL, encodes query
// parameters (multi-valued keys repeat, empty values are dropped), injects
// the Accept, X-Requested-With, X-Request-ID, tenant, and bearer headers
// when the caller has not set them, and serializes one of the tagged body
// variants (JSON, Text, Binary, Form, Multipart).
//
// Executor composes the caller's context with the per-call timeout, retries
// 429/503 responses and transport failures up to the configured attempt
// budget, honors Retry-After, and backs off exponentially otherwise. HTTP
// error statuses are not errors at this stage; they come back as ordinary
// responses.
//
// Resolve decodes the body (structured, text, or binary, inferred from the
// response headers unless forced) and turns non-2xx statuses into *Error
// values carrying the status, URL, a display-safe message, and the decoded
// body for diagnostics.
//
// # Errors
//
// Transport failures surface as *Error with Status zero, wrapping ErrTimeout
// for internal timeouts and ErrNetwork for everything else; use errors.Is to
// distinguish them. HTTP failures carry the status; IsAuthFailure reports
// 401s.
package httpx
