package httpx

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// DecodeKind selects how a response body is decoded.
type DecodeKind string

const (
	// KindAuto infers the kind from the response headers.
	KindAuto DecodeKind = ""
	// KindJSON decodes the body as a structured JSON value.
	KindJSON DecodeKind = "json"
	// KindText keeps the body as plain text.
	KindText DecodeKind = "text"
	// KindBinary keeps the raw bytes, e.g. for file downloads.
	KindBinary DecodeKind = "binary"
	// KindNone marks an intentionally empty body (204/205).
	KindNone DecodeKind = "none"
)

// binaryContentTypes mark payloads that must stay raw bytes: downloads,
// spreadsheets, archives, documents.
var binaryContentTypes = []string{
	"application/octet-stream",
	"application/pdf",
	"application/zip",
	"application/gzip",
	"application/x-tar",
	"application/msword",
	"application/vnd.",
	"image/",
	"audio/",
	"video/",
}

// Envelope is the decoded form of one response. It lives only for the
// duration of the call that produced it.
type Envelope struct {
	StatusCode int
	Header     http.Header
	Kind       DecodeKind

	// Value is the decoded JSON value when Kind is KindJSON.
	Value any
	// Raw is the body exactly as received.
	Raw []byte
}

// Text returns the body as plain text.
func (e *Envelope) Text() string {
	return string(e.Raw)
}

// Bytes returns the raw body bytes.
func (e *Envelope) Bytes() []byte {
	return e.Raw
}

// Decode unmarshals the raw body into a typed destination.
func (e *Envelope) Decode(v any) error {
	if len(e.Raw) == 0 {
		return fmt.Errorf("httpx: empty response body")
	}
	return json.Unmarshal(e.Raw, v)
}

// Resolve decodes a raw response into an envelope, or normalizes a
// non-success status into an *Error. Resolution is pure: resolving the
// same raw response twice yields identical envelopes.
func Resolve(raw *RawResponse, forced DecodeKind) (*Envelope, error) {
	env := &Envelope{
		StatusCode: raw.StatusCode,
		Header:     raw.Header,
		Raw:        raw.Body,
	}

	switch {
	case raw.StatusCode == http.StatusNoContent || raw.StatusCode == http.StatusResetContent || raw.StatusCode == http.StatusNotModified:
		env.Kind = KindNone
	case forced != KindAuto:
		env.Kind = forced
	default:
		env.Kind = inferKind(raw.Header)
	}

	if env.Kind == KindJSON {
		var value any
		if err := json.Unmarshal(raw.Body, &value); err != nil {
			// Declared structured content that does not parse is
			// recovered locally as plain text, not failed.
			env.Kind = KindText
		} else {
			env.Value = value
		}
	}

	// 304 answers a conditional request; it carries no body but is not a
	// failure.
	if (raw.StatusCode >= 200 && raw.StatusCode < 300) || raw.StatusCode == http.StatusNotModified {
		return env, nil
	}

	return nil, &Error{
		Status:  raw.StatusCode,
		URL:     raw.URL,
		Message: errorMessage(env),
		Body:    decodedBody(env),
	}
}

// inferKind picks a decoding strategy from the response headers: attachment
// dispositions and binary content types select binary, JSON-ish content
// types select structured decoding, anything else is text.
func inferKind(h http.Header) DecodeKind {
	if cd := h.Get("Content-Disposition"); strings.Contains(strings.ToLower(cd), "attachment") {
		return KindBinary
	}

	ct := h.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
	}

	if strings.Contains(mediaType, "json") {
		return KindJSON
	}
	for _, prefix := range binaryContentTypes {
		if strings.HasPrefix(mediaType, prefix) {
			return KindBinary
		}
	}
	return KindText
}

// errorMessage extracts a human-readable message from an error response
// body: `message`, then `error`, then `errors[0].message`, falling back to
// a generic status string. Oversized payloads get a friendly remap instead
// of echoing server internals.
func errorMessage(env *Envelope) string {
	if env.StatusCode == http.StatusRequestEntityTooLarge {
		return "uploaded payload is too large"
	}

	if obj, ok := env.Value.(map[string]any); ok {
		if msg, ok := obj["message"].(string); ok && msg != "" {
			return truncate(msg)
		}
		if msg, ok := obj["error"].(string); ok && msg != "" {
			return truncate(msg)
		}
		if list, ok := obj["errors"].([]any); ok && len(list) > 0 {
			if first, ok := list[0].(map[string]any); ok {
				if msg, ok := first["message"].(string); ok && msg != "" {
					return truncate(msg)
				}
			}
		}
	}

	return fmt.Sprintf("HTTP %d", env.StatusCode)
}

// decodedBody keeps the most useful diagnostic form of the error body.
func decodedBody(env *Envelope) any {
	if env.Value != nil {
		return env.Value
	}
	if len(env.Raw) == 0 {
		return nil
	}
	return env.Text()
}
