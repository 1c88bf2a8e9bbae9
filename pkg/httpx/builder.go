package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Headers injected by the builder when the caller has not set them.
const (
	HeaderTenant        = "X-Tenant-Subdomain"
	HeaderRequestID     = "X-Request-ID"
	HeaderRequestedWith = "X-Requested-With"

	requestedWithValue = "XMLHttpRequest"
	defaultAccept      = "application/json, text/plain, */*"

	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// TenantSource supplies the tenant slug for the tenant header.
type TenantSource interface {
	Resolve(ctx context.Context) (string, bool)
}

// TokenSource supplies the bearer token for the authorization header.
type TokenSource interface {
	Access(ctx context.Context) (string, bool)
}

// Builder composes absolute, fully-headed *http.Request values from logical
// request descriptors.
type Builder struct {
	baseURL string
	tenants TenantSource
	tokens  TokenSource
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithTenantSource wires tenant resolution into header injection.
func WithTenantSource(src TenantSource) BuilderOption {
	return func(b *Builder) { b.tenants = src }
}

// WithTokenSource wires the token store into header injection.
func WithTokenSource(src TokenSource) BuilderOption {
	return func(b *Builder) { b.tokens = src }
}

// NewBuilder creates a Builder targeting the given API base URL.
func NewBuilder(baseURL string, opts ...BuilderOption) (*Builder, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("httpx: base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("httpx: invalid base URL: %w", err)
	}

	b := &Builder{baseURL: strings.TrimSuffix(baseURL, "/")}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Build turns a descriptor into a ready-to-send request. The request body,
// if any, is materialized in memory so the executor can replay it across
// retry attempts.
func (b *Builder) Build(ctx context.Context, d Descriptor) (*http.Request, error) {
	method := d.Method
	if method == "" {
		method = http.MethodGet
	}

	target, err := b.targetURL(d)
	if err != nil {
		return nil, err
	}

	header := make(http.Header, len(d.Header)+5)
	for k, v := range d.Header {
		header[http.CanonicalHeaderKey(k)] = v
	}

	body, err := encodeBody(d.Body, header)
	if err != nil {
		return nil, err
	}

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	var req *http.Request
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, target, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, target, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("httpx: build request: %w", err)
	}
	req.Header = header

	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", defaultAccept)
	}
	if req.Header.Get(HeaderRequestedWith) == "" {
		req.Header.Set(HeaderRequestedWith, requestedWithValue)
	}
	if req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, uuid.NewString())
	}
	if b.tenants != nil && req.Header.Get(HeaderTenant) == "" {
		if slug, ok := b.tenants.Resolve(ctx); ok {
			req.Header.Set(HeaderTenant, slug)
		}
	}
	if b.tokens != nil && req.Header.Get("Authorization") == "" {
		if access, ok := b.tokens.Access(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+access)
		}
	}

	return req, nil
}

// targetURL resolves the descriptor path against the base URL and appends
// the encoded query. An absolute path is used as the full target.
func (b *Builder) targetURL(d Descriptor) (string, error) {
	raw := d.Path
	if u, err := url.Parse(raw); err == nil && u.IsAbs() {
		// Absolute target, only append query parameters.
	} else {
		raw = b.baseURL + "/" + strings.TrimPrefix(raw, "/")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("httpx: invalid request path %q: %w", d.Path, err)
	}

	if query := encodeQuery(u.Query(), d.Query); query != "" {
		u.RawQuery = query
	}

	return u.String(), nil
}

// encodeQuery merges extra parameters into existing ones. Multi-valued keys
// repeat once per non-empty element in original order; empty scalars and
// elements are dropped entirely.
func encodeQuery(existing, extra url.Values) string {
	merged := url.Values{}
	for _, src := range []url.Values{existing, extra} {
		for key, values := range src {
			for _, v := range values {
				if v == "" {
					continue
				}
				merged.Add(key, v)
			}
		}
	}
	return merged.Encode()
}

// encodeBody serializes the tagged body variant and adjusts the headers it
// owns. Returns nil bytes for a nil body.
func encodeBody(body Body, header http.Header) ([]byte, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil

	case multipartBody:
		// The generated boundary must win over any manual content type.
		header.Del("Content-Type")
		return encodeMultipart(v.parts, header)

	case binaryBody:
		if v.contentType != "" && header.Get("Content-Type") == "" {
			header.Set("Content-Type", v.contentType)
		}
		return v.data, nil

	case formBody:
		header.Del("Content-Type")
		header.Set("Content-Type", contentTypeForm)
		return []byte(encodeQuery(nil, v.values)), nil

	case textBody:
		return []byte(v.value), nil

	case jsonBody:
		if isFormContentType(header.Get("Content-Type")) {
			values, err := formValues(v.value)
			if err != nil {
				return nil, err
			}
			header.Del("Content-Type")
			header.Set("Content-Type", contentTypeForm)
			return []byte(encodeQuery(nil, values)), nil
		}
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", contentTypeJSON)
		}
		data, err := json.Marshal(v.value)
		if err != nil {
			return nil, fmt.Errorf("httpx: marshal request body: %w", err)
		}
		return data, nil

	default:
		return nil, fmt.Errorf("httpx: unsupported body type %T", body)
	}
}

func encodeMultipart(parts []Part, header http.Header) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, part := range parts {
		var (
			w   io.Writer
			err error
		)
		switch {
		case part.FileName != "":
			if part.ContentType != "" {
				h := make(textproto.MIMEHeader)
				h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, part.Field, part.FileName))
				h.Set("Content-Type", part.ContentType)
				w, err = mw.CreatePart(h)
			} else {
				w, err = mw.CreateFormFile(part.Field, part.FileName)
			}
		default:
			w, err = mw.CreateFormField(part.Field)
		}
		if err != nil {
			return nil, fmt.Errorf("httpx: build multipart body: %w", err)
		}
		if _, err := w.Write(part.Data); err != nil {
			return nil, fmt.Errorf("httpx: build multipart body: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("httpx: build multipart body: %w", err)
	}

	header.Set("Content-Type", mw.FormDataContentType())
	return buf.Bytes(), nil
}

func isFormContentType(ct string) bool {
	return strings.HasPrefix(strings.ToLower(ct), contentTypeForm)
}

// formValues converts the shapes a form-declared JSON body may take into
// url.Values. Slices repeat the key per element, matching query encoding.
func formValues(value any) (url.Values, error) {
	switch v := value.(type) {
	case url.Values:
		return v, nil
	case map[string][]string:
		return url.Values(v), nil
	case map[string]string:
		values := make(url.Values, len(v))
		for key, val := range v {
			values.Set(key, val)
		}
		return values, nil
	case map[string]any:
		values := make(url.Values, len(v))
		for key, val := range v {
			switch item := val.(type) {
			case []string:
				for _, s := range item {
					values.Add(key, s)
				}
			case []any:
				for _, s := range item {
					values.Add(key, fmt.Sprint(s))
				}
			case nil:
				// dropped, same as empty query values
			default:
				values.Add(key, fmt.Sprint(item))
			}
		}
		return values, nil
	default:
		return nil, fmt.Errorf("httpx: cannot form-encode body of type %T", value)
	}
}
