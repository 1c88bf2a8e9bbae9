package httpx_test

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apikit/pkg/httpx"
)

type stubTenants struct{ slug string }

func (s stubTenants) Resolve(context.Context) (string, bool) {
	return s.slug, s.slug != ""
}

type stubTokens struct{ access string }

func (s stubTokens) Access(context.Context) (string, bool) {
	return s.access, s.access != ""
}

func newBuilder(t *testing.T, opts ...httpx.BuilderOption) *httpx.Builder {
	t.Helper()
	b, err := httpx.NewBuilder("https://api.example.com/v1", opts...)
	require.NoError(t, err)
	return b
}

func build(t *testing.T, b *httpx.Builder, d httpx.Descriptor) *http.Request {
	t.Helper()
	req, err := b.Build(context.Background(), d)
	require.NoError(t, err)
	return req
}

func TestBuilderURL(t *testing.T) {
	t.Parallel()

	t.Run("joins relative path with base", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t)
		req := build(t, b, httpx.Descriptor{Path: "/users"})
		assert.Equal(t, "https://api.example.com/v1/users", req.URL.String())

		req = build(t, b, httpx.Descriptor{Path: "users"})
		assert.Equal(t, "https://api.example.com/v1/users", req.URL.String())
	})

	t.Run("absolute path is used as full target", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t)
		req := build(t, b, httpx.Descriptor{
			Path:  "https://files.example.org/export",
			Query: url.Values{"id": {"42"}},
		})
		assert.Equal(t, "https://files.example.org/export?id=42", req.URL.String())
	})

	t.Run("method defaults to GET", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t)
		req := build(t, b, httpx.Descriptor{Path: "/users"})
		assert.Equal(t, http.MethodGet, req.Method)
	})
}

func TestBuilderQueryEncoding(t *testing.T) {
	t.Parallel()

	t.Run("array values repeat the key in order", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t)
		req := build(t, b, httpx.Descriptor{
			Path:  "/users",
			Query: url.Values{"status": {"active", "pending", "blocked"}},
		})
		assert.Equal(t, "status=active&status=pending&status=blocked", req.URL.RawQuery)
	})

	t.Run("empty scalars and elements are dropped", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t)
		req := build(t, b, httpx.Descriptor{
			Path: "/users",
			Query: url.Values{
				"status": {"active", "", "blocked"},
				"q":      {""},
				"page":   {"2"},
			},
		})
		assert.Equal(t, "page=2&status=active&status=blocked", req.URL.RawQuery)
	})

	t.Run("merges with query already present in path", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t)
		req := build(t, b, httpx.Descriptor{
			Path:  "/users?sort=name",
			Query: url.Values{"page": {"2"}},
		})

		query := req.URL.Query()
		assert.Equal(t, "name", query.Get("sort"))
		assert.Equal(t, "2", query.Get("page"))
	})
}

func TestBuilderHeaders(t *testing.T) {
	t.Parallel()

	t.Run("injects defaults", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t)
		req := build(t, b, httpx.Descriptor{Path: "/users"})

		assert.Equal(t, "application/json, text/plain, */*", req.Header.Get("Accept"))
		assert.Equal(t, "XMLHttpRequest", req.Header.Get(httpx.HeaderRequestedWith))
		assert.NotEmpty(t, req.Header.Get(httpx.HeaderRequestID))
	})

	t.Run("caller headers win over defaults", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t)
		req := build(t, b, httpx.Descriptor{
			Path:   "/users",
			Header: http.Header{"Accept": {"application/xml"}},
		})
		assert.Equal(t, "application/xml", req.Header.Get("Accept"))
	})

	t.Run("injects tenant and bearer token", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t,
			httpx.WithTenantSource(stubTenants{slug: "acme"}),
			httpx.WithTokenSource(stubTokens{access: "tok-123"}),
		)
		req := build(t, b, httpx.Descriptor{Path: "/users"})

		assert.Equal(t, "acme", req.Header.Get(httpx.HeaderTenant))
		assert.Equal(t, "Bearer tok-123", req.Header.Get("Authorization"))
	})

	t.Run("caller-set tenant and authorization are preserved", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t,
			httpx.WithTenantSource(stubTenants{slug: "acme"}),
			httpx.WithTokenSource(stubTokens{access: "tok-123"}),
		)
		req := build(t, b, httpx.Descriptor{
			Path: "/users",
			Header: http.Header{
				httpx.HeaderTenant: {"globex"},
				"Authorization":    {"Bearer custom"},
			},
		})

		assert.Equal(t, "globex", req.Header.Get(httpx.HeaderTenant))
		assert.Equal(t, "Bearer custom", req.Header.Get("Authorization"))
	})

	t.Run("no tenant header when resolution fails", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t, httpx.WithTenantSource(stubTenants{}))
		req := build(t, b, httpx.Descriptor{Path: "/users"})
		assert.Empty(t, req.Header.Get(httpx.HeaderTenant))
	})
}

func TestBuilderBody(t *testing.T) {
	t.Parallel()

	readBody := func(t *testing.T, req *http.Request) string {
		t.Helper()
		if req.Body == nil {
			return ""
		}
		data, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		return string(data)
	}

	t.Run("nil body produces no body", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t)
		req := build(t, b, httpx.Descriptor{Method: http.MethodPost, Path: "/users"})
		assert.Nil(t, req.Body)
	})

	t.Run("json body with default content type", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t)
		req := build(t, b, httpx.Descriptor{
			Method: http.MethodPost,
			Path:   "/users",
			Body:   httpx.JSON(map[string]any{"name": "Alice"}),
		})

		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"name":"Alice"}`, readBody(t, req))
	})

	t.Run("json body respects caller content type", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t)
		req := build(t, b, httpx.Descriptor{
			Method: http.MethodPost,
			Path:   "/users",
			Header: http.Header{"Content-Type": {"application/vnd.api+json"}},
			Body:   httpx.JSON(map[string]any{"name": "Alice"}),
		})
		assert.Equal(t, "application/vnd.api+json", req.Header.Get("Content-Type"))
	})

	t.Run("json body with declared form content type is form-encoded", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t)
		req := build(t, b, httpx.Descriptor{
			Method: http.MethodPost,
			Path:   "/login",
			Header: http.Header{"Content-Type": {"application/x-www-form-urlencoded; charset=utf-8"}},
			Body: httpx.JSON(map[string]any{
				"scopes": []string{"read", "write"},
				"name":   "Alice",
				"empty":  "",
			}),
		})

		assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
		assert.Equal(t, "name=Alice&scopes=read&scopes=write", readBody(t, req))
	})

	t.Run("text body passes through unchanged", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t)
		req := build(t, b, httpx.Descriptor{
			Method: http.MethodPost,
			Path:   "/notes",
			Body:   httpx.Text("raw text"),
		})

		assert.Equal(t, "raw text", readBody(t, req))
		assert.Empty(t, req.Header.Get("Content-Type"))
	})

	t.Run("binary body sets its content type", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t)
		req := build(t, b, httpx.Descriptor{
			Method: http.MethodPost,
			Path:   "/upload",
			Body:   httpx.Binary([]byte{0x1, 0x2}, "application/octet-stream"),
		})
		assert.Equal(t, "application/octet-stream", req.Header.Get("Content-Type"))
	})

	t.Run("form body drops empty values and repeats keys", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t)
		req := build(t, b, httpx.Descriptor{
			Method: http.MethodPost,
			Path:   "/login",
			Body: httpx.Form(url.Values{
				"tags":  {"a", "", "b"},
				"empty": {""},
			}),
		})

		assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
		assert.Equal(t, "tags=a&tags=b", readBody(t, req))
	})

	t.Run("multipart body discards manual content type", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(t)
		req := build(t, b, httpx.Descriptor{
			Method: http.MethodPost,
			Path:   "/upload",
			Header: http.Header{"Content-Type": {"multipart/form-data"}},
			Body: httpx.Multipart(
				httpx.Part{Field: "file", FileName: "report.csv", Data: []byte("a,b\n")},
				httpx.Part{Field: "note", Data: []byte("quarterly")},
			),
		})

		contentType := req.Header.Get("Content-Type")
		assert.True(t, strings.HasPrefix(contentType, "multipart/form-data; boundary="),
			"content type %q must carry the generated boundary", contentType)

		body := readBody(t, req)
		assert.Contains(t, body, `filename="report.csv"`)
		assert.Contains(t, body, "quarterly")
	})
}
