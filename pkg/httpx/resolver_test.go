package httpx_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/apikit/pkg/httpx"
)

func rawResponse(status int, header http.Header, body string) *httpx.RawResponse {
	if header == nil {
		header = http.Header{}
	}
	return &httpx.RawResponse{
		StatusCode: status,
		Header:     header,
		Body:       []byte(body),
		URL:        "https://api.example.com/v1/users",
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("no-content status yields empty envelope immediately", func(t *testing.T) {
		t.Parallel()

		env, err := httpx.Resolve(rawResponse(http.StatusNoContent, nil, ""), httpx.KindAuto)
		require.NoError(t, err)
		assert.Equal(t, httpx.KindNone, env.Kind)
		assert.Empty(t, env.Raw)
	})

	t.Run("not-modified is empty and not an error", func(t *testing.T) {
		t.Parallel()

		env, err := httpx.Resolve(rawResponse(http.StatusNotModified, nil, ""), httpx.KindAuto)
		require.NoError(t, err)
		assert.Equal(t, httpx.KindNone, env.Kind)
	})

	t.Run("json content type decodes structured value", func(t *testing.T) {
		t.Parallel()

		header := http.Header{"Content-Type": {"application/json; charset=utf-8"}}
		env, err := httpx.Resolve(rawResponse(200, header, `{"id":1,"name":"Alice"}`), httpx.KindAuto)
		require.NoError(t, err)

		assert.Equal(t, httpx.KindJSON, env.Kind)
		obj, ok := env.Value.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Alice", obj["name"])
	})

	t.Run("forced kind wins over headers", func(t *testing.T) {
		t.Parallel()

		header := http.Header{"Content-Type": {"application/json"}}
		env, err := httpx.Resolve(rawResponse(200, header, `{"id":1}`), httpx.KindText)
		require.NoError(t, err)

		assert.Equal(t, httpx.KindText, env.Kind)
		assert.Nil(t, env.Value)
		assert.Equal(t, `{"id":1}`, env.Text())
	})

	t.Run("attachment disposition selects binary", func(t *testing.T) {
		t.Parallel()

		header := http.Header{
			"Content-Type":        {"text/csv"},
			"Content-Disposition": {`attachment; filename="export.csv"`},
		}
		env, err := httpx.Resolve(rawResponse(200, header, "a,b\n1,2\n"), httpx.KindAuto)
		require.NoError(t, err)
		assert.Equal(t, httpx.KindBinary, env.Kind)
		assert.Equal(t, []byte("a,b\n1,2\n"), env.Bytes())
	})

	t.Run("spreadsheet content type selects binary", func(t *testing.T) {
		t.Parallel()

		header := http.Header{"Content-Type": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"}}
		env, err := httpx.Resolve(rawResponse(200, header, "xlsx-bytes"), httpx.KindAuto)
		require.NoError(t, err)
		assert.Equal(t, httpx.KindBinary, env.Kind)
	})

	t.Run("unknown content type defaults to text", func(t *testing.T) {
		t.Parallel()

		header := http.Header{"Content-Type": {"text/html"}}
		env, err := httpx.Resolve(rawResponse(200, header, "<html></html>"), httpx.KindAuto)
		require.NoError(t, err)
		assert.Equal(t, httpx.KindText, env.Kind)
	})

	t.Run("unparseable json falls back to text", func(t *testing.T) {
		t.Parallel()

		header := http.Header{"Content-Type": {"application/json"}}
		env, err := httpx.Resolve(rawResponse(200, header, "not json at all"), httpx.KindAuto)
		require.NoError(t, err)

		assert.Equal(t, httpx.KindText, env.Kind)
		assert.Equal(t, "not json at all", env.Text())
	})

	t.Run("decode into typed destination", func(t *testing.T) {
		t.Parallel()

		header := http.Header{"Content-Type": {"application/json"}}
		env, err := httpx.Resolve(rawResponse(200, header, `{"id":7,"name":"Alice"}`), httpx.KindAuto)
		require.NoError(t, err)

		var user struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		}
		require.NoError(t, env.Decode(&user))
		assert.Equal(t, 7, user.ID)
		assert.Equal(t, "Alice", user.Name)
	})

	t.Run("resolution is idempotent", func(t *testing.T) {
		t.Parallel()

		header := http.Header{"Content-Type": {"application/json"}}
		raw := rawResponse(200, header, `{"id":1,"tags":["a","b"]}`)

		first, err := httpx.Resolve(raw, httpx.KindAuto)
		require.NoError(t, err)
		second, err := httpx.Resolve(raw, httpx.KindAuto)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("structured round trip survives re-serialization", func(t *testing.T) {
		t.Parallel()

		header := http.Header{"Content-Type": {"application/json"}}
		raw := rawResponse(200, header, `{"id":1,"tags":["a","b"],"nested":{"k":"v"}}`)

		env, err := httpx.Resolve(raw, httpx.KindAuto)
		require.NoError(t, err)

		reserialized, err := json.Marshal(env.Value)
		require.NoError(t, err)

		var again any
		require.NoError(t, json.Unmarshal(reserialized, &again))
		assert.Equal(t, env.Value, again)
	})
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	jsonHeader := http.Header{"Content-Type": {"application/json"}}

	t.Run("message field", func(t *testing.T) {
		t.Parallel()

		_, err := httpx.Resolve(rawResponse(422, jsonHeader, `{"message":"name is required"}`), httpx.KindAuto)
		apiErr, ok := httpx.AsError(err)
		require.True(t, ok)
		assert.Equal(t, 422, apiErr.Status)
		assert.Equal(t, "name is required", apiErr.Message)
		assert.Equal(t, "https://api.example.com/v1/users", apiErr.URL)
	})

	t.Run("error field", func(t *testing.T) {
		t.Parallel()

		_, err := httpx.Resolve(rawResponse(400, jsonHeader, `{"error":"bad request"}`), httpx.KindAuto)
		apiErr, ok := httpx.AsError(err)
		require.True(t, ok)
		assert.Equal(t, "bad request", apiErr.Message)
	})

	t.Run("first element of errors list", func(t *testing.T) {
		t.Parallel()

		body := `{"errors":[{"message":"email is taken"},{"message":"second"}]}`
		_, err := httpx.Resolve(rawResponse(409, jsonHeader, body), httpx.KindAuto)
		apiErr, ok := httpx.AsError(err)
		require.True(t, ok)
		assert.Equal(t, "email is taken", apiErr.Message)
	})

	t.Run("generic fallback message", func(t *testing.T) {
		t.Parallel()

		_, err := httpx.Resolve(rawResponse(500, nil, "so broken"), httpx.KindAuto)
		apiErr, ok := httpx.AsError(err)
		require.True(t, ok)
		assert.Equal(t, "HTTP 500", apiErr.Message)
		assert.Equal(t, "so broken", apiErr.Body)
	})

	t.Run("payload too large remapped to friendly message", func(t *testing.T) {
		t.Parallel()

		body := `{"message":"nginx: client intended to send too large body"}`
		_, err := httpx.Resolve(rawResponse(413, jsonHeader, body), httpx.KindAuto)
		apiErr, ok := httpx.AsError(err)
		require.True(t, ok)
		assert.Equal(t, "uploaded payload is too large", apiErr.Message)
	})

	t.Run("decoded body preserved for diagnostics", func(t *testing.T) {
		t.Parallel()

		body := `{"message":"invalid","details":{"field":"email"}}`
		_, err := httpx.Resolve(rawResponse(422, jsonHeader, body), httpx.KindAuto)
		apiErr, ok := httpx.AsError(err)
		require.True(t, ok)

		decoded, ok := apiErr.Body.(map[string]any)
		require.True(t, ok)
		assert.Contains(t, decoded, "details")
	})

	t.Run("401 is an auth failure", func(t *testing.T) {
		t.Parallel()

		_, err := httpx.Resolve(rawResponse(401, jsonHeader, `{"message":"token expired"}`), httpx.KindAuto)
		assert.True(t, httpx.IsAuthFailure(err))
	})
}
