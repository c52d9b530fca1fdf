package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rezkam/todo-api/internal/infrastructure/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoHandler writes back the request body it received.
var echoHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(body)
})

// chunkedReader hides its length so httptest cannot set Content-Length.
type chunkedReader struct{ r io.Reader }

func (c chunkedReader) Read(p []byte) (int, error) { return c.r.Read(p) }

func TestMaxBodyBytes(t *testing.T) {
	const limit = 64
	handler := middleware.MaxBodyBytes(limit)(echoHandler)

	t.Run("passes body within limit", func(t *testing.T) {
		payload := `{"title":"buy milk"}`
		req := httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(payload))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, payload, w.Body.String())
	})

	t.Run("rejects oversized content length", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(strings.Repeat("a", limit+1)))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Request body exceeds size limit", body["error"])
	})

	t.Run("rejects oversized chunked body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/todos",
			chunkedReader{strings.NewReader(strings.Repeat("a", limit*2))})
		req.ContentLength = -1
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	handler := chimw.RequestID(middleware.RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"nope"}`))
	})))

	req := httptest.NewRequest(http.MethodDelete, "/api/todos/9", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "DELETE", entry["method"])
	assert.Equal(t, "/api/todos/9", entry["path"])
	assert.EqualValues(t, http.StatusNotFound, entry["status"])
	assert.EqualValues(t, 16, entry["bytes"])
	assert.NotEmpty(t, entry["request_id"])
}
