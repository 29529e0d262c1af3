package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/mesto-api/internal/api/middleware"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.Len(t, w.Header().Get(middleware.TraceHeader), 32)
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/nowhere", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Requested resource not found"}`, w.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/signup", nil, "")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, MsgMethodNotAllowed, decodeErrorResponse(t, w).Message)
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/cards", nil)
	req.Header.Set("Origin", "https://mesto.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	assert.Equal(t, "https://mesto.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/cards", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestsAreLogged(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.do(t, http.MethodGet, "/health", nil, "")

	entries, err := s.logBuf.GetLogEntries()
	require.NoError(t, err)

	var found bool
	for _, e := range entries {
		if e["msg"] == "request completed" && e["path"] == "/health" {
			found = true
			assert.NotEmpty(t, e["trace_id"])
		}
	}
	assert.True(t, found, "request log line missing")
}
