package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/mesto-api/internal/api/middleware"
	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/config"
	"github.com/phrazzld/mesto-api/internal/mocks"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/service"
	"github.com/phrazzld/mesto-api/internal/service/auth"
)

const testSecret = "test-secret-that-is-at-least-32-bytes-long"

// testServer wires the real router, services, bcrypt hasher and JWT codec
// over in-memory stores.
type testServer struct {
	handler http.Handler
	users   *mocks.MockUserStore
	cards   *mocks.MockCardStore
	logBuf  *logger.TestLogBuffer
	auth    config.AuthConfig
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log, logBuf := logger.GetTestLogger(t)
	authCfg := config.AuthConfig{
		JWTSecret:     testSecret,
		TokenLifetime: 7 * 24 * time.Hour,
		BcryptCost:    bcrypt.MinCost,
	}

	codec, err := auth.NewJWTService(authCfg)
	require.NoError(t, err)
	hasher, err := auth.NewBcryptHasher(authCfg.BcryptCost)
	require.NoError(t, err)

	users := mocks.NewMockUserStore()
	cards := mocks.NewMockCardStore()

	handler := NewRouter(RouterDeps{
		Users:  service.NewUserService(users, hasher, codec, log),
		Cards:  service.NewCardService(cards, log),
		Tokens: codec,
		Server: config.ServerConfig{AllowedOrigins: []string{"https://mesto.example.com"}},
		Auth:   authCfg,
		Logger: log,
	})

	return &testServer{handler: handler, users: users, cards: cards, logBuf: logBuf, auth: authCfg}
}

// do sends a request with an optional JSON body and session cookie.
func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

// signup registers a user and returns its id.
func (s *testServer) signup(t *testing.T, email, password string) string {
	t.Helper()

	w := s.do(t, http.MethodPost, "/signup", map[string]string{"email": email, "password": password}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp UserResponse
	decodeJSON(t, w, &resp)
	return resp.ID
}

// signin authenticates and returns the token from the jwt cookie.
func (s *testServer) signin(t *testing.T, email, password string) string {
	t.Helper()

	w := s.do(t, http.MethodPost, "/signin", map[string]string{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	c := sessionCookie(w)
	require.NotNil(t, c, "signin must set the jwt cookie")
	return c.Value
}

// register signs up and signs in, returning the user id and token.
func (s *testServer) register(t *testing.T, email string) (string, string) {
	t.Helper()
	id := s.signup(t, email, "secret1")
	return id, s.signin(t, email, "secret1")
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CookieName {
			return c
		}
	}
	return nil
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	decodeJSON(t, w, &resp)
	return resp
}
