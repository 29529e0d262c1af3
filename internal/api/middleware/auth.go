package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/apperr"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/service/auth"
)

// CookieName is the cookie carrying the session token.
const CookieName = "jwt"

// AuthMiddleware provides cookie-based JWT authentication for routes.
type AuthMiddleware struct {
	tokens  auth.TokenCodec
	onError ErrorHandler
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokens auth.TokenCodec, onError ErrorHandler) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, onError: onError}
}

// Authenticate verifies the jwt cookie and adds the user ID to the request
// context. Every failure is reported as the same AuthFailed error; the
// specific cause is logged at debug only.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if len(r.Cookies()) == 0 {
			log.Debug("authentication failed: request has no cookies")
			m.onError(w, r, apperr.Wrap(apperr.KindAuthFailed, "", auth.ErrMissingToken))
			return
		}

		var token string
		if c, err := r.Cookie(CookieName); err == nil {
			token = c.Value
		}

		userID, err := m.tokens.Verify(r.Context(), token)
		if err != nil {
			reason := "invalid token"
			switch {
			case token == "":
				reason = "jwt cookie missing"
			case errors.Is(err, auth.ErrExpiredToken):
				reason = "token expired"
			}
			log.Debug("authentication failed", slog.String("reason", reason))
			m.onError(w, r, apperr.Wrap(apperr.KindAuthFailed, "", err))
			return
		}

		ctx := shared.WithUserID(r.Context(), userID)
		ctx = logger.WithLogger(ctx, log.With(slog.String("user_id", userID)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
