package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/mesto-api/internal/api/middleware"
	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/config"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/service"
)

// MsgSignedOut confirms POST /signout.
const MsgSignedOut = "Signed out"

// AuthHandler handles signup, signin and signout.
type AuthHandler struct {
	users      service.UserService
	authConfig config.AuthConfig
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(users service.UserService, authConfig config.AuthConfig, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		users:      users,
		authConfig: authConfig,
		logger:     logger.With(slog.String("component", "auth_handler")),
	}
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	req, err := validatedBody[*SignupRequest](r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterParams{
		Name:     req.Name,
		About:    req.About,
		Avatar:   req.Avatar,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toUserResponse(user))
}

// Signin handles POST /signin. The token is returned in the body and set
// as an HttpOnly cookie, which is what the auth middleware reads.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	req, err := validatedBody[*SigninRequest](r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, token, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	http.SetCookie(w, h.cookie(token.Value, int(h.authConfig.TokenLifetime/time.Second), token.ExpiresAt))

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("session cookie issued",
		slog.String("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, SigninResponse{Token: token.Value, ID: user.ID})
}

// Signout handles POST /signout by expiring the cookie. Tokens are not
// revoked server-side; a copied token stays valid until it expires.
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookie("", -1, time.Unix(0, 0)))
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: MsgSignedOut})
}

func (h *AuthHandler) cookie(value string, maxAge int, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.authConfig.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
