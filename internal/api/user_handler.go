package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/service"
)

// UserHandler serves the /users routes. Every route requires authentication.
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// ListUsers handles GET /users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse[[]UserResponse]{Data: toUserResponses(users)})
}

// GetMe handles GET /users/me.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.respondWithUser(w, r, userID)
}

// GetUser handles GET /users/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	h.respondWithUser(w, r, chi.URLParam(r, "id"))
}

func (h *UserHandler) respondWithUser(w http.ResponseWriter, r *http.Request, userID string) {
	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse[UserResponse]{Data: toUserResponse(user)})
}

// UpdateProfile handles PATCH /users/me. Only the caller's own profile can
// be changed; there is no route taking another user's id.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	req, err := validatedBody[*UpdateProfileRequest](r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, req.Name, req.About)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse[UserResponse]{Data: toUserResponse(user)})
}

// UpdateAvatar handles PATCH /users/me/avatar.
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	req, err := validatedBody[*UpdateAvatarRequest](r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.users.UpdateAvatar(r.Context(), userID, req.Avatar)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse[UserResponse]{Data: toUserResponse(user)})
}
