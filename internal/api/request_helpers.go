package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/apperr"
)

// callerID returns the authenticated user's ID. Handlers behind the auth
// middleware always have one; its absence is a wiring bug.
func callerID(r *http.Request) (string, error) {
	id, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		return "", apperr.Internal(errors.New("user ID missing from request context"))
	}
	return id, nil
}

// validatedBody returns the body stored by the validation middleware.
func validatedBody[T any](r *http.Request) (T, error) {
	body, ok := shared.Body[T](r.Context())
	if !ok {
		var zero T
		return zero, apperr.Internal(errors.New("validated body missing from request context"))
	}
	return body, nil
}
