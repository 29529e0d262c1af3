package service

import (
	"errors"

	"github.com/phrazzld/mesto-api/internal/apperr"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

// Client-facing messages
const (
	MsgUserNotFound       = "User not found"
	MsgCardNotFound       = "Card not found"
	MsgEmailTaken         = "A user with this email already exists"
	MsgInvalidCredentials = "Incorrect email or password"
	MsgNotCardOwner       = "You can only delete your own cards"
)

var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// classify turns a store or domain error into an *apperr.Error. notFound is
// the message used when the store reports a missing entity.
func classify(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case store.IsNotFoundError(err):
		return apperr.Wrap(apperr.KindNotFound, notFound, err)
	case errors.Is(err, store.ErrEmailExists):
		return apperr.Wrap(apperr.KindConflict, MsgEmailTaken, err)
	case errors.Is(err, domain.ErrValidation):
		return apperr.Wrap(apperr.KindBadRequest, "", err)
	default:
		return apperr.From(err)
	}
}
