package store

import (
	"context"

	"github.com/phrazzld/mesto-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// The email uniqueness check is atomic with the insert: of two concurrent
	// creates with the same email exactly one succeeds and the other returns
	// ErrEmailExists.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user, including the password hash, by email.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns every user.
	List(ctx context.Context) ([]*domain.User, error)

	// UpdateProfile sets name and about and returns the updated user.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateProfile(ctx context.Context, id, name, about string) (*domain.User, error)

	// UpdateAvatar sets the avatar URL and returns the updated user.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateAvatar(ctx context.Context, id, avatar string) (*domain.User, error)
}
