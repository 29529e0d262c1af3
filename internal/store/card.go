package store

import (
	"context"

	"github.com/phrazzld/mesto-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card with its likes.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id string) (*domain.Card, error)

	// List returns every card in creation order.
	List(ctx context.Context) ([]*domain.Card, error)

	// Delete removes a card.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id string) error

	// AddLike atomically adds userID to the card's liker set and returns the
	// updated card. Adding an existing liker leaves the set unchanged.
	// Returns ErrCardNotFound if the card does not exist.
	AddLike(ctx context.Context, cardID, userID string) (*domain.Card, error)

	// RemoveLike atomically removes userID from the card's liker set and
	// returns the updated card. Removing a non-member leaves the set unchanged.
	// Returns ErrCardNotFound if the card does not exist.
	RemoveLike(ctx context.Context, cardID, userID string) (*domain.Card, error)
}

// Store bundles the stores of one backend together with its lifecycle.
type Store interface {
	Users() UserStore
	Cards() CardStore
	// Close releases the backend's connections.
	Close(ctx context.Context) error
}
