package domain

import (
	"fmt"
	"slices"
	"time"
	"unicode/utf8"
)

// Card validation errors
var (
	ErrCardIDEmpty     = fmt.Errorf("%w: card ID cannot be empty", ErrValidation)
	ErrInvalidCardName = fmt.Errorf("%w: card name must be 2 to 30 characters", ErrValidation)
	ErrInvalidCardLink = fmt.Errorf("%w: card link must be a valid URL", ErrValidation)
	ErrCardOwnerEmpty  = fmt.Errorf("%w: card owner cannot be empty", ErrValidation)
)

// Card is an image post. Owner is fixed at creation; Likes is a set of user
// IDs whose order carries no meaning.
type Card struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Owner     string    `json:"owner"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewCard creates a new Card owned by owner with no likes.
// Returns an error if validation fails.
func NewCard(name, link, owner string) (*Card, error) {
	card := &Card{
		ID:        NewID(),
		Name:      name,
		Link:      link,
		Owner:     owner,
		Likes:     []string{},
		CreatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if !IsValidID(c.ID) {
		return ErrCardIDEmpty
	}
	n := utf8.RuneCountInString(c.Name)
	if n < MinProfileTextLength || n > MaxProfileTextLength {
		return ErrInvalidCardName
	}
	if fieldValidator.Var(c.Link, "required,url") != nil {
		return ErrInvalidCardLink
	}
	if !IsValidID(c.Owner) {
		return ErrCardOwnerEmpty
	}
	return nil
}

// IsOwnedBy reports whether userID created the card.
func (c *Card) IsOwnedBy(userID string) bool {
	return c.Owner == userID
}

// LikedBy reports whether userID is in the card's liker set.
func (c *Card) LikedBy(userID string) bool {
	return slices.Contains(c.Likes, userID)
}

// AddLike adds userID to the liker set. Adding an existing member is a no-op.
func (c *Card) AddLike(userID string) {
	if !c.LikedBy(userID) {
		c.Likes = append(c.Likes, userID)
	}
}

// RemoveLike removes userID from the liker set. Removing a non-member is a no-op.
func (c *Card) RemoveLike(userID string) {
	c.Likes = slices.DeleteFunc(c.Likes, func(id string) bool { return id == userID })
}
