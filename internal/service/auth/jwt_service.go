package auth

import (
	"context"
	"time"
)

// TokenCodec issues and verifies the signed tokens that identify a user.
type TokenCodec interface {
	// Issue creates a signed token for userID.
	Issue(ctx context.Context, userID string) (Token, error)

	// Verify checks the token's signature, algorithm and expiry and returns
	// the user id it was issued for. Every failure wraps ErrInvalidToken.
	Verify(ctx context.Context, token string) (string, error)
}

// Token is a signed token and the moment it stops being accepted.
type Token struct {
	Value     string
	ExpiresAt time.Time
}
