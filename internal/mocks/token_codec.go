package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/mesto-api/internal/service/auth"
)

// MockTokenCodec implements auth.TokenCodec for testing
type MockTokenCodec struct {
	IssueFn  func(ctx context.Context, userID string) (auth.Token, error)
	VerifyFn func(ctx context.Context, token string) (string, error)

	// UserID is returned by the default Verify for any non-empty token.
	UserID string
}

var _ auth.TokenCodec = (*MockTokenCodec)(nil)

func (m *MockTokenCodec) Issue(ctx context.Context, userID string) (auth.Token, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, userID)
	}
	return auth.Token{Value: "mock-token-" + userID, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (m *MockTokenCodec) Verify(ctx context.Context, token string) (string, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, token)
	}
	if token == "" || m.UserID == "" {
		return "", auth.ErrInvalidToken
	}
	return m.UserID, nil
}
