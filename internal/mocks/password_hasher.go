package mocks

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/phrazzld/mesto-api/internal/service/auth"
)

const mockHashPrefix = "mockhash:"

// MockPasswordHasher implements auth.PasswordHasher without bcrypt's cost.
// By default Hash prefixes the password and Verify checks the prefix form.
type MockPasswordHasher struct {
	HashFn   func(password string) (string, error)
	VerifyFn func(hashed, password string) (bool, error)

	HashCalls   atomic.Int32
	VerifyCalls atomic.Int32
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	m.HashCalls.Add(1)
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return mockHashPrefix + password, nil
}

func (m *MockPasswordHasher) Verify(hashed, password string) (bool, error) {
	m.VerifyCalls.Add(1)
	if m.VerifyFn != nil {
		return m.VerifyFn(hashed, password)
	}
	if !strings.HasPrefix(hashed, mockHashPrefix) {
		return false, errors.New("malformed hash")
	}
	return hashed == mockHashPrefix+password, nil
}
