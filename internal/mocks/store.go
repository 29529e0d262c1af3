package mocks

import (
	"context"
	"sync/atomic"

	"github.com/phrazzld/mesto-api/internal/store"
)

// MockStore implements store.Store over the in-memory fakes.
type MockStore struct {
	UserStore *MockUserStore
	CardStore *MockCardStore
	CloseErr  error

	closed atomic.Int32
}

var _ store.Store = (*MockStore)(nil)

// NewMockStore creates a MockStore with empty user and card stores.
func NewMockStore() *MockStore {
	return &MockStore{UserStore: NewMockUserStore(), CardStore: NewMockCardStore()}
}

func (m *MockStore) Users() store.UserStore { return m.UserStore }
func (m *MockStore) Cards() store.CardStore { return m.CardStore }

func (m *MockStore) Close(context.Context) error {
	m.closed.Add(1)
	return m.CloseErr
}

// CloseCalls reports how many times Close was called.
func (m *MockStore) CloseCalls() int {
	return int(m.closed.Load())
}
