package mocks

import (
	"context"
	"slices"
	"sync"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

// MockCardStore implements store.CardStore for testing
type MockCardStore struct {
	CreateFn     func(ctx context.Context, card *domain.Card) error
	GetByIDFn    func(ctx context.Context, id string) (*domain.Card, error)
	ListFn       func(ctx context.Context) ([]*domain.Card, error)
	DeleteFn     func(ctx context.Context, id string) error
	AddLikeFn    func(ctx context.Context, cardID, userID string) (*domain.Card, error)
	RemoveLikeFn func(ctx context.Context, cardID, userID string) (*domain.Card, error)

	mu    sync.Mutex
	cards map[string]*domain.Card
	order []string
}

var _ store.CardStore = (*MockCardStore)(nil)

// NewMockCardStore creates an empty in-memory store.
func NewMockCardStore() *MockCardStore {
	return &MockCardStore{cards: make(map[string]*domain.Card)}
}

func cloneCard(c *domain.Card) *domain.Card {
	out := *c
	out.Likes = slices.Clone(c.Likes)
	if out.Likes == nil {
		out.Likes = []string{}
	}
	return &out
}

// Seed stores cards directly.
func (m *MockCardStore) Seed(cards ...*domain.Card) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range cards {
		if _, ok := m.cards[c.ID]; !ok {
			m.order = append(m.order, c.ID)
		}
		m.cards[c.ID] = cloneCard(c)
	}
}

func (m *MockCardStore) Create(ctx context.Context, card *domain.Card) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, card)
	}
	m.Seed(card)
	return nil
}

func (m *MockCardStore) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	return cloneCard(c), nil
}

func (m *MockCardStore) List(ctx context.Context) ([]*domain.Card, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Card, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, cloneCard(m.cards[id]))
	}
	return out, nil
}

func (m *MockCardStore) Delete(ctx context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cards[id]; !ok {
		return store.ErrCardNotFound
	}
	delete(m.cards, id)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
	return nil
}

func (m *MockCardStore) AddLike(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	if m.AddLikeFn != nil {
		return m.AddLikeFn(ctx, cardID, userID)
	}
	return m.mutate(cardID, func(c *domain.Card) { c.AddLike(userID) })
}

func (m *MockCardStore) RemoveLike(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	if m.RemoveLikeFn != nil {
		return m.RemoveLikeFn(ctx, cardID, userID)
	}
	return m.mutate(cardID, func(c *domain.Card) { c.RemoveLike(userID) })
}

func (m *MockCardStore) mutate(id string, apply func(*domain.Card)) (*domain.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	apply(c)
	return cloneCard(c), nil
}
