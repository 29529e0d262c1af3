package mocks

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

func TestMockUserStoreEmailUniqueUnderConcurrency(t *testing.T) {
	s := NewMockUserStore()
	ctx := context.Background()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := domain.NewUser("", "", "", "same@example.com", "hash")
			if !assert.NoError(t, err) {
				return
			}
			err = s.Create(ctx, u)
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}
	wg.Wait()

	var dup int
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, store.ErrEmailExists)
			dup++
		}
	}
	assert.Equal(t, 9, dup)
	assert.Equal(t, 1, s.Len())
}

func TestMockCardStoreLikesAreASet(t *testing.T) {
	s := NewMockCardStore()
	ctx := context.Background()

	card, err := domain.NewCard("Lake", "https://x.example/lake.jpg", domain.NewID())
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, card))

	liker := domain.NewID()
	for i := 0; i < 3; i++ {
		got, err := s.AddLike(ctx, card.ID, liker)
		require.NoError(t, err)
		assert.Equal(t, []string{liker}, got.Likes)
	}

	got, err := s.RemoveLike(ctx, card.ID, liker)
	require.NoError(t, err)
	assert.Empty(t, got.Likes)

	require.NoError(t, s.Delete(ctx, card.ID))
	_, err = s.AddLike(ctx, card.ID, liker)
	assert.ErrorIs(t, err, store.ErrCardNotFound)
}

func TestMockUserStoreReturnsCopies(t *testing.T) {
	s := NewMockUserStore()
	u, err := domain.NewUser("", "", "", "a@b.com", "hash")
	require.NoError(t, err)
	s.Seed(u)

	got, err := s.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	got.Name = "Changed"

	again, err := s.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultUserName, again.Name)
}
