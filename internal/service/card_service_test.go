package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/mesto-api/internal/apperr"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/mocks"
)

func newCardFixture() (*mocks.MockCardStore, *CardServiceImpl) {
	cards := mocks.NewMockCardStore()
	return cards, NewCardService(cards, nil)
}

func TestCreateCard(t *testing.T) {
	t.Parallel()
	_, svc := newCardFixture()
	owner := domain.NewID()

	card, err := svc.CreateCard(context.Background(), owner, "Lake", "https://x.example/lake.jpg")
	require.NoError(t, err)
	assert.Equal(t, owner, card.Owner)
	assert.Empty(t, card.Likes)

	_, err = svc.CreateCard(context.Background(), owner, "L", "https://x.example/lake.jpg")
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))

	cards, err := svc.ListCards(context.Background())
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestDeleteCard(t *testing.T) {
	t.Parallel()

	t.Run("owner deletes", func(t *testing.T) {
		t.Parallel()
		store, svc := newCardFixture()
		owner := domain.NewID()
		card, err := svc.CreateCard(context.Background(), owner, "Lake", "https://x.example/lake.jpg")
		require.NoError(t, err)

		require.NoError(t, svc.DeleteCard(context.Background(), owner, card.ID))
		_, err = store.GetByID(context.Background(), card.ID)
		assert.Error(t, err)
	})

	t.Run("non-owner is forbidden and card survives", func(t *testing.T) {
		t.Parallel()
		store, svc := newCardFixture()
		card, err := svc.CreateCard(context.Background(), domain.NewID(), "Lake", "https://x.example/lake.jpg")
		require.NoError(t, err)

		err = svc.DeleteCard(context.Background(), domain.NewID(), card.ID)
		appErr := apperr.From(err)
		assert.Equal(t, apperr.KindForbidden, appErr.Kind)
		assert.ErrorIs(t, err, ErrNotOwned)

		_, err = store.GetByID(context.Background(), card.ID)
		assert.NoError(t, err)
	})

	t.Run("missing card", func(t *testing.T) {
		t.Parallel()
		_, svc := newCardFixture()
		err := svc.DeleteCard(context.Background(), domain.NewID(), domain.NewID())
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		assert.Equal(t, MsgCardNotFound, apperr.From(err).ClientMessage())
	})

	t.Run("store failure is internal", func(t *testing.T) {
		t.Parallel()
		store, svc := newCardFixture()
		owner := domain.NewID()
		card, err := svc.CreateCard(context.Background(), owner, "Lake", "https://x.example/lake.jpg")
		require.NoError(t, err)
		store.DeleteFn = func(context.Context, string) error { return errors.New("disk full") }

		err = svc.DeleteCard(context.Background(), owner, card.ID)
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	})
}

func TestLikeAndUnlike(t *testing.T) {
	t.Parallel()
	_, svc := newCardFixture()
	card, err := svc.CreateCard(context.Background(), domain.NewID(), "Lake", "https://x.example/lake.jpg")
	require.NoError(t, err)

	liker := domain.NewID()
	for i := 0; i < 2; i++ {
		got, err := svc.LikeCard(context.Background(), liker, card.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{liker}, got.Likes)
	}

	for i := 0; i < 2; i++ {
		got, err := svc.UnlikeCard(context.Background(), liker, card.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Likes)
	}

	_, err = svc.LikeCard(context.Background(), liker, domain.NewID())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	_, err = svc.UnlikeCard(context.Background(), liker, domain.NewID())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
