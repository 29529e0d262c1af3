package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

func userDoc(id primitive.ObjectID, email string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "Alice"},
		{Key: "about", Value: "Explorer"},
		{Key: "avatar", Value: "https://x.example/a.png"},
		{Key: "email", Value: email},
		{Key: "password", Value: "hash"},
	}
}

func cardDoc(id, owner primitive.ObjectID, likes ...primitive.ObjectID) bson.D {
	arr := bson.A{}
	for _, l := range likes {
		arr = append(arr, l)
	}
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "Lake"},
		{Key: "link", Value: "https://x.example/lake.jpg"},
		{Key: "owner", Value: owner},
		{Key: "likes", Value: arr},
		{Key: "createdAt", Value: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestUserStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u, err := domain.NewUser("", "", "", "a@b.com", "hash")
		require.NoError(mt, err)
		assert.NoError(mt, NewUserStore(mt.DB, nil).Create(ctx, u))
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users index: email_unique",
		}))

		u, err := domain.NewUser("", "", "", "a@b.com", "hash")
		require.NoError(mt, err)
		err = NewUserStore(mt.DB, nil).Create(ctx, u)
		assert.ErrorIs(mt, err, store.ErrEmailExists)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		ns := mt.DB.Name() + "." + usersCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, userDoc(id, "a@b.com")))

		u, err := NewUserStore(mt.DB, nil).GetByID(ctx, id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), u.ID)
		assert.Equal(mt, "hash", u.HashedPassword)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + usersCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := NewUserStore(mt.DB, nil).GetByID(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, store.ErrUserNotFound)
	})

	mt.Run("malformed id is not found", func(mt *mtest.T) {
		_, err := NewUserStore(mt.DB, nil).GetByID(ctx, "not-an-object-id")
		assert.ErrorIs(mt, err, store.ErrUserNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + usersCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			userDoc(primitive.NewObjectID(), "one@x.com"),
			userDoc(primitive.NewObjectID(), "two@x.com")))

		users, err := NewUserStore(mt.DB, nil).List(ctx)
		require.NoError(mt, err)
		require.Len(mt, users, 2)
		assert.Equal(mt, "one@x.com", users[0].Email)
	})

	mt.Run("update profile returns updated document", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		doc := userDoc(id, "a@b.com")
		doc[1].Value = "Bob"
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: doc}))

		u, err := NewUserStore(mt.DB, nil).UpdateProfile(ctx, id.Hex(), "Bob", "Explorer")
		require.NoError(mt, err)
		assert.Equal(mt, "Bob", u.Name)
	})
}

func TestCardStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		card, err := domain.NewCard("Lake", "https://x.example/lake.jpg", domain.NewID())
		require.NoError(mt, err)
		assert.NoError(mt, NewCardStore(mt.DB, nil).Create(ctx, card))
	})

	mt.Run("list", func(mt *mtest.T) {
		owner, liker := primitive.NewObjectID(), primitive.NewObjectID()
		ns := mt.DB.Name() + "." + cardsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			cardDoc(primitive.NewObjectID(), owner),
			cardDoc(primitive.NewObjectID(), owner, liker)))

		cards, err := NewCardStore(mt.DB, nil).List(ctx)
		require.NoError(mt, err)
		require.Len(mt, cards, 2)
		assert.Empty(mt, cards[0].Likes)
		assert.Equal(mt, []string{liker.Hex()}, cards[1].Likes)
		assert.Equal(mt, owner.Hex(), cards[1].Owner)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		assert.NoError(mt, NewCardStore(mt.DB, nil).Delete(ctx, primitive.NewObjectID().Hex()))
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		err := NewCardStore(mt.DB, nil).Delete(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, store.ErrCardNotFound)
	})

	mt.Run("add like returns card after update", func(mt *mtest.T) {
		id, owner, liker := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: cardDoc(id, owner, liker)}))

		card, err := NewCardStore(mt.DB, nil).AddLike(ctx, id.Hex(), liker.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, []string{liker.Hex()}, card.Likes)
	})

	mt.Run("remove like", func(mt *mtest.T) {
		id, owner := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: cardDoc(id, owner)}))

		card, err := NewCardStore(mt.DB, nil).RemoveLike(ctx, id.Hex(), primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.Empty(mt, card.Likes)
	})

	mt.Run("like on malformed card id", func(mt *mtest.T) {
		_, err := NewCardStore(mt.DB, nil).AddLike(ctx, "xyz", domain.NewID())
		assert.ErrorIs(mt, err, store.ErrCardNotFound)
	})
}

func TestCardDocumentRoundTrip(t *testing.T) {
	card, err := domain.NewCard("Lake", "https://x.example/lake.jpg", domain.NewID())
	require.NoError(t, err)
	card.AddLike(domain.NewID())

	doc, err := newCardDocument(card)
	require.NoError(t, err)
	got := doc.toDomain()

	assert.Equal(t, card.ID, got.ID)
	assert.Equal(t, card.Owner, got.Owner)
	assert.Equal(t, card.Likes, got.Likes)
	assert.True(t, card.CreatedAt.Equal(got.CreatedAt))

	card.Owner = "bad"
	_, err = newCardDocument(card)
	assert.Error(t, err)
}
