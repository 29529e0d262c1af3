package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

// CardStore implements store.CardStore on the cards collection.
type CardStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

var _ store.CardStore = (*CardStore)(nil)

// NewCardStore creates a CardStore. A nil logger falls back to slog.Default.
func NewCardStore(db *mongo.Database, logger *slog.Logger) *CardStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardStore{
		coll:   db.Collection(cardsCollection),
		logger: logger.With(slog.String("component", "card_store")),
	}
}

func (s *CardStore) Create(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	doc, err := newCardDocument(card)
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return store.NewStoreError("card", "create", "insert failed", err)
	}

	s.logger.Debug("card created",
		slog.String("card_id", card.ID),
		slog.String("owner_id", card.Owner))
	return nil
}

func (s *CardStore) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrCardNotFound
	}

	var doc cardDocument
	err = s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrCardNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("card", "get", "find failed", err)
	}
	return doc.toDomain(), nil
}

// List returns cards in natural (insertion) order.
func (s *CardStore) List(ctx context.Context) ([]*domain.Card, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, store.NewStoreError("card", "list", "find failed", err)
	}

	var docs []cardDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, store.NewStoreError("card", "list", "decode failed", err)
	}

	cards := make([]*domain.Card, 0, len(docs))
	for _, d := range docs {
		cards = append(cards, d.toDomain())
	}
	return cards, nil
}

func (s *CardStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrCardNotFound
	}

	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return store.NewStoreError("card", "delete", "delete failed", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrCardNotFound
	}

	s.logger.Debug("card deleted", slog.String("card_id", id))
	return nil
}

func (s *CardStore) AddLike(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	return s.updateLikes(ctx, "add_like", "$addToSet", cardID, userID)
}

func (s *CardStore) RemoveLike(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	return s.updateLikes(ctx, "remove_like", "$pull", cardID, userID)
}

// updateLikes applies a single-document set operator, so concurrent likes
// never lose updates.
func (s *CardStore) updateLikes(ctx context.Context, op, operator, cardID, userID string) (*domain.Card, error) {
	cid, err := primitive.ObjectIDFromHex(cardID)
	if err != nil {
		return nil, store.ErrCardNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", store.ErrInvalidEntity)
	}

	var doc cardDocument
	err = s.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: cid}},
		bson.D{{Key: operator, Value: bson.D{{Key: "likes", Value: uid}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrCardNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("card", op, "update failed", err)
	}
	return doc.toDomain(), nil
}
