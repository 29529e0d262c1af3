package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/mesto-api/internal/apperr"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/store"
)

// CardService provides card operations. Likes may be toggled by any
// authenticated user; deletion is restricted to the owner.
type CardService interface {
	ListCards(ctx context.Context) ([]*domain.Card, error)
	CreateCard(ctx context.Context, ownerID, name, link string) (*domain.Card, error)
	// DeleteCard returns Forbidden when callerID does not own the card.
	DeleteCard(ctx context.Context, callerID, cardID string) error
	LikeCard(ctx context.Context, callerID, cardID string) (*domain.Card, error)
	UnlikeCard(ctx context.Context, callerID, cardID string) (*domain.Card, error)
}

// CardServiceImpl implements the CardService interface
type CardServiceImpl struct {
	cards  store.CardStore
	logger *slog.Logger
}

var _ CardService = (*CardServiceImpl)(nil)

// NewCardService creates a new CardService
func NewCardService(cards store.CardStore, logger *slog.Logger) *CardServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardServiceImpl{
		cards:  cards,
		logger: logger.With("component", "card_service"),
	}
}

func (s *CardServiceImpl) ListCards(ctx context.Context) ([]*domain.Card, error) {
	cards, err := s.cards.List(ctx)
	if err != nil {
		return nil, classify(err, MsgCardNotFound)
	}
	return cards, nil
}

func (s *CardServiceImpl) CreateCard(ctx context.Context, ownerID, name, link string) (*domain.Card, error) {
	card, err := domain.NewCard(name, link, ownerID)
	if err != nil {
		return nil, classify(err, MsgCardNotFound)
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, classify(err, MsgCardNotFound)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("card created",
		slog.String("card_id", card.ID),
		slog.String("owner_id", ownerID))
	return card, nil
}

func (s *CardServiceImpl) DeleteCard(ctx context.Context, callerID, cardID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return classify(err, MsgCardNotFound)
	}
	if !card.IsOwnedBy(callerID) {
		log.Debug("card delete rejected: caller is not the owner",
			slog.String("card_id", cardID),
			slog.String("owner_id", card.Owner))
		return apperr.Wrap(apperr.KindForbidden, MsgNotCardOwner, ErrNotOwned)
	}

	if err := s.cards.Delete(ctx, cardID); err != nil {
		return classify(err, MsgCardNotFound)
	}

	log.Info("card deleted", slog.String("card_id", cardID))
	return nil
}

func (s *CardServiceImpl) LikeCard(ctx context.Context, callerID, cardID string) (*domain.Card, error) {
	card, err := s.cards.AddLike(ctx, cardID, callerID)
	if err != nil {
		return nil, classify(err, MsgCardNotFound)
	}
	return card, nil
}

func (s *CardServiceImpl) UnlikeCard(ctx context.Context, callerID, cardID string) (*domain.Card, error) {
	card, err := s.cards.RemoveLike(ctx, cardID, callerID)
	if err != nil {
		return nil, classify(err, MsgCardNotFound)
	}
	return card, nil
}
