package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/service"
)

// MsgCardDeleted confirms DELETE /cards/{cardId}.
const MsgCardDeleted = "Card deleted"

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	cards  service.CardService
	logger *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cards service.CardService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{
		cards:  cards,
		logger: logger.With(slog.String("component", "card_handler")),
	}
}

// ListCards handles GET /cards. The list is returned as a bare array.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.ListCards(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toCardResponses(cards))
}

// CreateCard handles POST /cards. The caller becomes the owner.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	req, err := validatedBody[*CreateCardRequest](r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	card, err := h.cards.CreateCard(r.Context(), userID, req.Name, req.Link)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, DataResponse[CardResponse]{Data: toCardResponse(card)})
}

// DeleteCard handles DELETE /cards/{cardId}.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	cardID := chi.URLParam(r, "cardId")

	if err := h.cards.DeleteCard(r.Context(), userID, cardID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("card deleted via API",
		slog.String("card_id", cardID))
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: MsgCardDeleted})
}

// LikeCard handles PUT /cards/{cardId}/likes.
func (h *CardHandler) LikeCard(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.cards.LikeCard)
}

// UnlikeCard handles DELETE /cards/{cardId}/likes.
func (h *CardHandler) UnlikeCard(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.cards.UnlikeCard)
}

func (h *CardHandler) toggleLike(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, callerID, cardID string) (*domain.Card, error),
) {
	userID, err := callerID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	card, err := apply(r.Context(), userID, chi.URLParam(r, "cardId"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse[CardResponse]{Data: toCardResponse(card)})
}
