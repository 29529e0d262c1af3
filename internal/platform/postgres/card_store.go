package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

// cardSelect reads a card together with its likers, flattened to a
// comma-separated list so the row scans through database/sql without array types.
const cardSelect = `SELECT c.id, c.name, c.link, c.owner_id, c.created_at,
	COALESCE((SELECT string_agg(l.user_id::text, ',' ORDER BY l.liked_at, l.user_id)
	          FROM card_likes l WHERE l.card_id = c.id), '')
	FROM cards c`

// CardStore implements store.CardStore on PostgreSQL. Likes live in the
// card_likes table whose primary key makes the liker set duplicate-free.
type CardStore struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ store.CardStore = (*CardStore)(nil)

// NewCardStore creates a CardStore. A nil logger falls back to slog.Default.
func NewCardStore(db *sql.DB, logger *slog.Logger) *CardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

func (s *CardStore) Create(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cards (id, name, link, owner_id, created_at) VALUES ($1, $2, $3, $4, $5)`,
		card.ID, card.Name, card.Link, card.Owner, card.CreatedAt)
	if err != nil {
		return store.NewStoreError("card", "create", "insert failed", MapError(err))
	}

	s.logger.Debug("card created",
		slog.String("card_id", card.ID),
		slog.String("owner_id", card.Owner))
	return nil
}

func (s *CardStore) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	return getCard(ctx, s.db, id)
}

func (s *CardStore) List(ctx context.Context) ([]*domain.Card, error) {
	rows, err := s.db.QueryContext(ctx, cardSelect+" ORDER BY c.created_at, c.id")
	if err != nil {
		return nil, store.NewStoreError("card", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	cards := []*domain.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, store.NewStoreError("card", "list", "scan failed", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("card", "list", "iteration failed", err)
	}
	return cards, nil
}

func (s *CardStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM cards WHERE id = $1", id)
	if err != nil {
		return store.NewStoreError("card", "delete", "delete failed", MapError(err))
	}
	if err := CheckRowsAffected(res, store.ErrCardNotFound); err != nil {
		return err
	}
	s.logger.Debug("card deleted", slog.String("card_id", id))
	return nil
}

// AddLike inserts the like and reads the card back in one transaction.
// ON CONFLICT DO NOTHING gives add-to-set semantics.
func (s *CardStore) AddLike(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	return s.mutateLikes(ctx, "add_like", cardID,
		`INSERT INTO card_likes (card_id, user_id)
		 SELECT $1, $2 WHERE EXISTS (SELECT 1 FROM cards WHERE id = $1)
		 ON CONFLICT (card_id, user_id) DO NOTHING`,
		cardID, userID)
}

func (s *CardStore) RemoveLike(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	return s.mutateLikes(ctx, "remove_like", cardID,
		"DELETE FROM card_likes WHERE card_id = $1 AND user_id = $2",
		cardID, userID)
}

func (s *CardStore) mutateLikes(ctx context.Context, op, cardID, query string, args ...any) (*domain.Card, error) {
	var card *domain.Card
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return store.NewStoreError("card", op, "update failed", MapError(err))
		}
		var err error
		card, err = getCard(ctx, tx, cardID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func getCard(ctx context.Context, db store.DBTX, id string) (*domain.Card, error) {
	card, err := scanCard(db.QueryRowContext(ctx, cardSelect+" WHERE c.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrCardNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("card", "get", "query failed", MapError(err))
	}
	return card, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var (
		c     domain.Card
		likes string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Link, &c.Owner, &c.CreatedAt, &likes); err != nil {
		return nil, err
	}
	c.Likes = splitLikes(likes)
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func splitLikes(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
