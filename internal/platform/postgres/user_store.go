package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

const userColumns = "id, name, about, avatar, email, password_hash"

// UserStore implements store.UserStore on PostgreSQL.
type UserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore. A nil logger falls back to slog.Default.
func NewUserStore(db store.DBTX, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Create inserts user. The users_email_key constraint makes the email check
// atomic with the insert.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, about, avatar, email, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Name, user.About, user.Avatar, user.Email, user.HashedPassword)
	if err != nil {
		if IsUniqueViolation(err) {
			s.logger.Debug("email already registered", slog.String("user_id", user.ID))
			return store.ErrEmailExists
		}
		return store.NewStoreError("user", "create", "insert failed", MapError(err))
	}

	s.logger.Debug("user created", slog.String("user_id", user.ID))
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return s.scanOne(row, "get")
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", domain.NormalizeEmail(email))
	return s.scanOne(row, "get_by_email")
}

func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, store.NewStoreError("user", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	users := []*domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.About, &u.Avatar, &u.Email, &u.HashedPassword); err != nil {
			return nil, store.NewStoreError("user", "list", "scan failed", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("user", "list", "iteration failed", err)
	}
	return users, nil
}

func (s *UserStore) UpdateProfile(ctx context.Context, id, name, about string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		"UPDATE users SET name = $2, about = $3 WHERE id = $1 RETURNING "+userColumns,
		id, name, about)
	return s.scanOne(row, "update_profile")
}

func (s *UserStore) UpdateAvatar(ctx context.Context, id, avatar string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		"UPDATE users SET avatar = $2 WHERE id = $1 RETURNING "+userColumns,
		id, avatar)
	return s.scanOne(row, "update_avatar")
}

func (s *UserStore) scanOne(row *sql.Row, op string) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.About, &u.Avatar, &u.Email, &u.HashedPassword)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("user", op, "query failed", MapError(err))
	}
	return &u, nil
}
