package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/mesto-api/internal/apperr"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/service/auth"
	"github.com/phrazzld/mesto-api/internal/store"
)

// RegisterParams holds the fields accepted at signup. Empty profile fields
// take their defaults.
type RegisterParams struct {
	Name     string
	About    string
	Avatar   string
	Email    string
	Password string
}

// UserService provides registration, authentication and profile operations.
type UserService interface {
	// Register creates a user. A taken email is a Conflict.
	Register(ctx context.Context, params RegisterParams) (*domain.User, error)

	// Authenticate checks credentials and issues a token. Unknown email and
	// wrong password fail identically with AuthFailed.
	Authenticate(ctx context.Context, email, password string) (*domain.User, auth.Token, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers returns every user.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// UpdateProfile changes the caller's name and/or about. Empty values are left unchanged.
	UpdateProfile(ctx context.Context, userID, name, about string) (*domain.User, error)

	// UpdateAvatar changes the caller's avatar URL.
	UpdateAvatar(ctx context.Context, userID, avatar string) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	tokens auth.TokenCodec
	logger *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	tokens auth.TokenCodec,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With("component", "user_service"),
	}
}

func (s *UserServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// Register checks the email up front for a friendly error and relies on the
// store's unique index for the concurrent case.
func (s *UserServiceImpl) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	log := s.log(ctx)

	_, err := s.users.GetByEmail(ctx, params.Email)
	switch {
	case err == nil:
		log.Debug("signup rejected: email already registered")
		return nil, apperr.Wrap(apperr.KindConflict, MsgEmailTaken, store.ErrEmailExists)
	case !errors.Is(err, store.ErrUserNotFound):
		return nil, classify(err, MsgUserNotFound)
	}

	hashed, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user, err := domain.NewUser(params.Name, params.About, params.Avatar, params.Email, hashed)
	if err != nil {
		return nil, classify(err, MsgUserNotFound)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("signup lost race on email uniqueness")
		}
		return nil, classify(err, MsgUserNotFound)
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

func (s *UserServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, auth.Token, error) {
	log := s.log(ctx)
	fail := apperr.Wrap(apperr.KindAuthFailed, MsgInvalidCredentials, ErrInvalidCredentials)

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug("signin rejected: unknown email")
		return nil, auth.Token{}, fail
	}
	if err != nil {
		return nil, auth.Token{}, classify(err, MsgUserNotFound)
	}

	ok, err := s.hasher.Verify(user.HashedPassword, password)
	if err != nil {
		return nil, auth.Token{}, apperr.Internal(err)
	}
	if !ok {
		log.Debug("signin rejected: wrong password", slog.String("user_id", user.ID))
		return nil, auth.Token{}, fail
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, auth.Token{}, apperr.Internal(err)
	}

	log.Info("user signed in", slog.String("user_id", user.ID))
	return user, token, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, classify(err, MsgUserNotFound)
	}
	return user, nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, classify(err, MsgUserNotFound)
	}
	return users, nil
}

// UpdateProfile validates the merged profile before writing so a partial
// update can never store an invalid user.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID, name, about string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, classify(err, MsgUserNotFound)
	}
	if err := user.UpdateProfile(name, about); err != nil {
		return nil, classify(err, MsgUserNotFound)
	}

	updated, err := s.users.UpdateProfile(ctx, userID, user.Name, user.About)
	if err != nil {
		return nil, classify(err, MsgUserNotFound)
	}
	s.log(ctx).Debug("profile updated", slog.String("user_id", userID))
	return updated, nil
}

func (s *UserServiceImpl) UpdateAvatar(ctx context.Context, userID, avatar string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, classify(err, MsgUserNotFound)
	}
	if err := user.UpdateAvatar(avatar); err != nil {
		return nil, classify(err, MsgUserNotFound)
	}

	updated, err := s.users.UpdateAvatar(ctx, userID, avatar)
	if err != nil {
		return nil, classify(err, MsgUserNotFound)
	}
	s.log(ctx).Debug("avatar updated", slog.String("user_id", userID))
	return updated, nil
}
