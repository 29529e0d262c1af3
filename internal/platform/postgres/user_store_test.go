package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

var userRowColumns = []string{"id", "name", "about", "avatar", "email", "password_hash"}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	u, err := domain.NewUser("", "", "", "Test@Example.com", "$2a$10$hash")
	require.NoError(t, err)
	return u
}

func TestUserStoreCreate(t *testing.T) {
	t.Parallel()

	t.Run("inserts user", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		u := testUser(t)

		mock.ExpectExec("INSERT INTO users").
			WithArgs(u.ID, u.Name, u.About, u.Avatar, "test@example.com", u.HashedPassword).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewUserStore(db, nil).Create(context.Background(), u))
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		u := testUser(t)

		mock.ExpectExec("INSERT INTO users").WillReturnError(newPgError(uniqueViolationCode))

		err := NewUserStore(db, nil).Create(context.Background(), u)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("invalid entity never reaches the database", func(t *testing.T) {
		t.Parallel()
		db, _ := newMockDB(t)
		u := testUser(t)
		u.Name = "x"

		err := NewUserStore(db, nil).Create(context.Background(), u)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("driver failure", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		cause := errors.New("connection reset")
		mock.ExpectExec("INSERT INTO users").WillReturnError(cause)

		err := NewUserStore(db, nil).Create(context.Background(), testUser(t))
		assert.ErrorIs(t, err, cause)
		assert.False(t, store.IsDuplicateError(err))
	})
}

func TestUserStoreGet(t *testing.T) {
	t.Parallel()

	t.Run("by id", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		id := domain.NewID()
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(id, "Alice", "Explorer", "https://a.example/x.png", "a@b.com", "hash"))

		u, err := NewUserStore(db, nil).GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, u.ID)
		assert.Equal(t, "Alice", u.Name)
		assert.Equal(t, "hash", u.HashedPassword)
	})

	t.Run("by id not found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		mock.ExpectQuery("FROM users WHERE id").WillReturnRows(sqlmock.NewRows(userRowColumns))

		_, err := NewUserStore(db, nil).GetByID(context.Background(), domain.NewID())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("by email is case insensitive", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		mock.ExpectQuery("FROM users WHERE email = \\$1").
			WithArgs("a@b.com").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(domain.NewID(), "A", "B", "https://x.example", "a@b.com", "hash"))

		u, err := NewUserStore(db, nil).GetByEmail(context.Background(), " A@B.com ")
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", u.Email)
	})
}

func TestUserStoreList(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectQuery("FROM users ORDER BY").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(domain.NewID(), "One", "First", "https://x.example/1", "one@x.com", "h1").
			AddRow(domain.NewID(), "Two", "Second", "https://x.example/2", "two@x.com", "h2"))

	users, err := NewUserStore(db, nil).List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "One", users[0].Name)
	assert.Equal(t, "Two", users[1].Name)
}

func TestUserStoreListEmpty(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectQuery("FROM users").WillReturnRows(sqlmock.NewRows(userRowColumns))

	users, err := NewUserStore(db, nil).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserStoreUpdates(t *testing.T) {
	t.Parallel()

	t.Run("profile", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		id := domain.NewID()
		mock.ExpectQuery("UPDATE users SET name = \\$2, about = \\$3 WHERE id = \\$1 RETURNING").
			WithArgs(id, "New Name", "New About").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(id, "New Name", "New About", "https://x.example", "a@b.com", "hash"))

		u, err := NewUserStore(db, nil).UpdateProfile(context.Background(), id, "New Name", "New About")
		require.NoError(t, err)
		assert.Equal(t, "New Name", u.Name)
		assert.Equal(t, "New About", u.About)
	})

	t.Run("avatar of missing user", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		mock.ExpectQuery("UPDATE users SET avatar").WillReturnRows(sqlmock.NewRows(userRowColumns))

		_, err := NewUserStore(db, nil).UpdateAvatar(context.Background(), domain.NewID(), "https://x.example/a.png")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}
