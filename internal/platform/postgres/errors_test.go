package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/mesto-api/internal/store"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "users",
		ColumnName:     "email",
		ConstraintName: "users_email_key",
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	other := errors.New("network down")

	tests := []struct {
		name   string
		err    error
		wantIs error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"unique violation", newPgError(uniqueViolationCode), store.ErrDuplicate},
		{"wrapped unique violation", fmt.Errorf("exec: %w", newPgError(uniqueViolationCode)), store.ErrDuplicate},
		{"foreign key violation", newPgError(foreignKeyViolationCode), store.ErrInvalidEntity},
		{"check violation", newPgError(checkViolationCode), store.ErrInvalidEntity},
		{"not null violation", newPgError(notNullViolationCode), store.ErrInvalidEntity},
		{"unmapped pg error", newPgError("42P01"), nil},
		{"other", other, nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tc.err)
			require.Error(t, got)
			if tc.wantIs != nil {
				assert.ErrorIs(t, got, tc.wantIs)
			} else {
				assert.Equal(t, tc.err, got)
			}
		})
	}

	assert.NoError(t, MapError(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(newPgError(uniqueViolationCode)))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", newPgError(uniqueViolationCode))))
	assert.False(t, IsUniqueViolation(newPgError(foreignKeyViolationCode)))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrCardNotFound))
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrCardNotFound), store.ErrCardNotFound)

	resultErr := errors.New("driver does not support RowsAffected")
	err := CheckRowsAffected(sqlmock.NewErrorResult(resultErr), store.ErrCardNotFound)
	assert.ErrorIs(t, err, resultErr)

	assert.Error(t, CheckRowsAffected(nil, store.ErrCardNotFound))
}
