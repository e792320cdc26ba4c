package postgres_adapter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/louissosthenes9/campus-stay-api/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePoint(t *testing.T) {
	p := domain.Point{Lon: 39.2083, Lat: -6.7924}

	b, err := encodePoint(p)
	require.NoError(t, err)

	// NDR point: порядок байт, тип, X, Y
	assert.Len(t, b, 21)
	assert.Equal(t, byte(1), b[0])

	decoded, err := decodePoint(b)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestDecodePoint_Garbage(t *testing.T) {
	_, err := decodePoint([]byte{0x01, 0x02})
	assert.Error(t, err)
}

func TestMapConstraintError(t *testing.T) {
	t.Run("known unique constraint", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"})
		assert.Same(t, domain.ErrEmailInUse, mapConstraintError(err))
	})

	t.Run("partial unique index on enquiries", func(t *testing.T) {
		err := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "enquiries_active_key"}
		assert.ErrorIs(t, mapConstraintError(err), domain.ErrDuplicateEnquiry)
	})

	t.Run("unknown unique constraint is a conflict", func(t *testing.T) {
		err := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "something_key"}
		mapped := mapConstraintError(err)
		assert.ErrorIs(t, mapped, domain.ErrConflict)
		assert.Contains(t, mapped.Error(), "something_key")
	})

	t.Run("foreign key is not found", func(t *testing.T) {
		err := &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "favourites_listing_id_fkey"}
		assert.ErrorIs(t, mapConstraintError(err), domain.ErrNotFound)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		assert.Nil(t, mapConstraintError(errors.New("connection reset")))
		assert.Nil(t, mapConstraintError(&pgconn.PgError{Code: "40001"}))
	})
}
