package sqldb

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/scry-testkit/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestMapError_Postgres(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"unique", &pgconn.PgError{Code: uniqueViolationCode}, store.ErrDuplicate},
		{"foreign key", &pgconn.PgError{Code: foreignKeyViolationCode}, store.ErrInvalidEntity},
		{"check", &pgconn.PgError{Code: checkViolationCode}, store.ErrInvalidEntity},
		{"not null", &pgconn.PgError{Code: notNullViolationCode}, store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapError_PassesThroughUnknown(t *testing.T) {
	orig := errors.New("connection reset")
	assert.Same(t, orig, MapError(orig))

	pgOther := &pgconn.PgError{Code: "40001"}
	assert.Equal(t, error(pgOther), MapError(pgOther))
}

func TestMapError_SQLiteConstraints(t *testing.T) {
	db := newMemoryDB(t)

	_, err := db.Exec(`INSERT INTO users (id, email, hashed_password, organization_id, created_at, updated_at)
		VALUES ('u1', 'a@example.com', 'h', 'o1', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO users (id, email, hashed_password, organization_id, created_at, updated_at)
		VALUES ('u2', 'a@example.com', 'h', 'o1', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.Error(t, err)
	assert.ErrorIs(t, MapError(err), store.ErrDuplicate)
	assert.True(t, IsUniqueViolation(err))

	_, err = db.Exec(`INSERT INTO notes (id, user_id, title, body, created_at, updated_at)
		VALUES ('n1', 'missing', 't', '', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.Error(t, err)
	assert.ErrorIs(t, MapError(err), store.ErrInvalidEntity)
	assert.False(t, IsUniqueViolation(err))
}

func TestCheckRowsAffected(t *testing.T) {
	assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, store.ErrNoteNotFound))
	assert.ErrorIs(t, CheckRowsAffected(fakeResult{rows: 0}, store.ErrNoteNotFound), store.ErrNoteNotFound)
	assert.ErrorIs(t, CheckRowsAffected(fakeResult{rows: 0}, nil), store.ErrNotFound)
	assert.Error(t, CheckRowsAffected(nil, nil))
	assert.Error(t, CheckRowsAffected(fakeResult{err: errors.New("unsupported")}, nil))
}
