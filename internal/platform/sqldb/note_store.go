package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-testkit/internal/domain"
	"github.com/phrazzld/scry-testkit/internal/store"
)

// NoteStore implements store.NoteStore on database/sql.
type NoteStore struct {
	db      store.DBTX
	dialect Dialect
}

var _ store.NoteStore = (*NoteStore)(nil)

// NewNoteStore creates a NoteStore.
func NewNoteStore(db *DB) *NoteStore {
	return &NoteStore{db: db.DB, dialect: db.Dialect}
}

// WithTx implements store.NoteStore.WithTx
func (s *NoteStore) WithTx(tx *sql.Tx) store.NoteStore {
	return &NoteStore{db: tx, dialect: s.dialect}
}

// Create implements store.NoteStore.Create
func (s *NoteStore) Create(ctx context.Context, note *domain.Note) error {
	if err := note.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, Rebind(s.dialect,
		`INSERT INTO notes (id, user_id, title, body, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`),
		note.ID, note.UserID, note.Title, note.Body, note.CreatedAt.UTC(), note.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", MapError(err))
	}
	return nil
}

const selectNote = `SELECT id, user_id, title, body, created_at, updated_at FROM notes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*domain.Note, error) {
	var note domain.Note
	if err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Body,
		&note.CreatedAt, &note.UpdatedAt); err != nil {
		return nil, err
	}
	return &note, nil
}

// GetByID implements store.NoteStore.GetByID
func (s *NoteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	note, err := scanNote(s.db.QueryRowContext(ctx, Rebind(s.dialect, selectNote+` WHERE id = ?`), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", MapError(err))
	}
	return note, nil
}

// ListByUser implements store.NoteStore.ListByUser
func (s *NoteStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Note, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		Rebind(s.dialect, `SELECT COUNT(*) FROM notes WHERE user_id = ?`), userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notes: %w", MapError(err))
	}

	rows, err := s.db.QueryContext(ctx, Rebind(s.dialect,
		selectNote+` WHERE user_id = ? ORDER BY created_at DESC, id LIMIT ? OFFSET ?`),
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notes: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	notes := make([]*domain.Note, 0, limit)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan note: %w", MapError(err))
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate notes: %w", MapError(err))
	}
	return notes, total, nil
}

// Update implements store.NoteStore.Update
func (s *NoteStore) Update(ctx context.Context, note *domain.Note) error {
	if err := note.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	note.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, Rebind(s.dialect,
		`UPDATE notes SET title = ?, body = ?, updated_at = ? WHERE id = ?`),
		note.Title, note.Body, note.UpdatedAt, note.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrNoteNotFound)
}

// Delete implements store.NoteStore.Delete
func (s *NoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, Rebind(s.dialect, `DELETE FROM notes WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrNoteNotFound)
}
