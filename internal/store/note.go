package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-testkit/internal/domain"
)

// NoteStore defines the interface for note persistence.
type NoteStore interface {
	// Create saves a new note.
	Create(ctx context.Context, note *domain.Note) error

	// GetByID retrieves a note. Returns ErrNoteNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error)

	// ListByUser returns one page of a user's notes, newest first, together
	// with the total number of notes the user owns.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Note, int, error)

	// Update overwrites title, body and updated_at.
	// Returns ErrNoteNotFound if the note does not exist.
	Update(ctx context.Context, note *domain.Note) error

	// Delete removes a note. Returns ErrNoteNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a NoteStore bound to the given transaction.
	WithTx(tx *sql.Tx) NoteStore
}
