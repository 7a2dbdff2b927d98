package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-testkit/internal/domain"
	"github.com/phrazzld/scry-testkit/internal/store"
)

// Page bounds for ListNotes.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NotePage is one page of a user's notes.
type NotePage struct {
	Notes      []*domain.Note
	Pagination domain.Pagination
}

// NoteUpdate carries the fields a PATCH may change. Nil fields are left alone.
type NoteUpdate struct {
	Title *string
	Body  *string
}

// NoteService manages notes on behalf of their owner.
type NoteService interface {
	CreateNote(ctx context.Context, userID uuid.UUID, title, body string) (*domain.Note, error)
	GetNote(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error)
	ListNotes(ctx context.Context, userID uuid.UUID, page, pageSize int) (*NotePage, error)
	UpdateNote(ctx context.Context, userID, noteID uuid.UUID, update NoteUpdate) (*domain.Note, error)
	DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error
}

// NoteServiceImpl implements NoteService.
type NoteServiceImpl struct {
	noteStore store.NoteStore
	db        *sql.DB
	logger    *slog.Logger
}

var _ NoteService = (*NoteServiceImpl)(nil)

// NewNoteService creates a new NoteService.
func NewNoteService(noteStore store.NoteStore, db *sql.DB, logger *slog.Logger) *NoteServiceImpl {
	return &NoteServiceImpl{
		noteStore: noteStore,
		db:        db,
		logger:    logger.With("component", "note_service"),
	}
}

// CreateNote validates and stores a new note.
func (s *NoteServiceImpl) CreateNote(ctx context.Context, userID uuid.UUID, title, body string) (*domain.Note, error) {
	note, err := domain.NewNote(userID, title, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	if err := s.noteStore.Create(ctx, note); err != nil {
		s.logger.Error("failed to create note", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

// GetNote returns the note if userID owns it.
func (s *NoteServiceImpl) GetNote(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error) {
	return s.owned(ctx, s.noteStore, userID, noteID)
}

func (s *NoteServiceImpl) owned(
	ctx context.Context,
	notes store.NoteStore,
	userID, noteID uuid.UUID,
) (*domain.Note, error) {
	note, err := notes.GetByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note.UserID != userID {
		s.logger.Debug("note access by non-owner", "note_id", noteID, "user_id", userID)
		return nil, ErrNotOwned
	}
	return note, nil
}

// ListNotes returns a page of the user's notes. page is 1-based.
func (s *NoteServiceImpl) ListNotes(ctx context.Context, userID uuid.UUID, page, pageSize int) (*NotePage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	// The offset must fit in an int.
	if page-1 > math.MaxInt/pageSize {
		return nil, fmt.Errorf("%w: page %d out of range", domain.ErrInvalidPagination, page)
	}

	notes, total, err := s.noteStore.ListByUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.Error("failed to list notes", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return &NotePage{
		Notes:      notes,
		Pagination: domain.NewPagination(page, pageSize, total),
	}, nil
}

// UpdateNote applies a partial update to an owned note.
func (s *NoteServiceImpl) UpdateNote(
	ctx context.Context,
	userID, noteID uuid.UUID,
	update NoteUpdate,
) (*domain.Note, error) {
	var updated *domain.Note

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.noteStore.WithTx(tx)

		note, err := s.owned(ctx, txStore, userID, noteID)
		if err != nil {
			return err
		}
		if update.Title != nil {
			note.Title = *update.Title
		}
		if update.Body != nil {
			note.Body = *update.Body
		}
		if err := txStore.Update(ctx, note); err != nil {
			return err
		}
		updated = note
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotOwned) && !store.IsNotFoundError(err) {
			s.logger.Error("failed to update note", "error", err, "note_id", noteID)
		}
		return nil, err
	}
	return updated, nil
}

// DeleteNote removes an owned note.
func (s *NoteServiceImpl) DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.noteStore.WithTx(tx)

		if _, err := s.owned(ctx, txStore, userID, noteID); err != nil {
			return err
		}
		if err := txStore.Delete(ctx, noteID); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}
		s.logger.Info("note deleted", "note_id", noteID)
		return nil
	})
}
