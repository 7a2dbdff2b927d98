package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-testkit/internal/domain"
	"github.com/phrazzld/scry-testkit/internal/store"
	"github.com/stretchr/testify/mock"
)

// NoteStore is a testify mock of store.NoteStore.
type NoteStore struct {
	mock.Mock
}

var _ store.NoteStore = (*NoteStore)(nil)

// Create is a mock implementation of store.NoteStore.Create
func (m *NoteStore) Create(ctx context.Context, note *domain.Note) error {
	return m.Called(ctx, note).Error(0)
}

// GetByID is a mock implementation of store.NoteStore.GetByID
func (m *NoteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	args := m.Called(ctx, id)
	if note, ok := args.Get(0).(*domain.Note); ok {
		return note, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByUser is a mock implementation of store.NoteStore.ListByUser
func (m *NoteStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.Note, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	notes, _ := args.Get(0).([]*domain.Note)
	return notes, args.Int(1), args.Error(2)
}

// Update is a mock implementation of store.NoteStore.Update
func (m *NoteStore) Update(ctx context.Context, note *domain.Note) error {
	return m.Called(ctx, note).Error(0)
}

// Delete is a mock implementation of store.NoteStore.Delete
func (m *NoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// WithTx returns the mock itself.
func (m *NoteStore) WithTx(tx *sql.Tx) store.NoteStore {
	return m
}
