package domain

import (
	"time"

	"github.com/google/uuid"
)

// Limits for note content.
const (
	MaxNoteTitleLength = 200
	MaxNoteBodyLength  = 10000
)

// Note is a small user-owned record used by the example application's CRUD
// and list endpoints.
type Note struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote creates a validated note owned by userID.
func NewNote(userID uuid.UUID, title, body string) (*Note, error) {
	now := time.Now().UTC()
	note := &Note{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := note.Validate(); err != nil {
		return nil, err
	}
	return note, nil
}

// Validate checks if the Note has valid data.
func (n *Note) Validate() error {
	if n.ID == uuid.Nil {
		return ErrEmptyNoteID
	}
	if n.UserID == uuid.Nil {
		return ErrEmptyUserID
	}
	if n.Title == "" {
		return ErrEmptyNoteTitle
	}
	if len(n.Title) > MaxNoteTitleLength || len(n.Body) > MaxNoteBodyLength {
		return ErrNoteTooLong
	}
	return nil
}
