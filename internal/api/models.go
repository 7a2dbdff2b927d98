package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-testkit/internal/domain"
)

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// RefreshTokenRequest is the optional body of the refresh endpoint; the
// refresh cookie takes precedence.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	AccessToken    string    `json:"token"`
	RefreshToken   string    `json:"refresh_token"`
	OrganizationID uuid.UUID `json:"organization_id"`
}

// VisitorResponse identifies an anonymous visitor.
type VisitorResponse struct {
	VisitorID string `json:"visitor_id"`
}

// UserResponse describes the authenticated user.
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	OrganizationID uuid.UUID `json:"organization_id"`
}

// CreateNoteRequest defines the payload for creating a note.
type CreateNoteRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body"  validate:"max=10000"`
}

// UpdateNoteRequest defines the payload for a partial note update.
type UpdateNoteRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=200"`
	Body  *string `json:"body"  validate:"omitempty,max=10000"`
}

// NoteResponse is the wire form of a note.
type NoteResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteListResponse is one page of notes.
type NoteListResponse struct {
	Results    []NoteResponse    `json:"results"`
	Pagination domain.Pagination `json:"pagination"`
}

func noteToResponse(note *domain.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Body:      note.Body,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
