package domain

import "errors"

// Common validation errors.
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyOrganizationID = errors.New("organization ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")

	ErrEmptyNoteID    = errors.New("note ID cannot be empty")
	ErrEmptyNoteTitle = errors.New("note title cannot be empty")
	ErrNoteTooLong    = errors.New("note exceeds maximum length")

	ErrInvalidPagination = errors.New("invalid pagination")
)
