package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("one@test.scry.local", "Password123#@!")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.NotEqual(t, uuid.Nil, user.OrganizationID)
	assert.Equal(t, "one@test.scry.local", user.Email)
	assert.Equal(t, "Password123#@!", user.Password)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestUserValidate(t *testing.T) {
	valid := func() *User {
		return &User{
			ID:             uuid.New(),
			Email:          "user@example.com",
			HashedPassword: "$2a$04$hash",
			OrganizationID: uuid.New(),
		}
	}

	tests := []struct {
		name    string
		mutate  func(u *User)
		wantErr error
	}{
		{"valid stored user", func(u *User) {}, nil},
		{"nil id", func(u *User) { u.ID = uuid.Nil }, ErrEmptyUserID},
		{"nil organization", func(u *User) { u.OrganizationID = uuid.Nil }, ErrEmptyOrganizationID},
		{"empty email", func(u *User) { u.Email = "" }, ErrEmptyEmail},
		{"invalid email", func(u *User) { u.Email = "not-an-email" }, ErrInvalidEmail},
		{"no password or hash", func(u *User) { u.HashedPassword = "" }, ErrEmptyPassword},
		{"short password", func(u *User) { u.Password = "short" }, ErrPasswordTooShort},
		{"long password", func(u *User) { u.Password = strings.Repeat("a", 73) }, ErrPasswordTooLong},
		{"valid plaintext", func(u *User) { u.HashedPassword = ""; u.Password = "Password123#@!" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := valid()
			tt.mutate(u)
			err := u.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNewNote(t *testing.T) {
	userID := uuid.New()

	note, err := NewNote(userID, "title", "body")
	require.NoError(t, err)
	assert.Equal(t, userID, note.UserID)
	assert.NotEqual(t, uuid.Nil, note.ID)

	_, err = NewNote(userID, "", "body")
	assert.ErrorIs(t, err, ErrEmptyNoteTitle)

	_, err = NewNote(uuid.Nil, "title", "body")
	assert.ErrorIs(t, err, ErrEmptyUserID)

	_, err = NewNote(userID, strings.Repeat("t", MaxNoteTitleLength+1), "")
	assert.ErrorIs(t, err, ErrNoteTooLong)
}
