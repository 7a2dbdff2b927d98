package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Password length bounds; 72 is bcrypt's practical limit.
const (
	MinPasswordLength = 12
	MaxPasswordLength = 72
)

var validate = validator.New()

// User represents a registered user of the example application.
// Every user belongs to exactly one organization.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, only set while creating or changing the password
	HashedPassword string    `json:"-"`
	OrganizationID uuid.UUID `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User in a fresh organization.
// The caller is responsible for hashing the password before storing the user.
func NewUser(email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:             uuid.New(),
		Email:          email,
		Password:       password,
		OrganizationID: uuid.New(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.OrganizationID == uuid.Nil {
		return ErrEmptyOrganizationID
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if err := validate.Var(u.Email, "email"); err != nil {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		return validatePassword(u.Password)
	}
	// Stored users carry only the hash
	if u.HashedPassword == "" {
		return ErrEmptyPassword
	}
	return nil
}

func validatePassword(password string) error {
	switch {
	case len(password) < MinPasswordLength:
		return ErrPasswordTooShort
	case len(password) > MaxPasswordLength:
		return ErrPasswordTooLong
	default:
		return nil
	}
}
