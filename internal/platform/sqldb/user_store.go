package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-testkit/internal/domain"
	"github.com/phrazzld/scry-testkit/internal/platform/logger"
	"github.com/phrazzld/scry-testkit/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// UserStore implements store.UserStore on database/sql.
type UserStore struct {
	db         store.DBTX
	dialect    Dialect
	bcryptCost int
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore. bcryptCost is clamped to bcrypt's
// accepted range.
func NewUserStore(db *DB, bcryptCost int) *UserStore {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserStore{db: db.DB, dialect: db.Dialect, bcryptCost: bcryptCost}
}

// WithTx implements store.UserStore.WithTx
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{db: tx, dialect: s.dialect, bcryptCost: s.bcryptCost}
}

func (s *UserStore) hashPassword(user *domain.User) error {
	if user.Password == "" {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = string(hashed)
	user.Password = ""
	return nil
}

// Create implements store.UserStore.Create
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContext(ctx)

	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	if err := s.hashPassword(user); err != nil {
		return err
	}
	user.Email = strings.ToLower(user.Email)

	_, err := s.db.ExecContext(ctx, Rebind(s.dialect,
		`INSERT INTO users (id, email, hashed_password, organization_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`),
		user.ID, user.Email, user.HashedPassword, user.OrganizationID,
		user.CreatedAt.UTC(), user.UpdatedAt.UTC(),
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrDuplicate) {
			log.Debug("user email already exists", slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", mapped)
	}

	log.Debug("user created", slog.String("user_id", user.ID.String()))
	return nil
}

const selectUser = `SELECT id, email, hashed_password, organization_id, created_at, updated_at FROM users`

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.HashedPassword, &user.OrganizationID,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", MapError(err))
	}
	return &user, nil
}

// GetByID implements store.UserStore.GetByID
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, Rebind(s.dialect, selectUser+` WHERE id = ?`), id))
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		Rebind(s.dialect, selectUser+` WHERE email = ?`), strings.ToLower(email)))
}

// Update implements store.UserStore.Update
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	if err := s.hashPassword(user); err != nil {
		return err
	}
	user.Email = strings.ToLower(user.Email)
	user.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, Rebind(s.dialect,
		`UPDATE users SET email = ?, hashed_password = ?, organization_id = ?, updated_at = ?
		 WHERE id = ?`),
		user.Email, user.HashedPassword, user.OrganizationID, user.UpdatedAt, user.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrEmailExists
		}
		return fmt.Errorf("failed to update user: %w", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrUserNotFound)
}
