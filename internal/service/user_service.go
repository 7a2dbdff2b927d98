package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-testkit/internal/domain"
	"github.com/phrazzld/scry-testkit/internal/store"
)

// UserService provides user-related operations.
type UserService interface {
	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// GetUserByEmail retrieves a user by their email address
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// CreateUser creates a new user with the specified email and password
	CreateUser(ctx context.Context, email, password string) (*domain.User, error)

	// EnsureUser returns the user with this email, creating it if missing.
	// The stored password is always reset to password.
	EnsureUser(ctx context.Context, email, password string) (*domain.User, error)

	// UpdateUserPassword updates a user's password
	UpdateUserPassword(ctx context.Context, userID uuid.UUID, newPassword string) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
	db        *sql.DB
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, db *sql.DB, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		userStore: userStore,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found", "user_id", userID)
		} else {
			s.logger.Error("failed to retrieve user", "error", err, "user_id", userID)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email address
func (s *UserServiceImpl) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user by email", "error", err)
		}
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}
	return user, nil
}

// CreateUser creates a new user with the specified email and password
func (s *UserServiceImpl) CreateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to create user with existing email")
		} else {
			s.logger.Error("failed to save user to database", "error", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID)
	return user, nil
}

// EnsureUser implements UserService.EnsureUser
func (s *UserServiceImpl) EnsureUser(ctx context.Context, email, password string) (*domain.User, error) {
	var result *domain.User

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		existing, err := txStore.GetByEmail(ctx, email)
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			user, err := domain.NewUser(email, password)
			if err != nil {
				return err
			}
			if err := txStore.Create(ctx, user); err != nil {
				return err
			}
			s.logger.Debug("ensured user by creating it", "user_id", user.ID)
			result = user
			return nil
		case err != nil:
			return err
		}

		existing.Password = password
		if err := txStore.Update(ctx, existing); err != nil {
			return err
		}
		s.logger.Debug("ensured existing user and reset password", "user_id", existing.ID)
		result = existing
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}
	return result, nil
}

// UpdateUserPassword updates a user's password
func (s *UserServiceImpl) UpdateUserPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to retrieve user for password update: %w", err)
		}

		// The store hashes Password on update
		user.Password = newPassword
		if err := txStore.Update(ctx, user); err != nil {
			s.logger.Error("failed to update user password", "error", err, "user_id", userID)
			return fmt.Errorf("failed to update user password: %w", err)
		}

		s.logger.Info("user password updated", "user_id", userID)
		return nil
	})
}
