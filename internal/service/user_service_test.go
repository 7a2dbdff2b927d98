package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-testkit/internal/domain"
	"github.com/phrazzld/scry-testkit/internal/mocks"
	"github.com/phrazzld/scry-testkit/internal/service"
	"github.com/phrazzld/scry-testkit/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const password = "Password123#@!"

func TestUserService_EnsureUser(t *testing.T) {
	t.Run("creates missing user", func(t *testing.T) {
		db, sqlMock := newTxDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		users := new(mocks.UserStore)
		users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, store.ErrUserNotFound)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "new@example.com" && u.Password == password
		})).Return(nil)

		user, err := service.NewUserService(users, db, quietLogger).
			EnsureUser(context.Background(), "new@example.com", password)

		require.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
		assert.NotEqual(t, uuid.Nil, user.OrganizationID)
		users.AssertExpectations(t)
	})

	t.Run("resets password of existing user", func(t *testing.T) {
		db, sqlMock := newTxDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		existing := &domain.User{ID: uuid.New(), Email: "old@example.com", HashedPassword: "old-hash"}
		users := new(mocks.UserStore)
		users.On("GetByEmail", mock.Anything, "old@example.com").Return(existing, nil)
		users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == existing.ID && u.Password == password
		})).Return(nil)

		user, err := service.NewUserService(users, db, quietLogger).
			EnsureUser(context.Background(), "old@example.com", password)

		require.NoError(t, err)
		assert.Equal(t, existing.ID, user.ID)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store error rolls back", func(t *testing.T) {
		db, sqlMock := newTxDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		users := new(mocks.UserStore)
		users.On("GetByEmail", mock.Anything, "x@example.com").Return(nil, errors.New("db down"))

		_, err := service.NewUserService(users, db, quietLogger).
			EnsureUser(context.Background(), "x@example.com", password)

		assert.ErrorContains(t, err, "failed to ensure user")
	})

	t.Run("invalid password rolls back", func(t *testing.T) {
		db, sqlMock := newTxDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		users := new(mocks.UserStore)
		users.On("GetByEmail", mock.Anything, "short@example.com").Return(nil, store.ErrUserNotFound)

		_, err := service.NewUserService(users, db, quietLogger).
			EnsureUser(context.Background(), "short@example.com", "short")

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
	})
}

func TestUserService_CreateUser(t *testing.T) {
	t.Run("duplicate email", func(t *testing.T) {
		db, sqlMock := newTxDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		users := new(mocks.UserStore)
		users.On("Create", mock.Anything, mock.Anything).Return(store.ErrEmailExists)

		_, err := service.NewUserService(users, db, quietLogger).
			CreateUser(context.Background(), "dup@example.com", password)

		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("invalid email never opens a transaction", func(t *testing.T) {
		db, _ := newTxDB(t)

		_, err := service.NewUserService(new(mocks.UserStore), db, quietLogger).
			CreateUser(context.Background(), "not-an-email", password)

		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})
}

func TestUserService_GetUser(t *testing.T) {
	id := uuid.New()
	users := new(mocks.UserStore)
	users.On("GetByID", mock.Anything, id).Return(nil, store.ErrUserNotFound)

	_, err := service.NewUserService(users, nil, quietLogger).GetUser(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserService_GetUserByEmail(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Email: "found@test.scry.local"}
	users := new(mocks.UserStore)
	users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	got, err := service.NewUserService(users, nil, quietLogger).GetUserByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	users.AssertExpectations(t)
}

func TestUserService_UpdateUserPassword(t *testing.T) {
	db, sqlMock := newTxDB(t)
	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	existing := &domain.User{ID: uuid.New(), Email: "a@example.com", HashedPassword: "h"}
	users := new(mocks.UserStore)
	users.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Password == "BrandNewPassword1!"
	})).Return(nil)

	err := service.NewUserService(users, db, quietLogger).
		UpdateUserPassword(context.Background(), existing.ID, "BrandNewPassword1!")
	require.NoError(t, err)
	users.AssertExpectations(t)
}
