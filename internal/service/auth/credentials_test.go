package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-testkit/internal/domain"
	"github.com/phrazzld/scry-testkit/internal/mocks"
	"github.com/phrazzld/scry-testkit/internal/service/auth"
	"github.com/phrazzld/scry-testkit/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedUser() *domain.User {
	return &domain.User{
		ID:             uuid.New(),
		Email:          "user@example.com",
		HashedPassword: "hashed",
		OrganizationID: uuid.New(),
	}
}

func TestPasswordCredentialIssuer_Issue(t *testing.T) {
	user := storedUser()

	t.Run("success", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}
		tokens := &mocks.MockJWTService{Token: "access", RefreshToken: "refresh"}

		creds, err := auth.NewPasswordCredentialIssuer(users, verifier, tokens).
			Issue(context.Background(), user.Email, "Password123#@!")

		require.NoError(t, err)
		assert.Equal(t, "access", creds.AccessToken)
		assert.Equal(t, "refresh", creds.RefreshToken)
		assert.Equal(t, user.ID, creds.UserID)
		assert.Equal(t, user.OrganizationID, creds.OrganizationID)
		assert.Equal(t, 1, verifier.CompareCallCount)
		users.AssertExpectations(t)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, store.ErrUserNotFound)
		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}

		_, err := auth.NewPasswordCredentialIssuer(users, verifier, &mocks.MockJWTService{}).
			Issue(context.Background(), "nobody@example.com", "whatever")

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.Zero(t, verifier.CompareCallCount)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

		_, err := auth.NewPasswordCredentialIssuer(users, &mocks.MockPasswordVerifier{}, &mocks.MockJWTService{}).
			Issue(context.Background(), user.Email, "wrong")

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("store failure", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByEmail", mock.Anything, user.Email).Return(nil, errors.New("db down"))

		_, err := auth.NewPasswordCredentialIssuer(users, &mocks.MockPasswordVerifier{}, &mocks.MockJWTService{}).
			Issue(context.Background(), user.Email, "whatever")

		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("token failure", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
		tokens := &mocks.MockJWTService{Err: errors.New("sign failed")}

		_, err := auth.NewPasswordCredentialIssuer(users, &mocks.MockPasswordVerifier{ShouldSucceed: true}, tokens).
			Issue(context.Background(), user.Email, "whatever")

		assert.ErrorContains(t, err, "failed to generate access token")
	})
}

func TestPasswordCredentialIssuer_Refresh(t *testing.T) {
	user := storedUser()

	t.Run("success", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		tokens := &mocks.MockJWTService{
			Token:        "new-access",
			RefreshToken: "new-refresh",
			Claims:       &auth.Claims{UserID: user.ID, TokenType: auth.TokenTypeRefresh},
		}

		creds, err := auth.NewPasswordCredentialIssuer(users, &mocks.MockPasswordVerifier{}, tokens).
			Refresh(context.Background(), "old-refresh")

		require.NoError(t, err)
		assert.Equal(t, "new-access", creds.AccessToken)
		assert.Equal(t, "new-refresh", creds.RefreshToken)
	})

	t.Run("invalid token", func(t *testing.T) {
		tokens := &mocks.MockJWTService{ValidateErr: auth.ErrExpiredRefreshToken}

		_, err := auth.NewPasswordCredentialIssuer(new(mocks.UserStore), &mocks.MockPasswordVerifier{}, tokens).
			Refresh(context.Background(), "old-refresh")

		assert.ErrorIs(t, err, auth.ErrExpiredRefreshToken)
	})

	t.Run("user gone", func(t *testing.T) {
		users := new(mocks.UserStore)
		users.On("GetByID", mock.Anything, user.ID).Return(nil, store.ErrUserNotFound)
		tokens := &mocks.MockJWTService{Claims: &auth.Claims{UserID: user.ID}}

		_, err := auth.NewPasswordCredentialIssuer(users, &mocks.MockPasswordVerifier{}, tokens).
			Refresh(context.Background(), "old-refresh")

		assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
	})
}
