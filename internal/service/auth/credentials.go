package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-testkit/internal/platform/logger"
	"github.com/phrazzld/scry-testkit/internal/store"
)

// Credentials is what a successful login hands back to a client.
type Credentials struct {
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	AccessToken    string
	RefreshToken   string
}

// CredentialIssuer exchanges an email and password for credentials.
// Test factories depend on this seam rather than on a concrete login flow.
type CredentialIssuer interface {
	Issue(ctx context.Context, email, password string) (*Credentials, error)
}

// CredentialRefresher exchanges a refresh token for a new credential pair.
type CredentialRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*Credentials, error)
}

// PasswordCredentialIssuer checks passwords against the user store and mints
// JWT pairs.
type PasswordCredentialIssuer struct {
	users    store.UserStore
	verifier PasswordVerifier
	tokens   JWTService
}

var (
	_ CredentialIssuer    = (*PasswordCredentialIssuer)(nil)
	_ CredentialRefresher = (*PasswordCredentialIssuer)(nil)
)

// NewPasswordCredentialIssuer wires the default CredentialIssuer.
func NewPasswordCredentialIssuer(
	users store.UserStore,
	verifier PasswordVerifier,
	tokens JWTService,
) *PasswordCredentialIssuer {
	return &PasswordCredentialIssuer{users: users, verifier: verifier, tokens: tokens}
}

// Issue implements CredentialIssuer.
func (i *PasswordCredentialIssuer) Issue(ctx context.Context, email, password string) (*Credentials, error) {
	log := logger.FromContext(ctx)

	user, err := i.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := i.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login attempt with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return i.mint(ctx, user.ID, user.OrganizationID)
}

// Refresh implements CredentialRefresher. The user must still exist.
func (i *PasswordCredentialIssuer) Refresh(ctx context.Context, refreshToken string) (*Credentials, error) {
	claims, err := i.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := i.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return i.mint(ctx, user.ID, user.OrganizationID)
}

func (i *PasswordCredentialIssuer) mint(ctx context.Context, userID, orgID uuid.UUID) (*Credentials, error) {
	access, err := i.tokens.GenerateToken(ctx, userID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := i.tokens.GenerateRefreshToken(ctx, userID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &Credentials{
		UserID:         userID,
		OrganizationID: orgID,
		AccessToken:    access,
		RefreshToken:   refresh,
	}, nil
}
