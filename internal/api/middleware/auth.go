package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/scry-testkit/internal/api/shared"
	"github.com/phrazzld/scry-testkit/internal/redact"
	"github.com/phrazzld/scry-testkit/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the bearer token and adds the user and organization
// IDs to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithException(w, r,
				shared.AuthenticationRequiredException.Raise(ctx, "missing authorization header"))
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || scheme != "Bearer" || token == "" {
			shared.RespondWithException(w, r,
				shared.InvalidTokenException.Raise(ctx, "malformed authorization header"))
			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken),
				errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrWrongTokenType):
				shared.RespondWithException(w, r, shared.InvalidTokenException.Raise(ctx, err.Error()))
			default:
				shared.RespondWithException(w, r, shared.InternalException.Raise(ctx, redact.Error(err)))
			}
			return
		}

		ctx = shared.WithIdentity(ctx, claims.UserID, claims.OrganizationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
