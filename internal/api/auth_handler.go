package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/scry-testkit/internal/api/shared"
	"github.com/phrazzld/scry-testkit/internal/config"
	"github.com/phrazzld/scry-testkit/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	issuer       auth.CredentialIssuer
	refresher    auth.CredentialRefresher
	cookieName   string
	cookieMaxAge time.Duration
	logger       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	issuer auth.CredentialIssuer,
	refresher auth.CredentialRefresher,
	authConfig config.AuthConfig,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		issuer:       issuer,
		refresher:    refresher,
		cookieName:   authConfig.RefreshCookieName,
		cookieMaxAge: time.Duration(authConfig.RefreshTokenLifetimeMinutes) * time.Minute,
		logger:       logger.With("component", "auth_handler"),
	}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithException(w, r, shared.InvalidRequestException.Raise(r.Context(), err.Error()))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithException(w, r, shared.ValidationException.Raise(r.Context(), err.Error()))
		return
	}

	creds, err := h.issuer.Issue(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	h.logger.Debug("user logged in", "user_id", creds.UserID)
	h.respondWithCredentials(w, r, creds)
}

// RefreshToken handles POST /auth/refresh. The refresh token is read from
// the refresh cookie, or from the JSON body when no cookie is sent.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie(h.cookieName); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var req RefreshTokenRequest
		if err := shared.DecodeJSON(r, &req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		shared.RespondWithException(w, r,
			shared.InvalidRefreshTokenException.Raise(r.Context(), "no refresh token in cookie or body"))
		return
	}

	creds, err := h.refresher.Refresh(r.Context(), token)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	h.respondWithCredentials(w, r, creds)
}

func (h *AuthHandler) respondWithCredentials(w http.ResponseWriter, r *http.Request, creds *auth.Credentials) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    creds.RefreshToken,
		Path:     "/",
		MaxAge:   int(h.cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID:         creds.UserID,
		AccessToken:    creds.AccessToken,
		RefreshToken:   creds.RefreshToken,
		OrganizationID: creds.OrganizationID,
	})
}
