package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-testkit/internal/api/shared"
	"github.com/phrazzld/scry-testkit/internal/mocks"
	"github.com/phrazzld/scry-testkit/internal/platform/logger"
	"github.com/phrazzld/scry-testkit/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := shared.UserIDFromContext(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(userID.String()))
	})
}

func TestAuthenticate(t *testing.T) {
	userID, orgID := uuid.New(), uuid.New()

	tests := []struct {
		name        string
		header      string
		jwt         *mocks.MockJWTService
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "missing header",
			jwt:         &mocks.MockJWTService{},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: shared.AuthenticationRequiredException.ClientMessage,
		},
		{
			name:        "wrong scheme",
			header:      "Basic abc",
			jwt:         &mocks.MockJWTService{},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: shared.InvalidTokenException.ClientMessage,
		},
		{
			name:        "expired",
			header:      "Bearer expired",
			jwt:         &mocks.MockJWTService{ValidateErr: auth.ErrExpiredToken},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: shared.InvalidTokenException.ClientMessage,
		},
		{
			name:        "unexpected failure",
			header:      "Bearer boom",
			jwt:         &mocks.MockJWTService{ValidateErr: errors.New("boom")},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: shared.InternalException.ClientMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			NewAuthMiddleware(tt.jwt).Authenticate(identityHandler(t)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}

	t.Run("valid token", func(t *testing.T) {
		jwt := &mocks.MockJWTService{Claims: &auth.Claims{UserID: userID, OrganizationID: orgID}}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()

		NewAuthMiddleware(jwt).Authenticate(identityHandler(t)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID.String(), rec.Body.String())
	})
}

func TestTraceMiddleware(t *testing.T) {
	log, buf := logger.NewTestLogger(t)

	var seen string
	handler := NewTraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", nil))

	require.Len(t, seen, 32)
	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, seen, entries[0]["trace_id"])
	assert.Equal(t, "request completed", entries[1]["msg"])
	assert.EqualValues(t, http.StatusTeapot, entries[1]["status"])
}
