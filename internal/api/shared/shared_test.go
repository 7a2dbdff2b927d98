package shared

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-testkit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))

	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)
	assert.Len(t, traceID, 32)
	assert.NotEqual(t, traceID, GetTraceID(SetTraceID(context.Background())))
}

func TestIdentity(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	userID, orgID := uuid.New(), uuid.New()
	ctx := WithIdentity(context.Background(), userID, orgID)

	got, ok := UserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, userID, got)

	gotOrg, ok := OrganizationIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, orgID, gotOrg)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Email string `json:"email" validate:"required,email"`
	}

	var p payload
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@example.com"}`))
	require.NoError(t, DecodeJSON(req, &p))
	assert.NoError(t, ValidateRequest(p))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@example.com","extra":1}`))
	assert.Error(t, DecodeJSON(req, &p))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(req, &p), ErrEmptyBody)

	assert.Error(t, ValidateRequest(payload{Email: "nope"}))
}

func TestRespondWithException(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	rec := httptest.NewRecorder()

	RespondWithException(rec, req, &domain.APIException{
		StatusCode:    http.StatusConflict,
		ClientMessage: "Email already exists",
		Message:       "internal detail",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Email already exists", body["message"])
	assert.NotContains(t, rec.Body.String(), "internal detail")
	assert.NotEmpty(t, body["trace_id"])
}
