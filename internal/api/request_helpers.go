package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-testkit/internal/api/shared"
	"github.com/phrazzld/scry-testkit/internal/domain"
)

// requireUserID extracts the authenticated user or writes a 401.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		shared.RespondWithException(w, r,
			shared.AuthenticationRequiredException.Raise(r.Context(), "user id missing from context"))
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a chi URL parameter as a UUID. An unparsable id cannot name
// an existing record, so it is reported as notFound.
func pathUUID(w http.ResponseWriter, r *http.Request, param string, notFound domain.APIException) (uuid.UUID, bool) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithException(w, r, notFound.Raise(r.Context(), fmt.Sprintf("invalid %s %q", param, raw)))
		return uuid.Nil, false
	}
	return id, true
}

// queryInt reads an optional positive integer query parameter.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("query parameter %s must be a positive integer", name)
	}
	return n, nil
}
