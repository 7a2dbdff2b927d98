package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-testkit/internal/api/shared"
)

// SessionCookieName is the cookie the visitor endpoint hands out.
const SessionCookieName = "session"

// VisitorHandler serves anonymous visitors identified by an external id cookie.
type VisitorHandler struct {
	anonymousCookieName string
}

// NewVisitorHandler creates a VisitorHandler reading the given cookie.
func NewVisitorHandler(anonymousCookieName string) *VisitorHandler {
	return &VisitorHandler{anonymousCookieName: anonymousCookieName}
}

// Me handles GET /visitors/me.
func (h *VisitorHandler) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.anonymousCookieName)
	if err != nil || cookie.Value == "" {
		shared.RespondWithException(w, r,
			shared.AnonymousIDRequiredException.Raise(r.Context(), "anonymous id cookie missing"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    uuid.NewString(),
		Path:     "/",
		HttpOnly: true,
	})
	shared.RespondWithJSON(w, r, http.StatusOK, VisitorResponse{VisitorID: cookie.Value})
}
