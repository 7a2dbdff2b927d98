package api

import (
	"net/http"

	"github.com/phrazzld/scry-testkit/internal/api/shared"
	"github.com/phrazzld/scry-testkit/internal/service"
)

// UserHandler serves the authenticated user's own record.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me handles GET /users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		OrganizationID: user.OrganizationID,
	})
}
