package shared

import (
	"encoding/json"
	"net/http"

	"github.com/phrazzld/scry-testkit/internal/domain"
	"github.com/phrazzld/scry-testkit/internal/platform/logger"
)

// ErrorResponse is the body of every error response. Message is the
// exception's client message.
type ErrorResponse struct {
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithException writes exc as an error response. Only the client
// message leaves the process.
func RespondWithException(w http.ResponseWriter, r *http.Request, exc *domain.APIException) {
	RespondWithJSON(w, r, exc.StatusCode, ErrorResponse{
		Message: exc.ClientMessage,
		TraceID: GetTraceID(r.Context()),
	})
}
