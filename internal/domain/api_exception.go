package domain

import (
	"context"
	"fmt"
	"net/http"

	"github.com/phrazzld/scry-testkit/internal/platform/logger"
)

// Defaults applied when an exception is raised without explicit values.
const (
	DefaultExceptionStatus        = http.StatusBadRequest
	DefaultExceptionClientMessage = "Error occurred. Try again."
)

// APIException is an error carrying the HTTP status and the client-facing
// message a handler should respond with. Declared as a literal it doubles as
// the expected-value template for response checks.
type APIException struct {
	StatusCode    int
	ClientMessage string
	// Message is the internal description; it is logged, never sent.
	Message string
}

// ExceptionOption customizes an exception created by NewAPIException.
type ExceptionOption func(*APIException)

// WithStatus sets the HTTP status code.
func WithStatus(code int) ExceptionOption {
	return func(e *APIException) {
		e.StatusCode = code
	}
}

// WithClientMessage sets the message returned to API clients.
func WithClientMessage(message string) ExceptionOption {
	return func(e *APIException) {
		e.ClientMessage = message
	}
}

// NewAPIException raises an exception and logs it: client errors at WARN,
// server errors at ERROR. An empty message falls back to the client message.
func NewAPIException(ctx context.Context, message string, opts ...ExceptionOption) *APIException {
	e := &APIException{
		StatusCode:    DefaultExceptionStatus,
		ClientMessage: DefaultExceptionClientMessage,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Message = message
	if e.Message == "" {
		e.Message = e.ClientMessage
	}

	log := logger.FromContext(ctx)
	switch {
	case e.StatusCode >= 500:
		log.Error("api exception raised", "status_code", e.StatusCode, "message", e.Message)
	case e.StatusCode >= 400:
		log.Warn("api exception raised", "status_code", e.StatusCode, "message", e.Message)
	}
	return e
}

// Raise returns a logged copy of the template e with an internal message.
func (e APIException) Raise(ctx context.Context, message string) *APIException {
	return NewAPIException(ctx, message, WithStatus(e.StatusCode), WithClientMessage(e.ClientMessage))
}

// Error implements the error interface.
func (e *APIException) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.ClientMessage
	}
	return fmt.Sprintf("api exception (%d): %s", e.StatusCode, msg)
}

// Is reports whether target is an exception with the same status and client
// message, so raised copies match their template with errors.Is.
func (e *APIException) Is(target error) bool {
	t, ok := target.(*APIException)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode && e.ClientMessage == t.ClientMessage
}
