package shared

import (
	"net/http"

	"github.com/phrazzld/scry-testkit/internal/domain"
)

// Exception templates raised by handlers and middleware. Tests pass the same
// values to the response checker.
var (
	InvalidRequestException = domain.APIException{
		StatusCode:    http.StatusBadRequest,
		ClientMessage: "Invalid request format",
	}
	ValidationException = domain.APIException{
		StatusCode:    http.StatusBadRequest,
		ClientMessage: "Validation failed",
	}
	AuthenticationRequiredException = domain.APIException{
		StatusCode:    http.StatusUnauthorized,
		ClientMessage: "Authorization header required",
	}
	InvalidTokenException = domain.APIException{
		StatusCode:    http.StatusUnauthorized,
		ClientMessage: "Invalid token",
	}
	InvalidCredentialsException = domain.APIException{
		StatusCode:    http.StatusUnauthorized,
		ClientMessage: "Invalid credentials",
	}
	InvalidRefreshTokenException = domain.APIException{
		StatusCode:    http.StatusUnauthorized,
		ClientMessage: "Invalid refresh token",
	}
	AnonymousIDRequiredException = domain.APIException{
		StatusCode:    http.StatusUnauthorized,
		ClientMessage: "Anonymous visitor id required",
	}
	NotFoundException = domain.APIException{
		StatusCode:    http.StatusNotFound,
		ClientMessage: "Not found",
	}
	NoteNotFoundException = domain.APIException{
		StatusCode:    http.StatusNotFound,
		ClientMessage: "Note not found",
	}
	EmailExistsException = domain.APIException{
		StatusCode:    http.StatusConflict,
		ClientMessage: "Email already exists",
	}
	InternalException = domain.APIException{
		StatusCode:    http.StatusInternalServerError,
		ClientMessage: "Internal server error",
	}
)
