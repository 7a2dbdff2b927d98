package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scry-testkit/internal/api/shared"
	"github.com/phrazzld/scry-testkit/internal/domain"
	"github.com/phrazzld/scry-testkit/internal/redact"
	"github.com/phrazzld/scry-testkit/internal/service"
	"github.com/phrazzld/scry-testkit/internal/service/auth"
	"github.com/phrazzld/scry-testkit/internal/store"
)

// MapErrorToException picks the exception template for err. Raised
// exceptions are returned unchanged.
func MapErrorToException(err error) domain.APIException {
	var exc *domain.APIException
	if errors.As(err, &exc) {
		return *exc
	}

	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return shared.InvalidCredentialsException
	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return shared.InvalidRefreshTokenException
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return shared.InvalidTokenException

	// Foreign notes look missing
	case errors.Is(err, service.ErrNotOwned),
		errors.Is(err, store.ErrNoteNotFound):
		return shared.NoteNotFoundException
	case errors.Is(err, store.ErrNotFound):
		return shared.NotFoundException

	case errors.Is(err, store.ErrEmailExists):
		return shared.EmailExistsException

	case errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &validationErrs),
		errors.Is(err, domain.ErrInvalidPagination):
		return shared.ValidationException
	case errors.Is(err, shared.ErrEmptyBody):
		return shared.InvalidRequestException

	default:
		return shared.InternalException
	}
}

// HandleAPIError raises the exception matching err and writes it.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	var exc *domain.APIException
	if errors.As(err, &exc) {
		shared.RespondWithException(w, r, exc)
		return
	}

	template := MapErrorToException(err)
	shared.RespondWithException(w, r, template.Raise(r.Context(), redact.Error(err)))
}
