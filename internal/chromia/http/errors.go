package http

import (
	"errors"
	"net/http"

	"github.com/Brickle-Pickle/Chromia/internal/chromia/service"
	"github.com/Brickle-Pickle/Chromia/pkg/chromiasdk"
	"github.com/Brickle-Pickle/Chromia/pkg/slogx"
)

// writeServiceError maps service errors onto the wire error shape.
// Anything unmapped is a 500 with the detail kept out of the response.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrMissingCredentials),
		errors.Is(err, service.ErrMissingColorFields),
		errors.Is(err, service.ErrColorNameTooLong),
		errors.Is(err, service.ErrInvalidHexColor),
		errors.Is(err, service.ErrInvalidPalette):
		chromiasdk.ErrValidation.WithMessage(err.Error()).WriteError(w)

	case errors.Is(err, service.ErrUsernameTaken):
		chromiasdk.ErrDuplicateUser.WriteError(w)

	case errors.Is(err, service.ErrInvalidCredentials):
		chromiasdk.ErrInvalidCredentials.WriteError(w)

	case errors.Is(err, service.ErrUserNotFound):
		chromiasdk.ErrNotFound.WithMessage("user not found").WriteError(w)

	case errors.Is(err, service.ErrPaletteNotFound):
		chromiasdk.ErrNotFound.WithMessage("palette not found").WriteError(w)

	case errors.Is(err, service.ErrNotPaletteOwner):
		chromiasdk.ErrForbidden.WriteError(w)

	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", "err", err)
		chromiasdk.ErrServerError.WriteError(w)
	}
}
