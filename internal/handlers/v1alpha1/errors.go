package v1alpha1

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	api "github.com/kubev2v/patchcord-planner/api/v1alpha1"
	"github.com/kubev2v/patchcord-planner/internal/cable"
	"github.com/kubev2v/patchcord-planner/internal/handlers/validator"
	"github.com/kubev2v/patchcord-planner/internal/service"
	"github.com/kubev2v/patchcord-planner/pkg/requestid"
)

// statusFor maps service errors to HTTP status codes. Anything the caller
// can fix by changing the request is a 400.
func statusFor(err error) int {
	var (
		unknownRack *service.ErrUnknownRack
		invalidReq  *service.ErrInvalidRequest
		location    *cable.ErrInvalidLocation
		config      *cable.ErrInvalidConfig
		validation  *validator.ErrValidation
	)
	switch {
	case errors.As(err, &unknownRack),
		errors.As(err, &invalidReq),
		errors.As(err, &location),
		errors.As(err, &config),
		errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, api.Error{
		Message:   message,
		RequestID: requestid.FromRequest(r),
	})
}
