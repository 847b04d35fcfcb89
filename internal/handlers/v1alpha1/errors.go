package v1alpha1

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/kubev2v/fracture-planner/api/v1alpha1"
	"github.com/kubev2v/fracture-planner/internal/estimation"
	"github.com/kubev2v/fracture-planner/internal/handlers/validator"
	"github.com/kubev2v/fracture-planner/internal/service"
	"github.com/kubev2v/fracture-planner/internal/units"
	"github.com/kubev2v/fracture-planner/pkg/requestid"
)

// statusFor maps domain and service errors to HTTP status codes.
func statusFor(err error) int {
	var (
		notFound     *service.ErrResourceNotFound
		invalid      *service.ErrInvalidRequest
		disabled     *service.ErrPersistenceDisabled
		validationEr *validator.ErrValidation
	)

	switch {
	case errors.As(err, &validationEr),
		errors.As(err, &invalid),
		errors.Is(err, estimation.ErrInvalidInput),
		errors.Is(err, estimation.ErrUnsupportedModel),
		errors.Is(err, units.ErrUnknownSystem):
		return http.StatusBadRequest
	case errors.Is(err, estimation.ErrDegenerateResult):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &disabled):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func renderError(w http.ResponseWriter, r *http.Request, err error) {
	renderErrorWithStatus(w, r, statusFor(err), err.Error())
}

func renderErrorWithStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	body := v1alpha1.Error{Message: message, StatusCode: status}
	if id := requestid.FromRequest(r); id != "" {
		body.RequestId = &id
	}
	_ = render.Render(w, r, body)
}
