package controller

import (
	"errors"
	"net/http"

	"github.com/dreamzz-lol/gatekeeper/model"
)

// httpStatus maps the error taxonomy onto HTTP statuses. Anything outside
// the taxonomy degrades to a generic internal error.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, model.NotFoundErr), errors.Is(err, model.NotReadyErr):
		return http.StatusNotFound
	case errors.Is(err, model.UnauthorizedErr), errors.Is(err, model.ExpiredErr):
		return http.StatusForbidden
	case errors.Is(err, model.AlreadyConsumedErr):
		return http.StatusGone
	case errors.Is(err, model.InvalidInputErr):
		return http.StatusBadRequest
	case errors.Is(err, model.UpstreamErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
