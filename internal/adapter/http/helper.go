package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	applicationDomain "peerlend-backend/internal/domain/application"
	"peerlend-backend/internal/domain/disbursement"
	offerDomain "peerlend-backend/internal/domain/offer"
)

// writeDomainError maps the typed domain errors onto HTTP statuses. Anything
// unrecognized is a storage/connectivity failure: retryable, so 503.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, offerDomain.ErrInvalidInput), errors.Is(err, applicationDomain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, applicationDomain.ErrNotOpen):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, offerDomain.ErrNotFound), errors.Is(err, applicationDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, offerDomain.ErrUnauthorized):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, offerDomain.ErrInvalidTransition),
		errors.Is(err, offerDomain.ErrApplicationAlreadyFunded),
		errors.Is(err, offerDomain.ErrOfferAlreadyResolved):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, disbursement.ErrTransfer):
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "temporarily unavailable"})
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
