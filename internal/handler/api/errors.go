package api

import (
	"errors"

	"BarPulse/internal/domain/models"
	xhttp "BarPulse/pkg/http"
)

// toAppError maps domain sentinel errors onto HTTP application errors.
// Anything unmapped surfaces as a 500.
func toAppError(err error) *xhttp.AppError {
	switch {
	case errors.Is(err, models.ErrMarketClosed):
		return xhttp.ConflictError(err.Error())
	case errors.Is(err, models.ErrUnsupportedInterval):
		return xhttp.BadRequestError(err.Error())
	case errors.Is(err, models.ErrInvalidRequest):
		return xhttp.BadRequestError(err.Error())
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return xhttp.BadGatewayError(err.Error())
	case errors.Is(err, models.ErrContractNotFound):
		return xhttp.NotFoundError(err.Error())
	case errors.Is(err, models.ErrNoBars):
		return xhttp.NotFoundError(err.Error())
	default:
		return xhttp.InternalError("internal error")
	}
}
