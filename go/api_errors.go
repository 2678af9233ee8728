package trackerserver

import (
	"errors"

	orderdomain "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/domain"
	apierrors "github.com/Apurer/go-gin-order-tracker/internal/shared/errors"
)

func newOrderResponder() *apierrors.ChainedResponder {
	return apierrors.NewChainedResponder(nil, mapOrderError)
}

// mapOrderError turns tracker errors into client errors carrying the tracker message.
func mapOrderError(err error) (apierrors.APIError, bool) {
	switch {
	case errors.Is(err, orderdomain.ErrValidation):
		return apierrors.BadRequest(err.Error()), true
	case errors.Is(err, orderdomain.ErrConflict):
		return apierrors.Conflict(err.Error()), true
	case errors.Is(err, orderdomain.ErrNotFound):
		return apierrors.NotFound(err.Error()), true
	default:
		return apierrors.APIError{}, false
	}
}
