package domain

import (
	"errors"
	"fmt"
)

// Categories reported through errors.Is by the typed errors below.
var (
	ErrValidation = errors.New("order validation failed")
	ErrConflict   = errors.New("order conflict")
	ErrNotFound   = errors.New("order not found")
)

// Error kinds, used wherever an error has to cross a serialization boundary.
const (
	KindEmptyOrderID         = "EmptyOrderIdError"
	KindMinimumQuantity      = "MinimumQuantityError"
	KindInvalidInitialStatus = "InvalidInitialStatusError"
	KindInvalidStatus        = "InvalidStatusError"
	KindDuplicateOrder       = "DuplicateOrderError"
	KindOrderNotFound        = "OrderNotFoundError"
)

// EmptyOrderIDError is returned when an operation receives an empty order id.
type EmptyOrderIDError struct{}

func (EmptyOrderIDError) Error() string { return "'order_id' cannot be empty." }

func (EmptyOrderIDError) Is(target error) bool { return target == ErrValidation }

// MinimumQuantityError is returned when an order is created below MinQuantity.
type MinimumQuantityError struct {
	MinAllowed int `json:"minAllowed"`
	Given      int `json:"given"`
}

func (e MinimumQuantityError) Error() string {
	return fmt.Sprintf("Minimum quantity value allowed %d, %d given.", e.MinAllowed, e.Given)
}

func (MinimumQuantityError) Is(target error) bool { return target == ErrValidation }

// InvalidInitialStatusError is returned when an order is created outside the initial status set.
type InvalidInitialStatusError struct {
	Allowed []Status `json:"allowed"`
	Given   Status   `json:"given"`
}

func (e InvalidInitialStatusError) Error() string {
	return fmt.Sprintf("Invalid initial status, allowed '%s' but '%s' given.", joinStatuses(e.Allowed), e.Given)
}

func (InvalidInitialStatusError) Is(target error) bool { return target == ErrValidation }

// InvalidStatusError is returned when an update or filter uses an unknown status.
type InvalidStatusError struct {
	Allowed []Status `json:"allowed"`
	Given   Status   `json:"given"`
}

func (e InvalidStatusError) Error() string {
	return fmt.Sprintf("Not a valid status. Allowed values '%s' but '%s' given.", joinStatuses(e.Allowed), e.Given)
}

func (InvalidStatusError) Is(target error) bool { return target == ErrValidation }

// DuplicateOrderError is returned when an order id is already taken.
type DuplicateOrderError struct {
	OrderID string `json:"orderId"`
}

func (e DuplicateOrderError) Error() string {
	return fmt.Sprintf("Order with ID '%s' already exists.", e.OrderID)
}

func (DuplicateOrderError) Is(target error) bool { return target == ErrConflict }

// OrderNotFoundError is returned when a mutation targets an unknown order.
type OrderNotFoundError struct {
	OrderID string `json:"orderId"`
}

func (e OrderNotFoundError) Error() string {
	return fmt.Sprintf("Order with ID '%s' not found.", e.OrderID)
}

func (OrderNotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewMinimumQuantityError reports the given quantity against MinQuantity.
func NewMinimumQuantityError(given int) MinimumQuantityError {
	return MinimumQuantityError{MinAllowed: MinQuantity, Given: given}
}

// NewInvalidInitialStatusError reports the given status against the initial set.
func NewInvalidInitialStatusError(given Status) InvalidInitialStatusError {
	return InvalidInitialStatusError{Allowed: InitialStatuses(), Given: given}
}

// NewInvalidStatusError reports the given status against the valid set.
func NewInvalidStatusError(given Status) InvalidStatusError {
	return InvalidStatusError{Allowed: ValidStatuses(), Given: given}
}

// Kind returns the kind of a tracker error, or "" when err is not one.
func Kind(err error) string {
	var (
		emptyID   EmptyOrderIDError
		minQty    MinimumQuantityError
		initial   InvalidInitialStatusError
		invalid   InvalidStatusError
		duplicate DuplicateOrderError
		notFound  OrderNotFoundError
	)
	switch {
	case errors.As(err, &emptyID):
		return KindEmptyOrderID
	case errors.As(err, &minQty):
		return KindMinimumQuantity
	case errors.As(err, &initial):
		return KindInvalidInitialStatus
	case errors.As(err, &invalid):
		return KindInvalidStatus
	case errors.As(err, &duplicate):
		return KindDuplicateOrder
	case errors.As(err, &notFound):
		return KindOrderNotFound
	default:
		return ""
	}
}
