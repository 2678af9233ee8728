package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusSets(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing} {
		assert.True(t, s.IsInitial(), s)
		assert.True(t, s.IsValid(), s)
	}
	for _, s := range []Status{StatusShipped, StatusDelivered, StatusCancelled} {
		assert.False(t, s.IsInitial(), s)
		assert.True(t, s.IsValid(), s)
	}
	for _, s := range []Status{"", "invalid", "PENDING"} {
		assert.False(t, s.IsValid(), s)
		assert.False(t, s.IsInitial(), s)
	}
}

func TestStatusSetsAreCopies(t *testing.T) {
	statuses := ValidStatuses()
	statuses[0] = "mutated"
	require.Equal(t, StatusPending, ValidStatuses()[0])
}

func TestWithStatus_LeavesOtherFieldsUntouched(t *testing.T) {
	original := Order{ID: "o1", ItemName: "jacket", Quantity: 1, CustomerID: "c1", Status: StatusPending}
	updated := original.WithStatus(StatusShipped)

	require.Equal(t, StatusPending, original.Status)
	require.Equal(t, Order{ID: "o1", ItemName: "jacket", Quantity: 1, CustomerID: "c1", Status: StatusShipped}, updated)
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{EmptyOrderIDError{}, "'order_id' cannot be empty."},
		{NewMinimumQuantityError(0), "Minimum quantity value allowed 1, 0 given."},
		{NewMinimumQuantityError(-1), "Minimum quantity value allowed 1, -1 given."},
		{NewInvalidInitialStatusError(StatusShipped), "Invalid initial status, allowed 'pending, processing' but 'shipped' given."},
		{NewInvalidStatusError("invalid"), "Not a valid status. Allowed values 'pending, processing, shipped, delivered, cancelled' but 'invalid' given."},
		{DuplicateOrderError{OrderID: "o1"}, "Order with ID 'o1' already exists."},
		{OrderNotFoundError{OrderID: "o1"}, "Order with ID 'o1' not found."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestErrorCategories(t *testing.T) {
	for _, err := range []error{
		EmptyOrderIDError{},
		NewMinimumQuantityError(0),
		NewInvalidInitialStatusError(StatusDelivered),
		NewInvalidStatusError("nope"),
	} {
		assert.ErrorIs(t, err, ErrValidation)
		assert.NotErrorIs(t, err, ErrConflict)
		assert.NotErrorIs(t, err, ErrNotFound)
	}
	assert.ErrorIs(t, DuplicateOrderError{OrderID: "o1"}, ErrConflict)
	assert.ErrorIs(t, OrderNotFoundError{OrderID: "o1"}, ErrNotFound)

	wrapped := fmt.Errorf("context: %w", DuplicateOrderError{OrderID: "o1"})
	assert.ErrorIs(t, wrapped, ErrConflict)
}

func TestKind(t *testing.T) {
	assert.Equal(t, KindEmptyOrderID, Kind(EmptyOrderIDError{}))
	assert.Equal(t, KindMinimumQuantity, Kind(NewMinimumQuantityError(0)))
	assert.Equal(t, KindInvalidInitialStatus, Kind(NewInvalidInitialStatusError(StatusShipped)))
	assert.Equal(t, KindInvalidStatus, Kind(NewInvalidStatusError("x")))
	assert.Equal(t, KindDuplicateOrder, Kind(fmt.Errorf("wrapped: %w", DuplicateOrderError{OrderID: "o1"})))
	assert.Equal(t, KindOrderNotFound, Kind(OrderNotFoundError{OrderID: "o1"}))
	assert.Empty(t, Kind(errors.New("boom")))
	assert.Empty(t, Kind(nil))
}
