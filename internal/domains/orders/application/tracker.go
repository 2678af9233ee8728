package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/ports"
)

// ErrNilStorage is returned when a tracker is built without storage.
var ErrNilStorage = errors.New("order tracker requires a storage implementation")

// Tracker enforces the order creation and update rules on top of a storage.
type Tracker struct {
	storage ports.Storage
}

// NewTracker wires the tracker with its storage.
func NewTracker(storage ports.Storage) (*Tracker, error) {
	if storage == nil {
		return nil, ErrNilStorage
	}
	return &Tracker{storage: storage}, nil
}

// Add validates and persists a new order. Validations that need no storage
// access run first, in the order quantity, status, id, duplicate.
func (t *Tracker) Add(ctx context.Context, input types.AddOrderInput) (*domain.Order, error) {
	if input.Quantity < domain.MinQuantity {
		return nil, domain.NewMinimumQuantityError(input.Quantity)
	}
	status := input.InitialStatus()
	if !status.IsInitial() {
		return nil, domain.NewInvalidInitialStatusError(status)
	}
	if input.OrderID == "" {
		return nil, domain.EmptyOrderIDError{}
	}

	existing, err := t.storage.Get(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.DuplicateOrderError{OrderID: input.OrderID}
	}

	order := domain.Order{
		ID:         input.OrderID,
		ItemName:   input.ItemName,
		Quantity:   input.Quantity,
		CustomerID: input.CustomerID,
		Status:     status,
	}
	if err := t.storage.Save(ctx, order.ID, order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByID returns the order or nil when it does not exist.
func (t *Tracker) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, domain.EmptyOrderIDError{}
	}
	return t.storage.Get(ctx, id)
}

// UpdateStatus replaces the status of an existing order. Any valid status may
// follow any other.
func (t *Tracker) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	if id == "" {
		return nil, domain.EmptyOrderIDError{}
	}
	if !status.IsValid() {
		return nil, domain.NewInvalidStatusError(status)
	}

	existing, err := t.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.OrderNotFoundError{OrderID: id}
	}

	updated := existing.WithStatus(status)
	if err := t.storage.Save(ctx, id, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListAll returns every order in storage order.
func (t *Tracker) ListAll(ctx context.Context) ([]domain.Order, error) {
	orders, err := t.storage.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// ListByStatus returns the orders whose status equals status.
func (t *Tracker) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	if !status.IsValid() {
		return nil, domain.NewInvalidStatusError(status)
	}
	orders, err := t.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if order.Status == status {
			filtered = append(filtered, order)
		}
	}
	return filtered, nil
}

var _ ports.Tracker = (*Tracker)(nil)
