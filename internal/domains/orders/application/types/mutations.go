package types

import "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/domain"

// AddOrderInput carries the fields needed to create an order.
type AddOrderInput struct {
	OrderID    string
	ItemName   string
	Quantity   int
	CustomerID string
	// Status is optional; nil means domain.DefaultStatus.
	Status *domain.Status
}

// InitialStatus resolves the status the order will be created with.
func (in AddOrderInput) InitialStatus() domain.Status {
	if in.Status == nil {
		return domain.DefaultStatus
	}
	return *in.Status
}
