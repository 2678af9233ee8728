package mapper

import (
	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/domain"
)

// Order is the JSON representation returned by the order endpoints.
type Order struct {
	OrderID    string `json:"order_id"`
	ItemName   string `json:"item_name"`
	Quantity   int    `json:"quantity"`
	CustomerID string `json:"customer_id"`
	Status     string `json:"status"`
}

// CreateOrderRequest is the body of POST /api/orders. Pointers distinguish a
// missing field from a zero value; an empty order_id is left to the tracker.
type CreateOrderRequest struct {
	OrderID    *string `json:"order_id" binding:"required"`
	ItemName   *string `json:"item_name" binding:"required"`
	Quantity   *int    `json:"quantity" binding:"required"`
	CustomerID *string `json:"customer_id" binding:"required"`
	Status     *string `json:"status,omitempty"`
}

// UpdateStatusRequest is the body of PUT /api/orders/:id/status.
type UpdateStatusRequest struct {
	NewStatus string `json:"new_status"`
}

// ToAddOrderInput converts a create request into tracker input.
func ToAddOrderInput(req CreateOrderRequest) types.AddOrderInput {
	input := types.AddOrderInput{
		OrderID:    deref(req.OrderID),
		ItemName:   deref(req.ItemName),
		CustomerID: deref(req.CustomerID),
	}
	if req.Quantity != nil {
		input.Quantity = *req.Quantity
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		input.Status = &status
	}
	return input
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	return Order{
		OrderID:    order.ID,
		ItemName:   order.ItemName,
		Quantity:   order.Quantity,
		CustomerID: order.CustomerID,
		Status:     string(order.Status),
	}
}

// FromDomainOrders converts a list, always returning a non-nil slice.
func FromDomainOrders(orders []domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for i := range orders {
		out = append(out, FromDomainOrder(&orders[i]))
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
