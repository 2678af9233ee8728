package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/domain"
)

// WorkflowOrchestrator runs order creation, either inline or on a durable engine.
type WorkflowOrchestrator interface {
	CreateOrder(ctx context.Context, input types.AddOrderInput) (*domain.Order, error)
}
