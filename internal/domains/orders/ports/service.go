package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/domain"
)

// Tracker exposes the order use cases to adapters.
type Tracker interface {
	Add(ctx context.Context, input types.AddOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error)
}
