package ports

import (
	"context"

	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/domain"
)

// Storage is the key-value capability the tracker depends on.
type Storage interface {
	// Save stores the order under id. The last write wins.
	Save(ctx context.Context, id string, order domain.Order) error
	// Get returns the order stored under id, or nil when there is none.
	Get(ctx context.Context, id string) (*domain.Order, error)
	// GetAll returns every stored order in insertion order.
	GetAll(ctx context.Context) ([]domain.Order, error)
}
