package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordertypes "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/ports"
)

// PersistOrderActivityName validates and stores a new order through the tracker.
const PersistOrderActivityName = "orders.activities.PersistOrder"

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	tracker orderports.Tracker
}

// NewActivities wires the order tracker into the Temporal activities bundle.
func NewActivities(tracker orderports.Tracker) *Activities {
	return &Activities{tracker: tracker}
}

// PersistOrder adds the order. Tracker rejections are returned as non-retryable
// application errors typed by their kind, carrying the error value as details.
func (a *Activities) PersistOrder(ctx context.Context, input ordertypes.AddOrderInput) (*orderdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.tracker == nil {
		logger.Error("order persist activity not initialized", "orderId", input.OrderID)
		return nil, errors.New("order persist activity not initialized")
	}
	logger.Info("PersistOrder activity started", "orderId", input.OrderID)
	order, err := a.tracker.Add(ctx, input)
	if err != nil {
		if kind := orderdomain.Kind(err); kind != "" {
			logger.Warn("PersistOrder activity rejected order", "orderId", input.OrderID, "kind", kind, "error", err)
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), kind, err, err)
		}
		logger.Error("PersistOrder activity failed", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	logger.Info("PersistOrder activity completed", "orderId", order.ID, "status", string(order.Status))
	return order, nil
}
