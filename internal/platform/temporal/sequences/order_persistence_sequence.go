package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-gin-order-tracker/internal/platform/temporal/activities/orders"
)

// PersistOptions are the activity options used to store an order. Tracker
// rejections are non-retryable, so only backend failures are retried.
var PersistOptions = workflow.ActivityOptions{
	StartToCloseTimeout: time.Minute,
	RetryPolicy: &temporal.RetryPolicy{
		InitialInterval:    2 * time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    10 * time.Second,
		MaximumAttempts:    5,
	},
}

// RunOrderPersistenceSequence executes the activities needed to persist a new order.
func RunOrderPersistenceSequence(ctx workflow.Context, input ordertypes.AddOrderInput) (*orderdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order persistence sequence started", "orderId", input.OrderID)

	var order orderdomain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, PersistOptions), orderactivities.PersistOrderActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("order persistence sequence failed", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	logger.Info("order persistence sequence persisted", "orderId", order.ID)
	return &order, nil
}
