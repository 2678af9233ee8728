package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	ordertypes "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/ports"
	orderworkflows "github.com/Apurer/go-gin-order-tracker/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderCreationTaskQueue}
}

// CreateOrder starts the Temporal workflow that creates an order and waits for its result.
// Tracker rejections come back as the same domain error types the inline path returns.
func (o *TemporalOrderWorkflows) CreateOrder(ctx context.Context, input ordertypes.AddOrderInput) (*orderdomain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	options := client.StartWorkflowOptions{
		ID:        buildOrderCreationWorkflowID(input),
		TaskQueue: o.taskQueue,

		// A running creation for the same order must fail rather than attach to it.
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderCreationWorkflowName,
		orderworkflows.OrderCreationWorkflowInput{Command: input, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil, orderdomain.DuplicateOrderError{OrderID: input.OrderID}
		}
		return nil, fmt.Errorf("start order creation workflow: %w", err)
	}
	var order orderdomain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, decodeOrderError(err)
	}
	return &order, nil
}

// InlineOrderWorkflows executes the tracker directly without Temporal, useful for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	tracker ports.Tracker
}

// NewInlineOrderWorkflows wraps the tracker for synchronous execution.
func NewInlineOrderWorkflows(tracker ports.Tracker) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{tracker: tracker}
}

// CreateOrder delegates to the tracker without durable orchestration.
func (o *InlineOrderWorkflows) CreateOrder(ctx context.Context, input ordertypes.AddOrderInput) (*orderdomain.Order, error) {
	if o == nil || o.tracker == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.tracker.Add(ctx, input)
}

// buildOrderCreationWorkflowID keys the workflow by order id so concurrent creations of
// one order collide. Empty ids get a unique key and are rejected by the tracker.
func buildOrderCreationWorkflowID(input ordertypes.AddOrderInput) string {
	if input.OrderID == "" {
		return fmt.Sprintf("order-creation-anonymous-%s", uuid.NewString())
	}
	return fmt.Sprintf("order-creation-%s", input.OrderID)
}

// decodeOrderError rebuilds a domain error from the application error raised by the
// persist activity. Errors of any other shape are returned unchanged.
func decodeOrderError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	var decoded error
	switch appErr.Type() {
	case orderdomain.KindEmptyOrderID:
		return orderdomain.EmptyOrderIDError{}
	case orderdomain.KindMinimumQuantity:
		decoded = decodeDetails[orderdomain.MinimumQuantityError](appErr)
	case orderdomain.KindInvalidInitialStatus:
		decoded = decodeDetails[orderdomain.InvalidInitialStatusError](appErr)
	case orderdomain.KindInvalidStatus:
		decoded = decodeDetails[orderdomain.InvalidStatusError](appErr)
	case orderdomain.KindDuplicateOrder:
		decoded = decodeDetails[orderdomain.DuplicateOrderError](appErr)
	case orderdomain.KindOrderNotFound:
		decoded = decodeDetails[orderdomain.OrderNotFoundError](appErr)
	}
	if decoded == nil {
		return err
	}
	return decoded
}

func decodeDetails[T error](appErr *temporal.ApplicationError) error {
	if !appErr.HasDetails() {
		return nil
	}
	var target T
	if err := appErr.Details(&target); err != nil {
		return nil
	}
	return target
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return spanCtx.TraceID().String()
}
