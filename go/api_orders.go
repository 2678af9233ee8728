package trackerserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/adapters/http/mapper"
	ordertypes "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-gin-order-tracker/internal/shared/errors"
)

// OrderAPI wires HTTP transport with the order tracker and creation workflows.
type OrderAPI struct {
	tracker   orderports.Tracker
	workflows orderports.WorkflowOrchestrator
	responder *apierrors.ChainedResponder
}

// NewOrderAPI creates an OrderAPI backed by the provided tracker. workflows may be nil.
func NewOrderAPI(tracker orderports.Tracker, workflows orderports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{
		tracker:   tracker,
		workflows: workflows,
		responder: newOrderResponder(),
	}
}

// Post /api/orders
// Create an order
func (api *OrderAPI) AddOrder(c *gin.Context) {
	var payload ordermapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, apierrors.BadRequest(err.Error()))
		return
	}
	order, err := api.createOrder(c.Request.Context(), ordermapper.ToAddOrderInput(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrder(order))
}

func (api *OrderAPI) createOrder(ctx context.Context, input ordertypes.AddOrderInput) (*orderdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.CreateOrder(ctx, input)
	}
	return api.tracker.Add(ctx, input)
}

// Get /api/orders/:orderId
// Find order by ID
func (api *OrderAPI) GetOrder(c *gin.Context) {
	order, err := api.tracker.GetByID(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if order == nil {
		api.responder.Respond(c, apierrors.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Put /api/orders/:orderId/status
// Update the status of an order
func (api *OrderAPI) UpdateOrderStatus(c *gin.Context) {
	var payload ordermapper.UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, apierrors.BadRequest(err.Error()))
		return
	}
	order, err := api.tracker.UpdateStatus(c.Request.Context(), c.Param("orderId"), orderdomain.Status(payload.NewStatus))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Get /api/orders
// List orders, optionally filtered by ?status=
func (api *OrderAPI) ListOrders(c *gin.Context) {
	var (
		orders []orderdomain.Order
		err    error
	)
	if status, ok := c.GetQuery("status"); ok {
		orders, err = api.tracker.ListByStatus(c.Request.Context(), orderdomain.Status(status))
	} else {
		orders, err = api.tracker.ListAll(c.Request.Context())
	}
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}
