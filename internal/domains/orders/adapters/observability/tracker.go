package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-tracker/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/adapters/observability/tracker"

// Tracker decorates the order tracker with tracing, logging, and metrics.
type Tracker struct {
	inner   ports.Tracker
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics trackerMetrics
}

type Option func(*Tracker)

func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(t *Tracker) {
		t.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(t *Tracker) {
		t.metrics = newTrackerMetrics(m)
	}
}

// New wraps the core order tracker.
func New(inner ports.Tracker, opts ...Option) ports.Tracker {
	t := &Tracker{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newTrackerMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	if t.tracer == nil {
		t.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return t
}

func (t *Tracker) Add(ctx context.Context, input types.AddOrderInput) (*domain.Order, error) {
	status := input.InitialStatus()
	ctx, span := t.tracer.Start(ctx, "OrderTracker.Add",
		trace.WithAttributes(
			attribute.String("order.id", input.OrderID),
			attribute.Int("order.quantity", input.Quantity),
			attribute.String("order.status", string(status)),
		))
	defer span.End()

	t.logInfo(ctx, "adding order", slog.String("order.id", input.OrderID), slog.String("customer.id", input.CustomerID))
	order, err := t.inner.Add(ctx, input)
	if err != nil {
		return nil, t.handleError(ctx, span, err, "failed to add order", slog.String("order.id", input.OrderID))
	}
	t.metrics.recordCreated(ctx, order.Status)
	t.logInfo(ctx, "order added", slog.String("order.id", order.ID), slog.String("status", string(order.Status)))
	return order, nil
}

func (t *Tracker) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := t.tracer.Start(ctx, "OrderTracker.GetByID", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	order, err := t.inner.GetByID(ctx, id)
	if err != nil {
		return nil, t.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	span.SetAttributes(attribute.Bool("order.found", order != nil))
	return order, nil
}

func (t *Tracker) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	ctx, span := t.tracer.Start(ctx, "OrderTracker.UpdateStatus",
		trace.WithAttributes(attribute.String("order.id", id), attribute.String("order.status", string(status))))
	defer span.End()

	t.logInfo(ctx, "updating order status", slog.String("order.id", id), slog.String("status", string(status)))
	order, err := t.inner.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, t.handleError(ctx, span, err, "failed to update order status", slog.String("order.id", id))
	}
	t.metrics.recordStatusUpdate(ctx, order.Status)
	t.logInfo(ctx, "order status updated", slog.String("order.id", order.ID), slog.String("status", string(order.Status)))
	return order, nil
}

func (t *Tracker) ListAll(ctx context.Context) ([]domain.Order, error) {
	ctx, span := t.tracer.Start(ctx, "OrderTracker.ListAll")
	defer span.End()

	orders, err := t.inner.ListAll(ctx)
	if err != nil {
		return nil, t.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, nil
}

func (t *Tracker) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	ctx, span := t.tracer.Start(ctx, "OrderTracker.ListByStatus", trace.WithAttributes(attribute.String("order.status", string(status))))
	defer span.End()

	orders, err := t.inner.ListByStatus(ctx, status)
	if err != nil {
		return nil, t.handleError(ctx, span, err, "failed to list orders by status", slog.String("status", string(status)))
	}
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, nil
}

func (t *Tracker) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if t.logger == nil {
		return
	}
	t.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (t *Tracker) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if t.logger == nil {
		return err
	}
	// Domain rejections log at warn.
	level := slog.LevelError
	if kind := domain.Kind(err); kind != "" {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error.kind", kind))
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	t.logger.LogAttrs(ctx, level, msg, attrs...)
	return err
}

type trackerMetrics struct {
	ordersCreated metric.Int64Counter
	statusUpdates metric.Int64Counter
}

func newTrackerMetrics(m metric.Meter) trackerMetrics {
	if m == nil {
		return trackerMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.tracker.orders_created", metric.WithDescription("Number of orders created"))
	statusUpdates, _ := m.Int64Counter("orders.tracker.status_updates", metric.WithDescription("Number of order status updates"))
	return trackerMetrics{ordersCreated: ordersCreated, statusUpdates: statusUpdates}
}

func (m trackerMetrics) recordCreated(ctx context.Context, status domain.Status) {
	if m.ordersCreated != nil {
		m.ordersCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m trackerMetrics) recordStatusUpdate(ctx context.Context, status domain.Status) {
	if m.statusUpdates != nil {
		m.statusUpdates.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

var _ ports.Tracker = (*Tracker)(nil)
