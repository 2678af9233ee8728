package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"

	trackerserver "github.com/Apurer/go-gin-order-tracker/go"
	orderobs "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/adapters/observability"
	orderworkflows "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/adapters/workflows"
	orderapp "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/application"
	orderports "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/ports"
	platformmetrics "github.com/Apurer/go-gin-order-tracker/internal/platform/metrics"
	platformobservability "github.com/Apurer/go-gin-order-tracker/internal/platform/observability"
	"github.com/Apurer/go-gin-order-tracker/internal/platform/ratelimit"
)

const serviceName = "order-tracker-api"

// Run boots the order tracker HTTP API with observability, storage, and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	httpMetrics := platformmetrics.NewHTTPMetrics()
	obsOptions := platformobservability.OptionsFromEnv(serviceName)
	obsOptions.MetricsRegisterer = httpMetrics.Registry()
	instruments, shutdown, err := platformobservability.Init(ctx, obsOptions)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	backend := BuildStorage(ctx, cfg, logger)
	defer backend.Close()
	tracker, err := NewTracker(backend.Storage, instruments)
	if err != nil {
		return err
	}

	workflows, closeWorkflows := NewWorkflows(backend, tracker, func() (client.Client, error) {
		return ConnectTemporalClient(cfg, instruments, "temporal-client")
	}, logger)
	defer closeWorkflows()

	router := NewEngine(cfg, tracker, workflows, httpMetrics, logger)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("order tracker API listening", slog.String("addr", server.Addr), slog.String("storage", backend.Driver))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("order tracker API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down order tracker API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// NewTracker builds the order tracker over storage, decorated with tracing, logging, and metrics.
func NewTracker(storage orderports.Storage, instruments *platformobservability.Instruments) (orderports.Tracker, error) {
	core, err := orderapp.NewTracker(storage)
	if err != nil {
		return nil, err
	}
	return orderobs.New(
		core,
		orderobs.WithLogger(instruments.EffectiveLogger()),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	), nil
}

// NewWorkflows picks how orders are created. The Temporal worker persists orders in
// its own process, so the Temporal path is only taken when backend is shared storage
// and dial succeeds; otherwise orders are created inline.
func NewWorkflows(backend StorageBackend, tracker orderports.Tracker, dial func() (client.Client, error), logger *slog.Logger) (orderports.WorkflowOrchestrator, func()) {
	inline := orderworkflows.NewInlineOrderWorkflows(tracker)
	if !backend.Shared() {
		logger.Info("order storage is process-local, creating orders inline", slog.String("storage", backend.Driver))
		return inline, func() {}
	}
	temporalClient, err := dial()
	if err != nil {
		logger.Warn("Temporal workflows unavailable, creating orders inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("storage", backend.Driver))
	return orderworkflows.NewTemporalOrderWorkflows(temporalClient), temporalClient.Close
}

// NewEngine assembles the gin engine: middleware first, then the order routes.
func NewEngine(cfg Config, tracker orderports.Tracker, workflows orderports.WorkflowOrchestrator, httpMetrics *platformmetrics.HTTPMetrics, logger *slog.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName), httpMetrics.Middleware())
	if cfg.RateLimitEnabled() {
		engine.Use(ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst, logger).Middleware())
	}

	handlers := trackerserver.ApiHandleFunctions{
		OrderAPI:  trackerserver.NewOrderAPI(tracker, workflows),
		OpsAPI:    trackerserver.NewOpsAPI(httpMetrics.Handler()),
		StaticAPI: trackerserver.NewStaticAPI(cfg.StaticDir),
	}
	return trackerserver.NewRouterWithGinEngine(engine, handlers)
}
