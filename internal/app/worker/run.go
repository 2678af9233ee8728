package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/sdk/activity"
	temporalworker "go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-order-tracker/internal/app/api"
	platformobservability "github.com/Apurer/go-gin-order-tracker/internal/platform/observability"
	orderactivities "github.com/Apurer/go-gin-order-tracker/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-order-tracker/internal/platform/temporal/workflows/orders"
)

const serviceName = "order-tracker-worker"

// ErrProcessLocalStorage is returned when the worker would persist orders where the API cannot read them.
var ErrProcessLocalStorage = errors.New("order worker requires postgres or redis storage")

// Registrar is the subset of a Temporal worker used to register order handlers.
type Registrar interface {
	RegisterWorkflowWithOptions(w interface{}, options workflow.RegisterOptions)
	RegisterActivityWithOptions(a interface{}, options activity.RegisterOptions)
}

// Register binds the order creation workflow and its activities by their public names.
func Register(r Registrar, activities *orderactivities.Activities) {
	r.RegisterWorkflowWithOptions(orderworkflows.OrderCreationWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderCreationWorkflowName})
	r.RegisterActivityWithOptions(activities.PersistOrder, activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})
}

// Run starts the Temporal worker serving the order creation task queue until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := api.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.TemporalDisabled {
		return api.ErrTemporalDisabled
	}
	if !api.IsSharedStorage(cfg.StorageDriver) {
		return fmt.Errorf("%w: STORAGE_DRIVER=%s", ErrProcessLocalStorage, cfg.StorageDriver)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.OptionsFromEnv(serviceName))
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

	backend := api.BuildStorage(ctx, cfg, logger)
	defer backend.Close()
	if !backend.Shared() {
		return fmt.Errorf("%w: %s storage unavailable", ErrProcessLocalStorage, cfg.StorageDriver)
	}
	tracker, err := api.NewTracker(backend.Storage, instruments)
	if err != nil {
		return err
	}

	temporalClient, err := api.ConnectTemporalClient(cfg, instruments, "temporal-worker")
	if err != nil {
		return fmt.Errorf("failed to create Temporal client: %w", err)
	}
	defer temporalClient.Close()

	w := temporalworker.New(temporalClient, orderworkflows.OrderCreationTaskQueue, temporalworker.Options{})
	Register(w, orderactivities.NewActivities(tracker))

	stop := make(chan interface{})
	go func() {
		<-ctx.Done()
		close(stop)
	}()

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderCreationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(stop); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Temporal worker stopped")
	return nil
}
