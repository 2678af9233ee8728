//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	pacttest "github.com/Apurer/go-gin-order-tracker/test/pact"

	trackerserver "github.com/Apurer/go-gin-order-tracker/go"
	ordermemory "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/adapters/memory"
	orderobs "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/adapters/observability"
	orderworkflows "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/adapters/workflows"
	orderapp "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/application"
	ordertypes "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/application/types"
	orderports "github.com/Apurer/go-gin-order-tracker/internal/domains/orders/ports"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestOrderTrackerProviderPact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateOrdersBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedOrder(t, pacttest.ExistingOrderID)
			}
			return nil, nil
		},
		pacttest.StateOrderMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp swaps in a fresh tracker whenever a provider state resets.
type contractProviderApp struct {
	mu      sync.RWMutex
	tracker orderports.Tracker
	engine  *gin.Engine
	server  *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)

	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		engine := app.engine
		app.mu.RUnlock()
		engine.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	core, err := orderapp.NewTracker(ordermemory.NewStorage())
	require.NoError(t, err)
	tracker := orderobs.New(core)

	handlers := trackerserver.ApiHandleFunctions{
		OrderAPI:  trackerserver.NewOrderAPI(tracker, orderworkflows.NewInlineOrderWorkflows(tracker)),
		OpsAPI:    trackerserver.NewOpsAPI(http.NotFoundHandler()),
		StaticAPI: trackerserver.NewStaticAPI(t.TempDir()),
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine = trackerserver.NewRouterWithGinEngine(engine, handlers)

	a.mu.Lock()
	a.tracker = tracker
	a.engine = engine
	a.mu.Unlock()
}

func (a *contractProviderApp) seedOrder(t testing.TB, id string) {
	t.Helper()
	a.mu.RLock()
	tracker := a.tracker
	a.mu.RUnlock()
	_, err := tracker.Add(context.Background(), ordertypes.AddOrderInput{
		OrderID:    id,
		ItemName:   "Sweater",
		Quantity:   2,
		CustomerID: "pact-customer",
	})
	require.NoError(t, err)
}
