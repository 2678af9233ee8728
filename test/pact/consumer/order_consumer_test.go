//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-order-tracker/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type orderPayload struct {
	OrderID    string `json:"order_id"`
	ItemName   string `json:"item_name"`
	Quantity   int    `json:"quantity"`
	CustomerID string `json:"customer_id"`
	Status     string `json:"status"`
}

type apiError struct {
	status  int
	message string
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.message, e.status)
}

func TestOrderDashboardContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	statusTerm := "pending|processing|shipped|delivered|cancelled"
	orderMatcher := func(id, status string) matchers.Map {
		return matchers.Map{
			"order_id":    matchers.S(id),
			"item_name":   matchers.Like("Sweater"),
			"quantity":    matchers.Like(2),
			"customer_id": matchers.Like("pact-customer"),
			"status":      matchers.Term(status, statusTerm),
		}
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateOrdersBaseline).
		UponReceiving("a request to create an order").
		WithRequest("POST", "/api/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleOrderPayload(pacttest.NewOrderID))
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(orderMatcher(pacttest.NewOrderID, "pending"))
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to fetch an existing order").
		WithRequest("GET", "/api/orders/"+pacttest.ExistingOrderID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(orderMatcher(pacttest.ExistingOrderID, "pending"))
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to ship an existing order").
		WithRequest("PUT", "/api/orders/"+pacttest.ExistingOrderID+"/status", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(map[string]any{"new_status": "shipped"})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(orderMatcher(pacttest.ExistingOrderID, "shipped"))
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to list pending orders").
		WithRequest("GET", "/api/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("status", matchers.S("pending"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.EachLike(orderMatcher(pacttest.ExistingOrderID, "pending"), 1))
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a request for a missing order").
		WithRequest("GET", "/api/orders/"+pacttest.MissingOrderID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"error": matchers.S("Not found")})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newOrderClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		created, err := client.CreateOrder(ctx, orderPayload{
			OrderID:    pacttest.NewOrderID,
			ItemName:   "Sweater",
			Quantity:   2,
			CustomerID: "pact-customer",
			Status:     "pending",
		})
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if created.OrderID != pacttest.NewOrderID {
			return fmt.Errorf("expected order id %s, got %+v", pacttest.NewOrderID, created)
		}

		fetched, err := client.GetOrder(ctx, pacttest.ExistingOrderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if fetched.OrderID != pacttest.ExistingOrderID {
			return fmt.Errorf("expected order id %s, got %+v", pacttest.ExistingOrderID, fetched)
		}

		shipped, err := client.UpdateStatus(ctx, pacttest.ExistingOrderID, "shipped")
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if shipped.Status != "shipped" {
			return fmt.Errorf("expected shipped, got %s", shipped.Status)
		}

		pending, err := client.ListByStatus(ctx, "pending")
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}
		if len(pending) == 0 {
			return fmt.Errorf("expected at least one pending order")
		}

		_, err = client.GetOrder(ctx, pacttest.MissingOrderID)
		apiErr, ok := err.(apiError)
		if !ok || apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404 for order %s, got %v", pacttest.MissingOrderID, err)
		}
		return nil
	})
	require.NoError(t, err)
}

type orderClient struct {
	baseURL    string
	httpClient *http.Client
}

func newOrderClient(config pactconsumer.MockServerConfig) *orderClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &orderClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *orderClient) CreateOrder(ctx context.Context, order orderPayload) (*orderPayload, error) {
	var created orderPayload
	return &created, c.do(ctx, http.MethodPost, "/api/orders", order, &created)
}

func (c *orderClient) GetOrder(ctx context.Context, id string) (*orderPayload, error) {
	var order orderPayload
	return &order, c.do(ctx, http.MethodGet, "/api/orders/"+id, nil, &order)
}

func (c *orderClient) UpdateStatus(ctx context.Context, id, status string) (*orderPayload, error) {
	var order orderPayload
	return &order, c.do(ctx, http.MethodPut, "/api/orders/"+id+"/status", map[string]string{"new_status": status}, &order)
}

func (c *orderClient) ListByStatus(ctx context.Context, status string) ([]orderPayload, error) {
	var orders []orderPayload
	return orders, c.do(ctx, http.MethodGet, "/api/orders?status="+status, nil, &orders)
}

func (c *orderClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&payload)
		return apiError{status: res.StatusCode, message: payload.Error}
	}
	return json.NewDecoder(res.Body).Decode(out)
}
