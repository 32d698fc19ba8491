package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storefront_backend/internal/orders/domain"
	"storefront_backend/platform/logger"
)

type testConfig struct {
	url string
}

func (c testConfig) GetShippingRatesURL() string            { return c.url }
func (c testConfig) GetShippingRatesAPIKey() string         { return "test-key" }
func (c testConfig) GetShippingRatesTimeout() time.Duration { return 2 * time.Second }

type mapCache struct {
	entries map[string][]domain.ShippingOption
}

func (c *mapCache) Get(_ context.Context, moduleCode string, req domain.RateRequest) ([]domain.ShippingOption, bool, error) {
	opts, ok := c.entries[moduleCode+req.Delivery.PostalCode]
	return opts, ok, nil
}

func (c *mapCache) Set(_ context.Context, moduleCode string, req domain.RateRequest, options []domain.ShippingOption) error {
	c.entries[moduleCode+req.Delivery.PostalCode] = options
	return nil
}

func TestQuoteCallsRatesAPIAndCaches(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, "/rates", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("X-API-Key"))

		var req domain.RateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "CA", req.Delivery.CountryCode)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"options":[{"code":"ground","priceCents":1500,"estimatedDays":4}]}`))
	}))
	defer server.Close()

	cache := &mapCache{entries: map[string][]domain.ShippingOption{}}
	module := New(testConfig{url: server.URL}, cache, logger.NewWithWriter("production", io.Discard))
	defer module.Close()

	req := domain.RateRequest{Delivery: domain.Delivery{CountryCode: "CA", PostalCode: "H2X1Y4"}}
	options, err := module.Quote(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, options, 1)
	require.Equal(t, "ground", options[0].OptionCode)
	require.Equal(t, int64(1500), options[0].PriceCents)

	_, err = module.Quote(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, int32(1), calls.Load())
}

func TestQuoteReportsHTTPErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	module := New(testConfig{url: server.URL}, nil, logger.NewWithWriter("production", io.Discard))
	defer module.Close()

	_, err := module.Quote(context.Background(), domain.RateRequest{})
	require.Error(t, err)
}
