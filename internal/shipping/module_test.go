package shipping

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	cartrepo "storefront_backend/internal/cart/repository"
	customerrepo "storefront_backend/internal/customer/repository"
	apphttp "storefront_backend/internal/http"
	"storefront_backend/internal/labels"
	"storefront_backend/internal/orders/domain"
	"storefront_backend/internal/pricing"
	"storefront_backend/internal/reference"
	"storefront_backend/internal/shipping/service"
	"storefront_backend/internal/shipping/transport"
	"storefront_backend/internal/store"
	storerepo "storefront_backend/internal/store/repository"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/httpkit"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/validator"
)

type memCarts struct{}

func (memCarts) GetCartByCode(_ context.Context, code string, _ int64) (cartrepo.ShoppingCart, error) {
	owner := int64(1)
	switch code {
	case "alice-cart":
		return cartrepo.ShoppingCart{ID: 1, Code: code, CustomerID: &owner, Items: []cartrepo.CartItem{{SKU: "A", Quantity: 1, UnitPriceCents: 500}}}, nil
	case "guest-cart":
		return cartrepo.ShoppingCart{ID: 2, Code: code, Items: []cartrepo.CartItem{{SKU: "A", Quantity: 1, UnitPriceCents: 500}}}, nil
	}
	return cartrepo.ShoppingCart{}, apperr.NotFound("cart not found")
}

type memCustomers struct{}

func (memCustomers) GetByNick(_ context.Context, nick string, _ int64) (customerrepo.Customer, error) {
	switch nick {
	case "alice":
		return customerrepo.Customer{ID: 1, Nick: nick}, nil
	case "bob":
		return customerrepo.Customer{ID: 2, Nick: nick}, nil
	}
	return customerrepo.Customer{}, apperr.NotFound("customer not found")
}

type stubOrders struct {
	err      error
	panicMsg string
}

func (s stubOrders) GetShippingQuote(_ context.Context, c customerrepo.Customer, _ cartrepo.ShoppingCart, _ *storerepo.MerchantStore, _ *storerepo.Language) (*domain.ShippingQuote, error) {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.err != nil {
		return nil, s.err
	}
	opt := domain.ShippingOption{ShippingModuleCode: "weightBased", OptionCode: "standard", OptionID: "weightBased.standard", PriceCents: 1000}
	return &domain.ShippingQuote{
		ShippingModuleCode: "weightBased",
		Options:            []domain.ShippingOption{opt},
		SelectedOption:     &opt,
		Delivery:           domain.Delivery{CountryCode: c.Delivery.CountryCode},
	}, nil
}

func (s stubOrders) GetShippingSummary(_ context.Context, quote *domain.ShippingQuote, _ *storerepo.MerchantStore, _ *storerepo.Language) (*domain.ShippingSummary, error) {
	return &domain.ShippingSummary{
		ShippingCents:  quote.SelectedOption.PriceCents,
		ShippingModule: quote.ShippingModuleCode,
		ShippingOption: quote.SelectedOption.OptionID,
		Delivery:       quote.Delivery,
	}, nil
}

func newTestEngine(t *testing.T, orders service.QuoteProvider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bundle, err := labels.Load("")
	require.NoError(t, err)
	log := logger.NewWithWriter("production", io.Discard)
	module := NewModule(service.Deps{
		Carts:     memCarts{},
		Customers: memCustomers{},
		Countries: reference.NewService(),
		Orders:    orders,
		Pricing:   pricing.NewService(),
	}, bundle, validator.New(), log)

	scope := func(c *gin.Context) {
		store.Set(c,
			&storerepo.MerchantStore{ID: 1, Code: "DEFAULT", Name: "Maple Goods", CountryCode: "CA", Currency: "CAD", DefaultLanguage: "en"},
			&storerepo.Language{ID: 1, Code: "en"})
		c.Next()
	}
	// Stands in for token validation: X-Test-User becomes the principal.
	principal := func(c *gin.Context) {
		if nick := c.GetHeader("X-Test-User"); nick != "" {
			c.Set(httpkit.ContextSubjectKey, nick)
		}
		c.Next()
	}

	engine := gin.New()
	v1 := engine.Group("/api/v1")
	module.RegisterRoutes(&apphttp.RouterContext{
		Engine:    engine,
		V1:        v1,
		Public:    v1.Group("", scope),
		Protected: v1.Group("/auth", principal, scope),
	})
	return engine
}

func doRequest(engine *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestGuestShippingRoute(t *testing.T) {
	engine := newTestEngine(t, stubOrders{})

	rec := doRequest(engine, http.MethodPost, "/api/v1/cart/guest-cart/shipping", `{"postalCode":"H2X 1Y4","countryCode":"ZZ"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary transport.ReadableShippingSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Equal(t, "CA", summary.Delivery.CountryCode)
	require.Len(t, summary.ShippingOptions, 1)
	require.Equal(t, "Shipping by Maple Goods", summary.ShippingOptions[0].Description)
	require.Equal(t, summary.ShippingOptions[0].Note, summary.ShippingOptions[0].OptionName)
	require.Contains(t, summary.ShippingOptions[0].OptionName, "total weight")
}

func TestGuestShippingUsesAcceptLanguage(t *testing.T) {
	engine := newTestEngine(t, stubOrders{})

	rec := doRequest(engine, http.MethodPost, "/api/v1/cart/guest-cart/shipping", `{"countryCode":"CA"}`, map[string]string{"Accept-Language": "fr-CA,fr;q=0.9"})
	require.Equal(t, http.StatusOK, rec.Code)

	var summary transport.ReadableShippingSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Equal(t, "Les tarifs dépendent du nombre d'articles et du poids total de votre commande.", summary.ShippingOptions[0].OptionName)
}

func TestGuestShippingRejectsMalformedCountry(t *testing.T) {
	engine := newTestEngine(t, stubOrders{})

	rec := doRequest(engine, http.MethodPost, "/api/v1/cart/guest-cart/shipping", `{"countryCode":"CAN"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGuestShippingUnknownCart(t *testing.T) {
	engine := newTestEngine(t, stubOrders{})

	rec := doRequest(engine, http.MethodPost, "/api/v1/cart/nope/shipping", `{}`, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomerShippingRoute(t *testing.T) {
	engine := newTestEngine(t, stubOrders{})

	rec := doRequest(engine, http.MethodGet, "/api/v1/auth/cart/alice-cart/shipping", "", map[string]string{"X-Test-User": "alice"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(engine, http.MethodGet, "/api/v1/auth/cart/alice-cart/shipping", "", map[string]string{"X-Test-User": "bob"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NotContains(t, rec.Body.String(), "weightBased")
}

func TestCustomerShippingRequiresPrincipal(t *testing.T) {
	engine := newTestEngine(t, stubOrders{})

	rec := doRequest(engine, http.MethodGet, "/api/v1/auth/cart/alice-cart/shipping", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(engine, http.MethodGet, "/api/v1/auth/cart/alice-cart/shipping", "", map[string]string{"X-Test-User": "mallory"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestShippingFailureIsUnavailable(t *testing.T) {
	engine := newTestEngine(t, stubOrders{err: errors.New("every shipping module failed")})

	rec := doRequest(engine, http.MethodPost, "/api/v1/cart/guest-cart/shipping", `{}`, nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.JSONEq(t, `{"error":"Error while getting shipping quote: every shipping module failed"}`, rec.Body.String())
}

func TestShippingPanicIsUnavailable(t *testing.T) {
	engine := newTestEngine(t, stubOrders{panicMsg: "rate table corrupted"})

	rec := doRequest(engine, http.MethodGet, "/api/v1/auth/cart/alice-cart/shipping", "", map[string]string{"X-Test-User": "alice"})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "rate table corrupted")
}
