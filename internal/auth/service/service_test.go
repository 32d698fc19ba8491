package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront_backend/internal/auth/password"
	customerrepo "storefront_backend/internal/customer/repository"
	storerepo "storefront_backend/internal/store/repository"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/config"
	"storefront_backend/platform/logger"
)

type fakeCustomers struct {
	byNick map[string]customerrepo.Customer
	err    error
}

func (f fakeCustomers) GetByNick(_ context.Context, nick string, _ int64) (customerrepo.Customer, error) {
	if f.err != nil {
		return customerrepo.Customer{}, f.err
	}
	c, ok := f.byNick[nick]
	if !ok {
		return customerrepo.Customer{}, apperr.NotFound("customer not found")
	}
	return c, nil
}

const testSecret = "test-secret"

var testStore = &storerepo.MerchantStore{ID: 1, Code: "DEFAULT"}

func newTestService(t *testing.T, customers fakeCustomers) *Service {
	t.Helper()
	cfg := &config.Config{JWTAccessSecret: testSecret, AccessTokenTTL: 15 * time.Minute}
	return New(customers, cfg, logger.NewWithWriter("production", io.Discard))
}

func aliceCustomers(t *testing.T) fakeCustomers {
	t.Helper()
	hash, err := password.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return fakeCustomers{byNick: map[string]customerrepo.Customer{
		"alice": {ID: 1, Nick: "alice", PasswordHash: hash, Roles: []string{"CUSTOMER"}},
	}}
}

func TestLoginIssuesStoreBoundToken(t *testing.T) {
	svc := newTestService(t, aliceCustomers(t))

	token, err := svc.Login(context.Background(), " alice ", "s3cret-pass", testStore)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.ExpiresAt.Before(time.Now()) {
		t.Fatal("expected future expiry")
	}

	parsed, err := jwt.Parse(token.Value, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	if err != nil || !parsed.Valid {
		t.Fatalf("expected valid token, got %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != "alice" || claims["store"] != "DEFAULT" || claims["type"] != "access" {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestService(t, aliceCustomers(t))

	_, err := svc.Login(context.Background(), "alice", "wrong", testStore)
	if !apperr.Is(err, apperr.KindUnauthorized) || !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLoginRejectsUnknownCustomer(t *testing.T) {
	svc := newTestService(t, aliceCustomers(t))

	_, err := svc.Login(context.Background(), "mallory", "s3cret-pass", testStore)
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginPropagatesLookupFailure(t *testing.T) {
	cause := errors.New("connection refused")
	svc := newTestService(t, fakeCustomers{err: cause})

	if _, err := svc.Login(context.Background(), "alice", "x", testStore); !errors.Is(err, cause) {
		t.Fatalf("expected lookup failure, got %v", err)
	}
}

func TestLoginRequiresStore(t *testing.T) {
	svc := newTestService(t, aliceCustomers(t))

	if _, err := svc.Login(context.Background(), "alice", "s3cret-pass", nil); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
