package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"storefront_backend/internal/orders/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*QuoteCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, ttl), mr
}

var testReq = domain.RateRequest{
	StoreCode:   "DEFAULT",
	Delivery:    domain.Delivery{CountryCode: "CA", PostalCode: "h2x 1y4"},
	ItemCount:   2,
	WeightGrams: 800,
}

func TestCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	if _, ok, err := cache.Get(ctx, "remote", testReq); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	want := []domain.ShippingOption{{OptionCode: "ground", PriceCents: 1500}}
	if err := cache.Set(ctx, "remote", testReq, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := cache.Get(ctx, "remote", testReq)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].OptionCode != "ground" || got[0].PriceCents != 1500 {
		t.Fatalf("unexpected options: %+v", got)
	}
}

func TestCacheEntriesExpire(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, "remote", testReq, []domain.ShippingOption{{OptionCode: "ground"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, ok, _ := cache.Get(ctx, "remote", testReq); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestKeyNormalizesPostalCode(t *testing.T) {
	other := testReq
	other.Delivery.PostalCode = "H2X1Y4"

	if Key("remote", testReq) != Key("remote", other) {
		t.Fatalf("expected equal keys, got %q and %q", Key("remote", testReq), Key("remote", other))
	}
}

func TestNewClientFromURL(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewClient("redis://" + mr.Addr() + "/0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache := New(client, time.Minute)
	t.Cleanup(func() { _ = cache.Close() })

	if err := cache.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if _, err := NewClient("://nope"); err == nil {
		t.Fatal("expected parse error")
	}
}
