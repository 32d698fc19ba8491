// Package cache stores remote shipping rate responses in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront_backend/internal/orders/domain"
)

const keyPrefix = "storefront:shipping:quote:"

// QuoteCache caches module options per rate request.
type QuoteCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a quote cache. Entries expire after ttl.
func New(client *redis.Client, ttl time.Duration) *QuoteCache {
	return &QuoteCache{client: client, ttl: ttl}
}

// Get returns cached options; the bool is false on a miss.
func (c *QuoteCache) Get(ctx context.Context, moduleCode string, req domain.RateRequest) ([]domain.ShippingOption, bool, error) {
	val, err := c.client.Get(ctx, Key(moduleCode, req)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get cached quote: %w", err)
	}

	var options []domain.ShippingOption
	if err := json.Unmarshal(val, &options); err != nil {
		return nil, false, fmt.Errorf("decode cached quote: %w", err)
	}
	return options, true, nil
}

// Set stores options for the request.
func (c *QuoteCache) Set(ctx context.Context, moduleCode string, req domain.RateRequest, options []domain.ShippingOption) error {
	payload, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("encode quote: %w", err)
	}
	if err := c.client.Set(ctx, Key(moduleCode, req), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached quote: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *QuoteCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Key derives the cache key from every field that affects the price.
func Key(moduleCode string, req domain.RateRequest) string {
	postal := strings.ToUpper(strings.ReplaceAll(req.Delivery.PostalCode, " ", ""))
	return fmt.Sprintf("%s%s:%s:%s:%s:%d:%d:%d", keyPrefix, req.StoreCode, moduleCode,
		req.Delivery.CountryCode, postal, req.ItemCount, req.WeightGrams, req.SubtotalCents)
}

// Close releases the Redis connection.
func (c *QuoteCache) Close() error {
	return c.client.Close()
}

// NewClient opens a Redis client from a redis:// or rediss:// URL.
func NewClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opt), nil
}
