// Package remote prices carts through an external carrier rates API.
package remote

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"

	"storefront_backend/internal/orders/domain"
	"storefront_backend/platform/logger"
)

const (
	// ModuleCode identifies the remote carrier module.
	ModuleCode = "remote"

	ratesPath    = "/rates"
	headerAPIKey = "X-API-Key"
)

// Config provides the rates API settings.
type Config interface {
	GetShippingRatesURL() string
	GetShippingRatesAPIKey() string
	GetShippingRatesTimeout() time.Duration
}

// Cache stores responses per rate request.
type Cache interface {
	Get(ctx context.Context, moduleCode string, req domain.RateRequest) ([]domain.ShippingOption, bool, error)
	Set(ctx context.Context, moduleCode string, req domain.RateRequest, options []domain.ShippingOption) error
}

type rateOption struct {
	Code          string `json:"code"`
	PriceCents    int64  `json:"priceCents"`
	EstimatedDays int    `json:"estimatedDays"`
}

type ratesResponse struct {
	Options []rateOption `json:"options"`
}

// Module calls the rates API. Cache may be nil.
type Module struct {
	client *resty.Client
	cache  Cache
	log    *logger.Logger
}

// New creates the remote rates module.
func New(cfg Config, cache Cache, log *logger.Logger) *Module {
	client := resty.New().
		SetBaseURL(cfg.GetShippingRatesURL()).
		SetTimeout(cfg.GetShippingRatesTimeout()).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetHeader("Accept", "application/json")
	if key := cfg.GetShippingRatesAPIKey(); key != "" {
		client.SetHeader(headerAPIKey, key)
	}
	return &Module{client: client, cache: cache, log: log}
}

var _ domain.ShippingModule = (*Module)(nil)

// Code returns the module code.
func (m *Module) Code() string {
	return ModuleCode
}

// Quote returns cached options when present, otherwise asks the API.
func (m *Module) Quote(ctx context.Context, req domain.RateRequest) ([]domain.ShippingOption, error) {
	if m.cache != nil {
		options, ok, err := m.cache.Get(ctx, ModuleCode, req)
		if err != nil {
			m.log.Warn("shipping quote cache read failed", "error", err)
		} else if ok {
			return options, nil
		}
	}

	var body ratesResponse
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&body).
		Post(ratesPath)
	if err != nil {
		return nil, fmt.Errorf("request carrier rates: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("carrier rates: HTTP %d", resp.StatusCode())
	}

	options := make([]domain.ShippingOption, 0, len(body.Options))
	for _, opt := range body.Options {
		options = append(options, domain.ShippingOption{
			OptionCode:    opt.Code,
			PriceCents:    opt.PriceCents,
			EstimatedDays: opt.EstimatedDays,
		})
	}

	if m.cache != nil {
		if err := m.cache.Set(ctx, ModuleCode, req, options); err != nil {
			m.log.Warn("shipping quote cache write failed", "error", err)
		}
	}
	return options, nil
}

// Close releases the HTTP client.
func (m *Module) Close() error {
	return m.client.Close()
}
