package http

import (
	"context"

	"storefront_backend/internal/events"
	"storefront_backend/platform/config"
	"storefront_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// RouterConfig is the slice of configuration the router reads.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker is a dependency probed by /api/ready.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is everything cmd/api assembles for the router.
type App struct {
	Config RouterConfig
	Logger *logger.Logger
	// Health lists the readiness probes: Postgres always, Redis when enabled.
	Health   []HealthChecker
	EventBus events.Bus
	// StoreContext scopes Public, Protected and Admin routes to a store.
	// Nil leaves requests unscoped, which only tests rely on.
	StoreContext gin.HandlerFunc
	Modules      []Module
}
