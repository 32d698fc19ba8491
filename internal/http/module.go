// Package http holds the contracts between the router and the storefront
// modules it mounts.
package http

import (
	"storefront_backend/internal/events"
	"storefront_backend/platform/config"

	"github.com/gin-gonic/gin"
)

// Module is a storefront bounded context that owns a set of routes.
type Module interface {
	Name() string
	RegisterRoutes(ctx *RouterContext)
}

// EventSubscriber is implemented by modules that react to domain events.
// The router subscribes them once, before any route is served.
type EventSubscriber interface {
	RegisterHandlers(bus events.Bus)
}

// RouterContext carries the route groups a module may mount on.
//
//	V1         /api/v1, no store scope
//	Public     /api/v1, store and language resolved
//	Protected  /api/v1/auth, signed-in customer, store and language resolved
//	Admin      /api/v1/private, ADMIN role, store and language resolved
type RouterContext struct {
	Engine    *gin.Engine
	V1        *gin.RouterGroup
	Public    *gin.RouterGroup
	Protected *gin.RouterGroup
	Admin     *gin.RouterGroup
	Config    config.JWTConfig
}
