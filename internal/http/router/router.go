// Package router builds the gin engine and mounts every module.
package router

import (
	"context"
	"net/http"
	"time"

	apphttp "storefront_backend/internal/http"
	"storefront_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// RoleAdmin grants access to the /api/v1/private group.
	RoleAdmin = "ADMIN"

	readinessTimeout = 2 * time.Second
)

// New creates the gin engine with global middleware, health endpoints and
// all module routes. Modules that subscribe to events are registered on
// app.EventBus.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(cors.New(corsConfig(app.Config)))

	limiter := httpkit.NewIPRateLimiter(rate.Limit(app.Config.GetRateLimitRPS()), app.Config.GetRateLimitBurst(), app.Logger)
	engine.Use(limiter.RateLimit())

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/api/ready", readinessHandler(app.Health))

	storeContext := app.StoreContext
	if storeContext == nil {
		storeContext = func(c *gin.Context) { c.Next() }
	}
	authRequired := httpkit.AuthRequired(app.Config)

	v1 := engine.Group("/api/v1")
	routerCtx := &apphttp.RouterContext{
		Engine:    engine,
		V1:        v1,
		Public:    v1.Group("", storeContext),
		Protected: v1.Group("/auth", authRequired, storeContext),
		Admin:     v1.Group("/private", authRequired, httpkit.RequireRole(RoleAdmin), storeContext),
		Config:    app.Config,
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(routerCtx)
		if subscriber, ok := module.(apphttp.EventSubscriber); ok && app.EventBus != nil {
			subscriber.RegisterHandlers(app.EventBus)
		}
		app.Logger.Debug("module routes registered", "module", module.Name())
	}

	return engine
}

func readinessHandler(checks []apphttp.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		for _, check := range checks {
			if err := check.Ping(ctx); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

func corsConfig(cfg apphttp.RouterConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", httpkit.HeaderRequestID},
		ExposeHeaders:    []string{httpkit.HeaderRequestID},
		AllowCredentials: cfg.GetCORSAllowCreds(),
		MaxAge:           12 * time.Hour,
	}
	if cfg.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.GetCORSOrigins()
	}
	return corsCfg
}
