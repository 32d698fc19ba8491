// Package catalog provides the catalog bounded context module.
package catalog

import (
	"context"

	"storefront_backend/internal/catalog/handler"
	"storefront_backend/internal/catalog/repository"
	"storefront_backend/internal/catalog/service"
	"storefront_backend/internal/events"
	apphttp "storefront_backend/internal/http"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	log     *logger.Logger
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	return newModule(repository.New(pool), bus, val, log)
}

func newModule(repo repository.Repository, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, bus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	adminGroup := ctx.Admin.Group("/catalogs")
	adminGroup.POST("", m.handler.CreateCatalog)
	adminGroup.GET("", m.handler.ListCatalogs)
	adminGroup.GET("/unique", m.handler.CatalogCodeExists)
	adminGroup.GET("/code/:code", m.handler.GetCatalogByCode)
	adminGroup.GET("/:id", m.handler.GetCatalogByID)
	adminGroup.PUT("/:id", m.handler.UpdateCatalog)
	adminGroup.DELETE("/:id", m.handler.DeleteCatalog)
	adminGroup.POST("/entries", m.handler.AddCatalogEntry)
}

// RegisterHandlers subscribes the module to its own write events for the
// catalog activity log.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.CatalogSaved{}.EventName(), m)
	bus.Subscribe(events.CatalogDeleted{}.EventName(), m)
	bus.Subscribe(events.CatalogEntryAdded{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.CatalogSaved:
		m.log.Info("catalog activity", "event", e.EventName(), "store", e.StoreCode, "code", e.Code, "created", e.Created, "at", e.OccurredAt())
	case events.CatalogDeleted:
		m.log.Info("catalog activity", "event", e.EventName(), "store", e.StoreCode, "code", e.Code, "at", e.OccurredAt())
	case events.CatalogEntryAdded:
		m.log.Info("catalog activity", "event", e.EventName(), "store", e.StoreCode, "catalog", e.CatalogCode, "category", e.CategoryCode, "at", e.OccurredAt())
	}
	return nil
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
