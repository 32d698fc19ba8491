// Package shipping provides the storefront shipping quote module.
package shipping

import (
	"storefront_backend/internal/labels"
	apphttp "storefront_backend/internal/http"
	"storefront_backend/internal/shipping/handler"
	"storefront_backend/internal/shipping/service"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/validator"
)

// Module is the shipping bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the shipping service over its collaborators. The label
// bundle both resolves messages and picks the request locale.
func NewModule(deps service.Deps, bundle *labels.Bundle, val *validator.Validator, log *logger.Logger) *Module {
	deps.Labels = bundle
	deps.Log = log
	svc := service.New(deps)
	return &Module{
		handler: handler.New(svc, bundle, val, log),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "shipping"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the guest route on the public group and the
// customer route on the authenticated group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Public.POST("/cart/:code/shipping", m.handler.GuestShipping)
	ctx.Protected.GET("/cart/:code/shipping", m.handler.CustomerShipping)
}

var _ apphttp.Module = (*Module)(nil)
