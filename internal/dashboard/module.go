// Package dashboard exposes the lead analytics aggregates over HTTP.
package dashboard

import (
	"contactcenter_backend/internal/analytics"
	"contactcenter_backend/internal/dashboard/handler"
	apphttp "contactcenter_backend/internal/http"
	"contactcenter_backend/platform/validator"
)

// Module is the dashboard module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates the dashboard module over engine.
func NewModule(engine *analytics.Engine, val *validator.Validator) *Module {
	return &Module{handler: handler.New(engine, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "dashboard"
}

// RegisterRoutes mounts every dashboard route under /api/v1/dashboard.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/dashboard"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
