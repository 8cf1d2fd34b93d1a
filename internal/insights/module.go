// Package insights exposes analyst chat, generated insights and forecasts
// built on the dashboard summary.
package insights

import (
	apphttp "contactcenter_backend/internal/http"
	"contactcenter_backend/internal/insights/handler"
	"contactcenter_backend/internal/insights/service"
	"contactcenter_backend/platform/validator"
)

// Module is the insights module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates the insights module over svc.
func NewModule(svc *service.Service, val *validator.Validator) *Module {
	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "insights"
}

// RegisterRoutes mounts the generation routes under /api/v1/ai behind the
// generation rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/ai")
	group.Use(ctx.GenerationRateLimiter.RateLimit())
	m.handler.RegisterRoutes(group)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
