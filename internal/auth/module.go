// Package auth provides the operator authentication module.
package auth

import (
	"contactcenter_backend/internal/auth/handler"
	"contactcenter_backend/internal/auth/service"
	apphttp "contactcenter_backend/internal/http"
	"contactcenter_backend/platform/config"
	"contactcenter_backend/platform/logger"
	"contactcenter_backend/platform/validator"
)

// Module is the auth module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the auth module.
func NewModule(cfg config.OperatorConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(cfg, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the token service.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the login route (rate limited) and the operator profile route.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.V1.Group("/auth")
	authGroup.POST("/login", ctx.AuthRateLimiter.RateLimit(), m.handler.Login)
	authGroup.GET("/me", ctx.AuthMiddleware, m.handler.Me)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
