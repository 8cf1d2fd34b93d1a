// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"contactcenter_backend/platform/config"
	"contactcenter_backend/platform/logger"
	"contactcenter_backend/platform/metrics"
	"contactcenter_backend/platform/validator"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP and JWT settings only).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness checks (database ping or a static checker).
	Health HealthChecker
	// Metrics records HTTP traffic and serves /metrics.
	Metrics *metrics.Metrics
	// Validator is shared by every module.
	Validator *validator.Validator
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
