// Package http provides HTTP server infrastructure including the Module interface
// that all domain modules must implement for route registration.
package http

import (
	"contactcenter_backend/platform/config"
	"contactcenter_backend/platform/httpkit"
	"contactcenter_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// RoleOperator is the role every dashboard token carries.
const RoleOperator = "operator"

// Module represents a bounded context that can register its HTTP routes.
// Each domain module implements this interface to encapsulate its own
// route setup, keeping the main router decoupled from specific endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router context.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared dependencies for module route registration.
type RouterContext struct {
	// Engine is the root Gin engine for modules that need engine-level access.
	Engine *gin.Engine
	// V1 is the public /api/v1 route group.
	V1 *gin.RouterGroup
	// Protected is the /api/v1 group behind the JWT and operator role checks.
	Protected *gin.RouterGroup
	// Config is the JWT configuration for auth middleware.
	Config config.JWTConfig
	// AuthMiddleware validates bearer tokens.
	AuthMiddleware gin.HandlerFunc
	// AuthRateLimiter is the stricter limiter for the login route.
	AuthRateLimiter *httpkit.IPRateLimiter
	// GenerationRateLimiter limits text-generation routes.
	GenerationRateLimiter *httpkit.IPRateLimiter
	// Validator is the shared request validator.
	Validator *validator.Validator
}
