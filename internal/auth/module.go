// Package auth provides the authentication module: sign-in, the current
// user endpoint and admin user management.
package auth

import (
	"github.com/gustavo-devfull/fabricas-sub000/internal/auth/handler"
	"github.com/gustavo-devfull/fabricas-sub000/internal/auth/repository"
	"github.com/gustavo-devfull/fabricas-sub000/internal/auth/service"
	apphttp "github.com/gustavo-devfull/fabricas-sub000/internal/http"
	"github.com/gustavo-devfull/fabricas-sub000/platform/config"
	"github.com/gustavo-devfull/fabricas-sub000/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the auth module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new auth module
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "auth"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public sign-in with the stricter auth rate limiter.
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	authGroup.POST("/login", m.handler.Login)

	ctx.Protected.GET("/users/me", m.handler.GetMe)
	ctx.Protected.POST("/users/me/password", m.handler.ChangePassword)

	ctx.Admin.GET("/users", m.handler.ListUsers)
	ctx.Admin.POST("/users", m.handler.CreateUser)
	ctx.Admin.PUT("/users/:id/roles", m.handler.SetRoles)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
