// Package factories provides the factories (fábricas) domain module.
package factories

import (
	"github.com/gustavo-devfull/fabricas-sub000/internal/factories/handler"
	"github.com/gustavo-devfull/fabricas-sub000/internal/factories/repository"
	"github.com/gustavo-devfull/fabricas-sub000/internal/factories/service"
	apphttp "github.com/gustavo-devfull/fabricas-sub000/internal/http"
	"github.com/gustavo-devfull/fabricas-sub000/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the factories domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates a new factories module with all dependencies wired
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "factories"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for adapter wiring
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	factories := ctx.Protected.Group("/factories")
	m.handler.RegisterRoutes(factories)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
