package exports

import (
	"github.com/gustavo-devfull/fabricas-sub000/internal/adapters/storage"
	"github.com/gustavo-devfull/fabricas-sub000/internal/events"
	apphttp "github.com/gustavo-devfull/fabricas-sub000/internal/http"
	"github.com/gustavo-devfull/fabricas-sub000/platform/logger"
	"github.com/gustavo-devfull/fabricas-sub000/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the export jobs module
type Module struct {
	handler *Handler
	service *Service
	repo    *Repository
}

// NewModule creates a new export jobs module
func NewModule(pool *pgxpool.Pool, log *logger.Logger, val *validator.Validator) *Module {
	repo := NewRepository(pool)
	svc := NewService(repo, log)
	h := NewHandler(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "exports"
}

// Service returns the service layer for external use
func (m *Module) Service() *Service {
	return m.service
}

// Repository returns the job store, shared with the worker-side generator.
func (m *Module) Repository() *Repository {
	return m.repo
}

// SetScheduler injects the background job client.
func (m *Module) SetScheduler(scheduler Scheduler) {
	m.service.SetScheduler(scheduler)
}

// SetStorage injects the object storage holding generated workbooks.
func (m *Module) SetStorage(svc storage.StorageService, bucket string) {
	m.service.SetStorage(svc, bucket)
}

// SetEventBus injects the event bus for publishing domain events.
func (m *Module) SetEventBus(bus events.Bus) {
	m.service.SetEventBus(bus)
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	exports := ctx.Protected.Group("/exports")
	m.handler.RegisterRoutes(exports)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
