// Package imports provides the aggregated imports view module: grouped
// quotes per factory, duplicate detection and export toggling.
package imports

import (
	"time"

	apphttp "github.com/gustavo-devfull/fabricas-sub000/internal/http"
	"github.com/gustavo-devfull/fabricas-sub000/internal/imports/handler"
	"github.com/gustavo-devfull/fabricas-sub000/internal/imports/ports"
	"github.com/gustavo-devfull/fabricas-sub000/internal/imports/repository"
	"github.com/gustavo-devfull/fabricas-sub000/internal/imports/service"
	"github.com/gustavo-devfull/fabricas-sub000/platform/cache"
	"github.com/gustavo-devfull/fabricas-sub000/platform/events"
	"github.com/gustavo-devfull/fabricas-sub000/platform/logger"
	"github.com/gustavo-devfull/fabricas-sub000/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the imports view module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new imports module. The quote and factory
// collaborators arrive as ports wired by the composition root.
func NewModule(pool *pgxpool.Pool, quotes ports.QuoteReader, writer ports.QuoteOrderWriter, factories ports.FactoryReader, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, quotes, writer, factories, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "imports"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// SetEventBus injects the event bus and subscribes the view invalidation
// handlers.
func (m *Module) SetEventBus(bus *events.InMemoryBus) {
	m.service.SetEventBus(bus)
	m.service.RegisterHandlers(bus)
}

// SetCache injects the TTL cache for the aggregated view.
func (m *Module) SetCache(c cache.Cache, ttl time.Duration) {
	m.service.SetCache(c, ttl)
}

// SetCommentCounter injects the comment badge collaborator.
func (m *Module) SetCommentCounter(counter ports.CommentCounter) {
	m.service.SetCommentCounter(counter)
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	imports := ctx.Protected.Group("/imports")
	m.handler.RegisterRoutes(imports)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
