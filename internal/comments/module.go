// Package comments provides per-import comment threads with optional
// image attachments stored in object storage.
package comments

import (
	"github.com/gustavo-devfull/fabricas-sub000/internal/adapters/storage"
	"github.com/gustavo-devfull/fabricas-sub000/internal/comments/handler"
	"github.com/gustavo-devfull/fabricas-sub000/internal/comments/repository"
	"github.com/gustavo-devfull/fabricas-sub000/internal/comments/service"
	"github.com/gustavo-devfull/fabricas-sub000/internal/events"
	apphttp "github.com/gustavo-devfull/fabricas-sub000/internal/http"
	"github.com/gustavo-devfull/fabricas-sub000/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the comments module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new comments module
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "comments"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// SetStorage injects the object storage used for comment images.
func (m *Module) SetStorage(svc storage.StorageService, bucket string) {
	m.service.SetStorage(svc, bucket)
}

// SetEventBus injects the event bus for publishing domain events.
func (m *Module) SetEventBus(bus events.Bus) {
	m.service.SetEventBus(bus)
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	comments := ctx.Protected.Group("/comments")
	m.handler.RegisterRoutes(comments)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
