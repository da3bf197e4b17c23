// Package ports declares the collaborator interfaces the imports view
// depends on. The composition root wires adapters over the quotes,
// factories and comments modules, keeping this module free of direct
// cross-module dependencies.
package ports

import (
	"context"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/aggregation"

	"github.com/google/uuid"
)

// QuoteReader supplies the flat quote records the aggregation engine
// regroups.
type QuoteReader interface {
	ListByFactory(ctx context.Context, factoryID uuid.UUID) ([]aggregation.Product, error)
	ListAll(ctx context.Context) ([]aggregation.Product, error)
}

// OrderFields are the two user-editable order fields the export toggler
// must re-read before each write.
type OrderFields struct {
	DataPedido string
	LotePedido string
}

// QuoteOrderWriter performs the per-quote status writes of an export toggle.
type QuoteOrderWriter interface {
	GetOrderFields(ctx context.Context, quoteID uuid.UUID) (OrderFields, error)
	SetOrderStatus(ctx context.Context, quoteID uuid.UUID, status aggregation.OrderStatus, exportedAt *time.Time, fields OrderFields) error
}

// FactoryReader supplies the factory headers shown with grouped imports.
type FactoryReader interface {
	List(ctx context.Context) ([]aggregation.FactoryInfo, error)
	GetByID(ctx context.Context, id uuid.UUID) (aggregation.FactoryInfo, error)
}

// CommentCounter reports how many comments each import of a factory has, so
// the view can badge imports without loading comment bodies.
type CommentCounter interface {
	CountByImport(ctx context.Context, factoryID uuid.UUID) (map[string]int, error)
}
