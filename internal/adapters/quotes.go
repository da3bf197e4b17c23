// Package adapters bridges modules at the composition root. Each adapter
// implements one module's ports over another module's service or
// repository, so the modules themselves never import each other.
package adapters

import (
	"context"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/aggregation"
	"github.com/gustavo-devfull/fabricas-sub000/internal/imports/ports"
	quoterepo "github.com/gustavo-devfull/fabricas-sub000/internal/quotes/repository"
	quotesvc "github.com/gustavo-devfull/fabricas-sub000/internal/quotes/service"

	"github.com/google/uuid"
)

// QuoteReaderAdapter exposes the quotes module as the aggregation input
// reader of the imports view.
type QuoteReaderAdapter struct {
	svc *quotesvc.Service
}

// NewQuoteReader wraps the quotes service.
func NewQuoteReader(svc *quotesvc.Service) *QuoteReaderAdapter {
	return &QuoteReaderAdapter{svc: svc}
}

// ListByFactory returns one factory's quotes as aggregation products.
func (a *QuoteReaderAdapter) ListByFactory(ctx context.Context, factoryID uuid.UUID) ([]aggregation.Product, error) {
	quotes, err := a.svc.ListByFactory(ctx, factoryID)
	if err != nil {
		return nil, err
	}
	return quotesvc.ToProducts(quotes), nil
}

// ListAll returns every quote as aggregation products.
func (a *QuoteReaderAdapter) ListAll(ctx context.Context) ([]aggregation.Product, error) {
	quotes, err := a.svc.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return quotesvc.ToProducts(quotes), nil
}

// QuoteOrderWriterAdapter exposes the quotes repository's order-status
// writes to the export toggler.
type QuoteOrderWriterAdapter struct {
	repo *quoterepo.Repository
}

// NewQuoteOrderWriter wraps the quotes repository.
func NewQuoteOrderWriter(repo *quoterepo.Repository) *QuoteOrderWriterAdapter {
	return &QuoteOrderWriterAdapter{repo: repo}
}

// GetOrderFields re-reads a quote's editable order fields.
func (a *QuoteOrderWriterAdapter) GetOrderFields(ctx context.Context, quoteID uuid.UUID) (ports.OrderFields, error) {
	fields, err := a.repo.GetOrderFields(ctx, quoteID)
	if err != nil {
		return ports.OrderFields{}, err
	}
	return ports.OrderFields{DataPedido: fields.DataPedido, LotePedido: fields.LotePedido}, nil
}

// SetOrderStatus writes a quote's workflow status.
func (a *QuoteOrderWriterAdapter) SetOrderStatus(ctx context.Context, quoteID uuid.UUID, status aggregation.OrderStatus, exportedAt *time.Time, fields ports.OrderFields) error {
	return a.repo.SetOrderStatus(ctx, quoteID, string(status), exportedAt, quoterepo.OrderFields{
		DataPedido: fields.DataPedido,
		LotePedido: fields.LotePedido,
	})
}

var (
	_ ports.QuoteReader      = (*QuoteReaderAdapter)(nil)
	_ ports.QuoteOrderWriter = (*QuoteOrderWriterAdapter)(nil)
)
