package service

import (
	"context"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/aggregation"
	"github.com/gustavo-devfull/fabricas-sub000/internal/events"
	"github.com/gustavo-devfull/fabricas-sub000/internal/quotes/repository"
	"github.com/gustavo-devfull/fabricas-sub000/platform/apperr"

	"github.com/google/uuid"
)

// Service implements the quotes domain logic.
type Service struct {
	repo     *repository.Repository
	eventBus events.Bus
}

// New creates a new quotes service
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetEventBus injects the event bus for publishing domain events.
func (s *Service) SetEventBus(bus events.Bus) {
	s.eventBus = bus
}

// CreateParams holds the normalized fields for a new quote. Callers usually
// obtain it through NormalizeFields, which resolves legacy field aliases.
type CreateParams struct {
	FactoryID   uuid.UUID
	Ref         string
	Description string
	Name        string
	QuoteName   string
	NCM         string
	Unit        string
	Obs         string
	Ctns        float64
	UnitCtn     float64
	UnitPrice   float64
	Amount      float64
	CBM         float64
	CBMTotal    float64
	GrossWeight float64
	NetWeight   float64
	Length      float64
	Width       float64
	Height      float64
	DataPedido  string
	LotePedido  string
}

// Create registers a new quote line. New quotes always start pending.
func (s *Service) Create(ctx context.Context, params CreateParams) (*repository.Quote, error) {
	if params.FactoryID == uuid.Nil {
		return nil, apperr.Validation("factoryId is required")
	}

	now := time.Now().UTC()
	quote := &repository.Quote{
		ID:          uuid.New(),
		FactoryID:   params.FactoryID,
		Ref:         params.Ref,
		Description: params.Description,
		Name:        params.Name,
		QuoteName:   params.QuoteName,
		NCM:         params.NCM,
		Unit:        params.Unit,
		Obs:         params.Obs,
		Ctns:        params.Ctns,
		UnitCtn:     params.UnitCtn,
		UnitPrice:   params.UnitPrice,
		Amount:      params.Amount,
		CBM:         params.CBM,
		CBMTotal:    params.CBMTotal,
		GrossWeight: params.GrossWeight,
		NetWeight:   params.NetWeight,
		Length:      params.Length,
		Width:       params.Width,
		Height:      params.Height,
		OrderStatus: string(aggregation.StatusPending),
		DataPedido:  params.DataPedido,
		LotePedido:  params.LotePedido,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, quote); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.QuoteCreated{
			BaseEvent: events.NewBaseEvent(),
			QuoteID:   quote.ID,
			FactoryID: quote.FactoryID,
			Ref:       quote.Ref,
		})
	}
	return quote, nil
}

// GetByID returns a single quote.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*repository.Quote, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByFactory returns all quotes of one factory.
func (s *Service) ListByFactory(ctx context.Context, factoryID uuid.UUID) ([]repository.Quote, error) {
	return s.repo.ListByFactory(ctx, factoryID)
}

// ListAll returns every quote across all factories.
func (s *Service) ListAll(ctx context.Context) ([]repository.Quote, error) {
	return s.repo.ListAll(ctx)
}

// Update applies a partial update; nil fields are left untouched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params repository.UpdateParams) (*repository.Quote, error) {
	if err := s.repo.UpdatePartial(ctx, id, params); err != nil {
		return nil, err
	}
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.QuoteUpdated{
			BaseEvent: events.NewBaseEvent(),
			QuoteID:   quote.ID,
			FactoryID: quote.FactoryID,
		})
	}
	return quote, nil
}

// Delete removes a quote and publishes the deletion event.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.QuoteDeleted{
			BaseEvent: events.NewBaseEvent(),
			QuoteID:   quote.ID,
			FactoryID: quote.FactoryID,
		})
	}
	return nil
}

// ToProduct maps a stored quote onto the aggregation engine's product type.
func ToProduct(q repository.Quote) aggregation.Product {
	createdAt := q.CreatedAt
	updatedAt := q.UpdatedAt
	return aggregation.Product{
		ID:          q.ID,
		FactoryID:   q.FactoryID,
		Ref:         q.Ref,
		Description: q.Description,
		Name:        q.Name,
		QuoteName:   q.QuoteName,
		NCM:         q.NCM,
		Unit:        q.Unit,
		Obs:         q.Obs,
		Ctns:        q.Ctns,
		UnitCtn:     q.UnitCtn,
		UnitPrice:   q.UnitPrice,
		Amount:      q.Amount,
		CBM:         q.CBM,
		CBMTotal:    q.CBMTotal,
		GrossWeight: q.GrossWeight,
		NetWeight:   q.NetWeight,
		Length:      q.Length,
		Width:       q.Width,
		Height:      q.Height,
		OrderStatus: aggregation.OrderStatus(q.OrderStatus),
		ExportedAt:  q.ExportedAt,
		DataPedido:  q.DataPedido,
		LotePedido:  q.LotePedido,
		CreatedAt:   &createdAt,
		UpdatedAt:   &updatedAt,
	}
}

// ToProducts maps a slice of stored quotes.
func ToProducts(quotes []repository.Quote) []aggregation.Product {
	products := make([]aggregation.Product, 0, len(quotes))
	for _, q := range quotes {
		products = append(products, ToProduct(q))
	}
	return products
}
