package adapters

import (
	"context"

	"github.com/gustavo-devfull/fabricas-sub000/internal/aggregation"
	factorysvc "github.com/gustavo-devfull/fabricas-sub000/internal/factories/service"
	"github.com/gustavo-devfull/fabricas-sub000/internal/imports/ports"

	"github.com/google/uuid"
)

// FactoryReaderAdapter exposes the factories module as the header source
// of the imports view.
type FactoryReaderAdapter struct {
	svc *factorysvc.Service
}

// NewFactoryReader wraps the factories service.
func NewFactoryReader(svc *factorysvc.Service) *FactoryReaderAdapter {
	return &FactoryReaderAdapter{svc: svc}
}

// List returns all factories as aggregation headers.
func (a *FactoryReaderAdapter) List(ctx context.Context) ([]aggregation.FactoryInfo, error) {
	factories, err := a.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]aggregation.FactoryInfo, 0, len(factories))
	for _, f := range factories {
		infos = append(infos, factorysvc.ToFactoryInfo(f, nil))
	}
	return infos, nil
}

// GetByID returns one factory as an aggregation header.
func (a *FactoryReaderAdapter) GetByID(ctx context.Context, id uuid.UUID) (aggregation.FactoryInfo, error) {
	factory, err := a.svc.GetByID(ctx, id)
	if err != nil {
		return aggregation.FactoryInfo{}, err
	}
	return factorysvc.ToFactoryInfo(*factory, nil), nil
}

var _ ports.FactoryReader = (*FactoryReaderAdapter)(nil)
