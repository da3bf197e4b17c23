package service

import (
	"context"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/aggregation"
	"github.com/gustavo-devfull/fabricas-sub000/internal/factories/repository"
	"github.com/gustavo-devfull/fabricas-sub000/platform/phone"

	"github.com/google/uuid"
)

// Service implements the factories domain logic.
type Service struct {
	repo *repository.Repository
}

// New creates a new factories service
func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// CreateParams holds the fields for a new factory. Name may arrive blank
// when legacy records carried it under an alias; callers resolve aliases via
// DisplayName first.
type CreateParams struct {
	Name        string
	Localizacao string
	Segmento    string
	Contato     string
	Telefone    string
	Email       string
}

// Create registers a new factory, normalizing the phone number to E.164.
func (s *Service) Create(ctx context.Context, params CreateParams) (*repository.Factory, error) {
	now := time.Now().UTC()
	factory := &repository.Factory{
		ID:          uuid.New(),
		Name:        params.Name,
		Localizacao: params.Localizacao,
		Segmento:    params.Segmento,
		Contato:     params.Contato,
		Telefone:    phone.NormalizeE164(params.Telefone),
		Email:       params.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, factory); err != nil {
		return nil, err
	}
	return factory, nil
}

// GetByID returns a single factory.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*repository.Factory, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all factories.
func (s *Service) List(ctx context.Context) ([]repository.Factory, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update, normalizing the phone number if present.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params repository.UpdateParams) (*repository.Factory, error) {
	if params.Telefone != nil {
		normalized := phone.NormalizeE164(*params.Telefone)
		params.Telefone = &normalized
	}
	if err := s.repo.UpdatePartial(ctx, id, params); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete removes a factory.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ToFactoryInfo maps a stored factory onto the aggregation engine's header
// type, resolving the display name through the legacy alias chain.
func ToFactoryInfo(f repository.Factory, legacy map[string]string) aggregation.FactoryInfo {
	return aggregation.FactoryInfo{
		ID:          f.ID,
		Name:        DisplayName(f.Name, legacy),
		Localizacao: f.Localizacao,
		Segmento:    f.Segmento,
	}
}
