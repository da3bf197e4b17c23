package transport

import (
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/factories/repository"

	"github.com/google/uuid"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateFactoryRequest is the request body for registering a factory.
// LegacyFields lets importers pass old-store records whose name lives under
// an alias key.
type CreateFactoryRequest struct {
	Name         string            `json:"name" validate:"omitempty,max=500"`
	Localizacao  string            `json:"localizacao" validate:"omitempty,max=500"`
	Segmento     string            `json:"segmento" validate:"omitempty,max=200"`
	Contato      string            `json:"contato" validate:"omitempty,max=200"`
	Telefone     string            `json:"telefone" validate:"omitempty,max=50"`
	Email        string            `json:"email" validate:"omitempty,email,max=320"`
	LegacyFields map[string]string `json:"legacyFields" validate:"omitempty"`
}

// UpdateFactoryRequest is the request body for a partial factory update.
type UpdateFactoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=500"`
	Localizacao *string `json:"localizacao" validate:"omitempty,max=500"`
	Segmento    *string `json:"segmento" validate:"omitempty,max=200"`
	Contato     *string `json:"contato" validate:"omitempty,max=200"`
	Telefone    *string `json:"telefone" validate:"omitempty,max=50"`
	Email       *string `json:"email" validate:"omitempty,email,max=320"`
}

// ToUpdateParams converts the request to repository update params.
func (r UpdateFactoryRequest) ToUpdateParams() repository.UpdateParams {
	return repository.UpdateParams{
		Name:        r.Name,
		Localizacao: r.Localizacao,
		Segmento:    r.Segmento,
		Contato:     r.Contato,
		Telefone:    r.Telefone,
		Email:       r.Email,
	}
}

// ── Responses ─────────────────────────────────────────────────────────────────

// FactoryResponse is the API representation of a factory.
type FactoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Localizacao string    `json:"localizacao"`
	Segmento    string    `json:"segmento"`
	Contato     string    `json:"contato"`
	Telefone    string    `json:"telefone"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToFactoryResponse maps a stored factory to its API representation.
func ToFactoryResponse(f repository.Factory) FactoryResponse {
	return FactoryResponse{
		ID:          f.ID,
		Name:        f.Name,
		Localizacao: f.Localizacao,
		Segmento:    f.Segmento,
		Contato:     f.Contato,
		Telefone:    f.Telefone,
		Email:       f.Email,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// ToFactoryResponses maps a slice of stored factories.
func ToFactoryResponses(factories []repository.Factory) []FactoryResponse {
	out := make([]FactoryResponse, 0, len(factories))
	for _, f := range factories {
		out = append(out, ToFactoryResponse(f))
	}
	return out
}
