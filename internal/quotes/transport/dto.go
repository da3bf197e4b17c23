package transport

import (
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/aggregation"
	"github.com/gustavo-devfull/fabricas-sub000/internal/quotes/repository"

	"github.com/google/uuid"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateQuoteRequest is the request body for creating a new quote.
// Fields holds the raw key/value payload; legacy column-heading aliases are
// resolved server-side so old spreadsheet templates keep working.
type CreateQuoteRequest struct {
	FactoryID uuid.UUID      `json:"factoryId" validate:"required"`
	Fields    map[string]any `json:"fields" validate:"required"`
}

// UpdateQuoteRequest is the request body for a partial quote update.
// Absent fields are left untouched.
type UpdateQuoteRequest struct {
	Ref         *string  `json:"ref" validate:"omitempty,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Name        *string  `json:"name" validate:"omitempty,max=500"`
	QuoteName   *string  `json:"quoteName" validate:"omitempty,max=500"`
	NCM         *string  `json:"ncm" validate:"omitempty,max=20"`
	Unit        *string  `json:"unit" validate:"omitempty,max=50"`
	Obs         *string  `json:"obs" validate:"omitempty,max=2000"`
	Ctns        *float64 `json:"ctns" validate:"omitempty,min=0"`
	UnitCtn     *float64 `json:"unitCtn" validate:"omitempty,min=0"`
	UnitPrice   *float64 `json:"unitPrice" validate:"omitempty,min=0"`
	Amount      *float64 `json:"amount" validate:"omitempty,min=0"`
	CBM         *float64 `json:"cbm" validate:"omitempty,min=0"`
	CBMTotal    *float64 `json:"cbmTotal" validate:"omitempty,min=0"`
	GrossWeight *float64 `json:"grossWeight" validate:"omitempty,min=0"`
	NetWeight   *float64 `json:"netWeight" validate:"omitempty,min=0"`
	Length      *float64 `json:"length" validate:"omitempty,min=0"`
	Width       *float64 `json:"width" validate:"omitempty,min=0"`
	Height      *float64 `json:"height" validate:"omitempty,min=0"`
	DataPedido  *string  `json:"dataPedido" validate:"omitempty,max=50"`
	LotePedido  *string  `json:"lotePedido" validate:"omitempty,max=100"`
}

// ToUpdateParams converts the request to repository update params.
func (r UpdateQuoteRequest) ToUpdateParams() repository.UpdateParams {
	return repository.UpdateParams{
		Ref:         r.Ref,
		Description: r.Description,
		Name:        r.Name,
		QuoteName:   r.QuoteName,
		NCM:         r.NCM,
		Unit:        r.Unit,
		Obs:         r.Obs,
		Ctns:        r.Ctns,
		UnitCtn:     r.UnitCtn,
		UnitPrice:   r.UnitPrice,
		Amount:      r.Amount,
		CBM:         r.CBM,
		CBMTotal:    r.CBMTotal,
		GrossWeight: r.GrossWeight,
		NetWeight:   r.NetWeight,
		Length:      r.Length,
		Width:       r.Width,
		Height:      r.Height,
		DataPedido:  r.DataPedido,
		LotePedido:  r.LotePedido,
	}
}

// ── Responses ─────────────────────────────────────────────────────────────────

// QuoteResponse is the API representation of a quote line. The legacy
// boolean pair (exported, selectedForOrder) is derived from the status enum
// for frontend compatibility.
type QuoteResponse struct {
	ID               uuid.UUID  `json:"id"`
	FactoryID        uuid.UUID  `json:"factoryId"`
	Ref              string     `json:"ref"`
	Description      string     `json:"description"`
	Name             string     `json:"name"`
	QuoteName        string     `json:"quoteName"`
	NCM              string     `json:"ncm"`
	Unit             string     `json:"unit"`
	Obs              string     `json:"obs"`
	Ctns             float64    `json:"ctns"`
	UnitCtn          float64    `json:"unitCtn"`
	UnitPrice        float64    `json:"unitPrice"`
	Amount           float64    `json:"amount"`
	CBM              float64    `json:"cbm"`
	CBMTotal         float64    `json:"cbmTotal"`
	GrossWeight      float64    `json:"grossWeight"`
	NetWeight        float64    `json:"netWeight"`
	Length           float64    `json:"length"`
	Width            float64    `json:"width"`
	Height           float64    `json:"height"`
	OrderStatus      string     `json:"orderStatus"`
	Exported         bool       `json:"exported"`
	SelectedForOrder bool       `json:"selectedForOrder"`
	ExportedAt       *time.Time `json:"exportedAt,omitempty"`
	DataPedido       string     `json:"dataPedido"`
	LotePedido       string     `json:"lotePedido"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// ToQuoteResponse maps a stored quote to its API representation.
func ToQuoteResponse(q repository.Quote) QuoteResponse {
	status := aggregation.OrderStatus(q.OrderStatus)
	return QuoteResponse{
		ID:               q.ID,
		FactoryID:        q.FactoryID,
		Ref:              q.Ref,
		Description:      q.Description,
		Name:             q.Name,
		QuoteName:        q.QuoteName,
		NCM:              q.NCM,
		Unit:             q.Unit,
		Obs:              q.Obs,
		Ctns:             q.Ctns,
		UnitCtn:          q.UnitCtn,
		UnitPrice:        q.UnitPrice,
		Amount:           q.Amount,
		CBM:              q.CBM,
		CBMTotal:         q.CBMTotal,
		GrossWeight:      q.GrossWeight,
		NetWeight:        q.NetWeight,
		Length:           q.Length,
		Width:            q.Width,
		Height:           q.Height,
		OrderStatus:      q.OrderStatus,
		Exported:         status.Exported(),
		SelectedForOrder: status.SelectedForOrder(),
		ExportedAt:       q.ExportedAt,
		DataPedido:       q.DataPedido,
		LotePedido:       q.LotePedido,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

// ToQuoteResponses maps a slice of stored quotes.
func ToQuoteResponses(quotes []repository.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, ToQuoteResponse(q))
	}
	return out
}
