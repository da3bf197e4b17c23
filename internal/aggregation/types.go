// Package aggregation implements the quote aggregation engine behind the
// selected-products view: it regroups flat quote records into per-factory
// import batches, computes financial and volumetric totals, detects repeated
// product references, and applies view filters and sorts. Every function in
// this package is pure — callers fetch data first and pass plain values in.
package aggregation

import (
	"time"

	"github.com/google/uuid"
)

// Product is one quoted product line inside the aggregated view.
// Numeric fields default to zero when the factory's submission omitted them;
// Amount and CBMTotal may carry precomputed values persisted by the
// order-creation flow, which take precedence over recomputation.
type Product struct {
	ID          uuid.UUID
	FactoryID   uuid.UUID
	Ref         string
	Description string
	Name        string
	QuoteName   string
	NCM         string
	Unit        string
	Obs         string

	Ctns      float64
	UnitCtn   float64
	UnitPrice float64
	Amount    float64

	CBM         float64
	CBMTotal    float64
	GrossWeight float64
	NetWeight   float64
	Length      float64
	Width       float64
	Height      float64

	OrderStatus OrderStatus
	ExportedAt  *time.Time
	DataPedido  string
	LotePedido  string

	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// ImportMetadata is the persisted overlay for a derived import bucket.
// It lives in its own store keyed by the bucket id and is merged on top of
// the freshly computed bucket on every load.
type ImportMetadata struct {
	ImportName    string
	QuoteName     string
	DataPedido    string
	LotePedido    string
	IsReplacement bool
}

// Import is a time-bucketed batch of quotes from one factory — the system's
// proxy for "one submission event". It is recomputed on every load and never
// persisted beyond its metadata overlay.
type Import struct {
	ID            string // minute-truncated ISO-8601 bucket key
	FactoryID     uuid.UUID
	Datetime      time.Time
	Date          string
	Time          string
	Count         int
	TotalValue    float64
	ImportName    string
	QuoteName     string
	DataPedido    string
	LotePedido    string
	IsReplacement bool
	Products      []Product
}

// FactoryInfo is the factory header shown with its grouped imports.
type FactoryInfo struct {
	ID          uuid.UUID
	Name        string
	Localizacao string
	Segmento    string
}

// FactoryGroup is one factory with its derived imports. Groups surfaced by
// the engine always have at least one import.
type FactoryGroup struct {
	Factory FactoryInfo
	Imports []Import
}

// DuplicateOccurrence locates one appearance of a repeated reference.
type DuplicateOccurrence struct {
	FactoryID   uuid.UUID
	FactoryName string
	ImportID    string
	ImportName  string
	DataPedido  string
	LotePedido  string
	Product     Product
}

// DuplicateRecord lists all occurrences of one repeated reference.
// Derived per detection pass, never persisted.
type DuplicateRecord struct {
	Reference   string
	Occurrences []DuplicateOccurrence
}

// Filters are the textual view filters. Empty values always pass.
type Filters struct {
	DataPedido string
	LotePedido string
	BuscaGeral string
}

// ImportSummary holds per-import derived totals.
type ImportSummary struct {
	TotalAmount  float64
	TotalCBM     float64
	ProductCount int
}

// FactorySummary holds per-factory derived totals across all imports.
type FactorySummary struct {
	TotalAmount   float64
	TotalCBM      float64
	TotalProducts int
	ImportCount   int
}
