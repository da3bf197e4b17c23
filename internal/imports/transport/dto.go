package transport

import (
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/aggregation"
	"github.com/gustavo-devfull/fabricas-sub000/internal/imports/repository"
	importsvc "github.com/gustavo-devfull/fabricas-sub000/internal/imports/service"

	"github.com/google/uuid"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// ViewQuery are the filter and sort parameters of the aggregated view.
// The two sort flags are mutually exclusive; the handler rejects both.
type ViewQuery struct {
	DataPedido       string `form:"dataPedido"`
	LotePedido       string `form:"lotePedido"`
	BuscaGeral       string `form:"buscaGeral"`
	SortByRecent     bool   `form:"sortByRecent"`
	SortByDataPedido bool   `form:"sortByDataPedido"`
}

// UpsertMetadataRequest is the request body for editing an import's overlay.
// Absent fields keep their stored values.
type UpsertMetadataRequest struct {
	ImportName *string `json:"importName" validate:"omitempty,max=500"`
	QuoteName  *string `json:"quoteName" validate:"omitempty,max=500"`
	DataPedido *string `json:"dataPedido" validate:"omitempty,max=50"`
	LotePedido *string `json:"lotePedido" validate:"omitempty,max=100"`
}

// ToUpsertParams converts the request to repository upsert params.
func (r UpsertMetadataRequest) ToUpsertParams() repository.UpsertParams {
	return repository.UpsertParams{
		ImportName: r.ImportName,
		QuoteName:  r.QuoteName,
		DataPedido: r.DataPedido,
		LotePedido: r.LotePedido,
	}
}

// MarkReplacementRequest flips an import's replacement flag.
type MarkReplacementRequest struct {
	IsReplacement *bool `json:"isReplacement" validate:"required"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// ProductResponse is one product line inside the aggregated view.
type ProductResponse struct {
	ID               uuid.UUID  `json:"id"`
	Ref              string     `json:"ref"`
	Description      string     `json:"description"`
	Name             string     `json:"name"`
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
	OrderStatus      string     `json:"orderStatus"`
	Exported         bool       `json:"exported"`
	SelectedForOrder bool       `json:"selectedForOrder"`
	ExportedAt       *time.Time `json:"exportedAt,omitempty"`
}

// ImportResponse is one derived import bucket with its summary.
type ImportResponse struct {
	ID            string            `json:"id"`
	Datetime      time.Time         `json:"datetime"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Count         int               `json:"count"`
	TotalValue    float64           `json:"totalValue"`
	ImportName    string            `json:"importName"`
	QuoteName     string            `json:"quoteName"`
	DataPedido    string            `json:"dataPedido"`
	LotePedido    string            `json:"lotePedido"`
	IsReplacement bool              `json:"isReplacement"`
	CommentCount  int               `json:"commentCount"`
	Summary       SummaryResponse   `json:"summary"`
	Products      []ProductResponse `json:"products"`
}

// SummaryResponse holds derived totals. Raw floats plus display strings
// rounded at this presentation boundary (2 decimals for currency, 3 for
// CBM, Brazilian comma separator).
type SummaryResponse struct {
	TotalAmount        float64 `json:"totalAmount"`
	TotalCBM           float64 `json:"totalCBM"`
	TotalAmountDisplay string  `json:"totalAmountDisplay"`
	TotalCBMDisplay    string  `json:"totalCBMDisplay"`
}

// FactoryViewResponse is one factory's slice of the aggregated view.
type FactoryViewResponse struct {
	Factory       FactoryHeaderResponse `json:"factory"`
	Exported      bool                  `json:"exported"`
	ImportCount   int                   `json:"importCount"`
	TotalProducts int                   `json:"totalProducts"`
	Summary       SummaryResponse       `json:"summary"`
	Imports       []ImportResponse      `json:"imports"`
}

// FactoryHeaderResponse is the factory header of a view group.
type FactoryHeaderResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Localizacao string    `json:"localizacao"`
	Segmento    string    `json:"segmento"`
}

// DuplicateOccurrenceResponse locates one appearance of a repeated reference.
type DuplicateOccurrenceResponse struct {
	FactoryID   uuid.UUID       `json:"factoryId"`
	FactoryName string          `json:"factoryName"`
	ImportID    string          `json:"importId"`
	ImportName  string          `json:"importName"`
	DataPedido  string          `json:"dataPedido"`
	LotePedido  string          `json:"lotePedido"`
	Product     ProductResponse `json:"product"`
}

// DuplicateRecordResponse lists all occurrences of one repeated reference.
type DuplicateRecordResponse struct {
	Reference   string                        `json:"reference"`
	Occurrences []DuplicateOccurrenceResponse `json:"occurrences"`
}

// ToggleResponse reports the outcome of a factory-wide export toggle.
type ToggleResponse struct {
	OrderStatus string `json:"orderStatus"`
	Exported    bool   `json:"exported"`
	Total       int    `json:"total"`
	Updated     int    `json:"updated"`
	Failed      int    `json:"failed"`
	Warning     string `json:"warning,omitempty"`
}

// ── Mapping ───────────────────────────────────────────────────────────────────

// ToFactoryViewResponses maps the service views to API responses.
func ToFactoryViewResponses(views []importsvc.FactoryView) []FactoryViewResponse {
	out := make([]FactoryViewResponse, 0, len(views))
	for _, view := range views {
		out = append(out, toFactoryViewResponse(view))
	}
	return out
}

func toFactoryViewResponse(view importsvc.FactoryView) FactoryViewResponse {
	imports := make([]ImportResponse, 0, len(view.Imports))
	for _, imp := range view.Imports {
		imports = append(imports, toImportResponse(imp, view.CommentCounts[imp.ID]))
	}
	return FactoryViewResponse{
		Factory: FactoryHeaderResponse{
			ID:          view.Factory.ID,
			Name:        view.Factory.Name,
			Localizacao: view.Factory.Localizacao,
			Segmento:    view.Factory.Segmento,
		},
		Exported:      view.Exported,
		ImportCount:   view.Summary.ImportCount,
		TotalProducts: view.Summary.TotalProducts,
		Summary:       toSummaryResponse(view.Summary.TotalAmount, view.Summary.TotalCBM),
		Imports:       imports,
	}
}

func toImportResponse(imp aggregation.Import, commentCount int) ImportResponse {
	summary := aggregation.SummarizeImport(imp)
	products := make([]ProductResponse, 0, len(imp.Products))
	for _, p := range imp.Products {
		products = append(products, toProductResponse(p))
	}
	return ImportResponse{
		ID:            imp.ID,
		Datetime:      imp.Datetime,
		Date:          imp.Date,
		Time:          imp.Time,
		Count:         imp.Count,
		TotalValue:    imp.TotalValue,
		ImportName:    imp.ImportName,
		QuoteName:     imp.QuoteName,
		DataPedido:    imp.DataPedido,
		LotePedido:    imp.LotePedido,
		IsReplacement: imp.IsReplacement,
		CommentCount:  commentCount,
		Summary:       toSummaryResponse(summary.TotalAmount, summary.TotalCBM),
		Products:      products,
	}
}

func toProductResponse(p aggregation.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		Ref:              p.Ref,
		Description:      p.Description,
		Name:             p.Name,
		NCM:              p.NCM,
		Unit:             p.Unit,
		Obs:              p.Obs,
		Ctns:             p.Ctns,
		UnitCtn:          p.UnitCtn,
		UnitPrice:        p.UnitPrice,
		Amount:           p.Amount,
		CBM:              p.CBM,
		CBMTotal:         p.CBMTotal,
		GrossWeight:      p.GrossWeight,
		NetWeight:        p.NetWeight,
		OrderStatus:      string(p.OrderStatus),
		Exported:         p.OrderStatus.Exported(),
		SelectedForOrder: p.OrderStatus.SelectedForOrder(),
		ExportedAt:       p.ExportedAt,
	}
}

func toSummaryResponse(amount, cbm float64) SummaryResponse {
	return SummaryResponse{
		TotalAmount:        amount,
		TotalCBM:           cbm,
		TotalAmountDisplay: FormatMoney(amount),
		TotalCBMDisplay:    FormatCBM(cbm),
	}
}

// ToDuplicateRecordResponses maps detection records to API responses.
func ToDuplicateRecordResponses(records []aggregation.DuplicateRecord) []DuplicateRecordResponse {
	out := make([]DuplicateRecordResponse, 0, len(records))
	for _, record := range records {
		occurrences := make([]DuplicateOccurrenceResponse, 0, len(record.Occurrences))
		for _, occ := range record.Occurrences {
			occurrences = append(occurrences, DuplicateOccurrenceResponse{
				FactoryID:   occ.FactoryID,
				FactoryName: occ.FactoryName,
				ImportID:    occ.ImportID,
				ImportName:  occ.ImportName,
				DataPedido:  occ.DataPedido,
				LotePedido:  occ.LotePedido,
				Product:     toProductResponse(occ.Product),
			})
		}
		out = append(out, DuplicateRecordResponse{Reference: record.Reference, Occurrences: occurrences})
	}
	return out
}

// ToToggleResponse maps a toggle result to its API response.
func ToToggleResponse(result importsvc.ToggleResult) ToggleResponse {
	return ToggleResponse{
		OrderStatus: string(result.Target),
		Exported:    result.Target == aggregation.StatusExported,
		Total:       result.Total,
		Updated:     result.Updated,
		Failed:      result.Failed,
		Warning:     result.Warning,
	}
}
