package aggregation

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func ts(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return &parsed
}

func TestGroupQuotesByImportBucketsByMinute(t *testing.T) {
	factoryID := uuid.New()
	quotes := []Product{
		{ID: uuid.New(), FactoryID: factoryID, Ref: "A", CreatedAt: ts(t, "2026-03-10T14:30:05Z")},
		{ID: uuid.New(), FactoryID: factoryID, Ref: "B", CreatedAt: ts(t, "2026-03-10T14:30:59Z")},
		{ID: uuid.New(), FactoryID: factoryID, Ref: "C", CreatedAt: ts(t, "2026-03-10T14:31:00Z")},
	}

	imports, dropped := GroupQuotesByImport(quotes, nil)
	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if len(imports) != 2 {
		t.Fatalf("imports = %d, want 2", len(imports))
	}
	if imports[0].ID != "2026-03-10T14:30" {
		t.Fatalf("first bucket id = %q", imports[0].ID)
	}
	if imports[0].Count != 2 || imports[1].Count != 1 {
		t.Fatalf("counts = %d, %d", imports[0].Count, imports[1].Count)
	}
	if imports[0].Date != "10/03/2026" || imports[0].Time != "14:30" {
		t.Fatalf("display date/time = %q %q", imports[0].Date, imports[0].Time)
	}
}

func TestGroupQuotesByImportIsIdempotent(t *testing.T) {
	factoryID := uuid.New()
	quotes := []Product{
		{ID: uuid.New(), FactoryID: factoryID, Ref: "A", CreatedAt: ts(t, "2026-03-10T09:00:10Z")},
		{ID: uuid.New(), FactoryID: factoryID, Ref: "B", CreatedAt: ts(t, "2026-03-10T09:05:10Z")},
	}

	first, _ := GroupQuotesByImport(quotes, nil)
	second, _ := GroupQuotesByImport(quotes, nil)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Count != second[i].Count {
			t.Fatalf("run %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestGroupQuotesByImportDropsQuotesWithoutTimestamp(t *testing.T) {
	factoryID := uuid.New()
	quotes := []Product{
		{ID: uuid.New(), FactoryID: factoryID, Ref: "A", CreatedAt: ts(t, "2026-03-10T09:00:10Z")},
		{ID: uuid.New(), FactoryID: factoryID, Ref: "B"},
	}

	imports, dropped := GroupQuotesByImport(quotes, nil)
	if dropped != 1 {
		t.Fatalf("dropped = %d, want 1", dropped)
	}
	if len(imports) != 1 || imports[0].Count != 1 {
		t.Fatalf("unexpected imports: %+v", imports)
	}
}

func TestGroupQuotesByImportNeverEmitsEmptyImports(t *testing.T) {
	imports, dropped := GroupQuotesByImport([]Product{{Ref: "no-timestamp"}}, nil)
	if dropped != 1 {
		t.Fatalf("dropped = %d, want 1", dropped)
	}
	if len(imports) != 0 {
		t.Fatalf("expected no imports, got %d", len(imports))
	}
}

func TestGroupQuotesByImportMergesMetadataOverlay(t *testing.T) {
	factoryID := uuid.New()
	quotes := []Product{
		{ID: uuid.New(), FactoryID: factoryID, Ref: "A", QuoteName: "Cotação Março", CreatedAt: ts(t, "2026-03-10T09:00:10Z")},
	}
	metadata := map[string]ImportMetadata{
		"2026-03-10T09:00": {
			ImportName:    "Pedido 42",
			DataPedido:    "15/03/2026",
			LotePedido:    "L-7",
			IsReplacement: true,
		},
	}

	imports, _ := GroupQuotesByImport(quotes, metadata)
	imp := imports[0]
	if imp.ImportName != "Pedido 42" || imp.DataPedido != "15/03/2026" || imp.LotePedido != "L-7" {
		t.Fatalf("overlay not applied: %+v", imp)
	}
	if !imp.IsReplacement {
		t.Fatal("expected replacement flag from overlay")
	}
	if imp.QuoteName != "Cotação Março" {
		t.Fatalf("quoteName fallback = %q, want quote's own", imp.QuoteName)
	}
}

func TestGroupQuotesByImportOverlayQuoteNameWins(t *testing.T) {
	factoryID := uuid.New()
	quotes := []Product{
		{ID: uuid.New(), FactoryID: factoryID, QuoteName: "do produto", CreatedAt: ts(t, "2026-03-10T09:00:10Z")},
	}
	metadata := map[string]ImportMetadata{
		"2026-03-10T09:00": {QuoteName: "da metadata"},
	}

	imports, _ := GroupQuotesByImport(quotes, metadata)
	if imports[0].QuoteName != "da metadata" {
		t.Fatalf("quoteName = %q", imports[0].QuoteName)
	}
}

func TestGroupQuotesByImportTotalValueUsesEffectiveAmounts(t *testing.T) {
	factoryID := uuid.New()
	quotes := []Product{
		{ID: uuid.New(), FactoryID: factoryID, Ctns: 10, UnitCtn: 12, UnitPrice: 2, CreatedAt: ts(t, "2026-03-10T09:00:10Z")},
		{ID: uuid.New(), FactoryID: factoryID, Amount: 50, Ctns: 999, UnitPrice: 999, CreatedAt: ts(t, "2026-03-10T09:00:20Z")},
	}

	imports, _ := GroupQuotesByImport(quotes, nil)
	if got := imports[0].TotalValue; got != 240+50 {
		t.Fatalf("totalValue = %v, want 290", got)
	}
}
