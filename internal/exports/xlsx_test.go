package exports

import (
	"strings"
	"testing"
	"time"

	"github.com/gustavo-devfull/fabricas-sub000/internal/aggregation"
	importsvc "github.com/gustavo-devfull/fabricas-sub000/internal/imports/service"

	"github.com/google/uuid"
)

func TestSheetNameSanitizesAndDeduplicates(t *testing.T) {
	a := sheetName("Fábrica: A/B", 0)
	if strings.ContainsAny(a, ":\\/?*[]") {
		t.Fatalf("sheet name %q contains forbidden characters", a)
	}

	b := sheetName("Mesma Fábrica", 1)
	c := sheetName("Mesma Fábrica", 2)
	if b == c {
		t.Fatalf("repeated factory names produced equal sheet names %q", b)
	}
}

func TestSheetNameTruncatesLongNames(t *testing.T) {
	name := sheetName(strings.Repeat("Indústria ", 10), 0)
	if got := len([]rune(name)); got > 31 {
		t.Fatalf("sheet name length = %d, want <= 31", got)
	}
}

func TestBuildWorkbookEmptyView(t *testing.T) {
	f, err := buildWorkbook(nil)
	if err != nil {
		t.Fatalf("buildWorkbook() error = %v", err)
	}
	defer f.Close()

	value, err := f.GetCellValue("Cotações", "A1")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if value != "Nenhuma cotação encontrada" {
		t.Fatalf("A1 = %q", value)
	}
}

func TestBuildWorkbookWritesFactoryAndProducts(t *testing.T) {
	factoryID := uuid.New()
	bucket := time.Date(2025, 3, 10, 14, 5, 0, 0, time.UTC)
	view := importsvc.FactoryView{
		Factory: aggregation.FactoryInfo{ID: factoryID, Name: "Fábrica Norte", Localizacao: "Yiwu", Segmento: "Utilidades"},
		Imports: []aggregation.Import{{
			ID:        aggregation.BucketKey(bucket),
			FactoryID: factoryID,
			Datetime:  bucket,
			Date:      "10/03/2025",
			Time:      "14:05",
			Count:     1,
			Products: []aggregation.Product{{
				ID: uuid.New(), FactoryID: factoryID,
				Ref: "A-100", Description: "Caneca", Unit: "PC",
				Ctns: 10, UnitCtn: 12, UnitPrice: 2.5,
				OrderStatus: aggregation.StatusPending,
			}},
		}},
		Summary: aggregation.FactorySummary{TotalAmount: 300, TotalCBM: 0, TotalProducts: 1, ImportCount: 1},
	}

	f, err := buildWorkbook([]importsvc.FactoryView{view})
	if err != nil {
		t.Fatalf("buildWorkbook() error = %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 {
		t.Fatalf("sheet count = %d, want 1", len(sheets))
	}

	header, err := f.GetCellValue(sheets[0], "A1")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if header != "Fábrica Norte" {
		t.Fatalf("factory header = %q", header)
	}

	// Row 3 is the import header, row 4 the column header, row 5 the product.
	ref, err := f.GetCellValue(sheets[0], "A5")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if ref != "A-100" {
		t.Fatalf("product ref cell = %q", ref)
	}

	amount, err := f.GetCellValue(sheets[0], "I5")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if amount != "300,00" {
		t.Fatalf("amount cell = %q, want 300,00", amount)
	}
}
