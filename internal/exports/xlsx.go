package exports

import (
	"fmt"
	"strings"

	"github.com/gustavo-devfull/fabricas-sub000/internal/aggregation"
	importsvc "github.com/gustavo-devfull/fabricas-sub000/internal/imports/service"
	importtransport "github.com/gustavo-devfull/fabricas-sub000/internal/imports/transport"

	"github.com/xuri/excelize/v2"
)

// Excel sheet names cap at 31 chars and reject a handful of characters.
const maxSheetNameLen = 28

var productHeader = []any{
	"REF", "DESCRIÇÃO", "NOME", "NCM", "UNIDADE",
	"CTNS", "UNIT/CTN", "PREÇO UNIT.", "VALOR", "CBM", "CBM TOTAL", "STATUS",
}

// buildWorkbook renders one sheet per factory: a factory header, then each
// import's header and product rows, then the factory totals.
func buildWorkbook(views []importsvc.FactoryView) (*excelize.File, error) {
	f := excelize.NewFile()
	if len(views) == 0 {
		f.SetSheetName("Sheet1", "Cotações")
		if err := f.SetSheetRow("Cotações", "A1", &[]any{"Nenhuma cotação encontrada"}); err != nil {
			return nil, err
		}
		return f, nil
	}

	for i, view := range views {
		sheet := sheetName(view.Factory.Name, i)
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, err
			}
		}
		if err := writeFactorySheet(f, sheet, view); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeFactorySheet(f *excelize.File, sheet string, view importsvc.FactoryView) error {
	row := 1
	if err := setRow(f, sheet, row, []any{view.Factory.Name, view.Factory.Localizacao, view.Factory.Segmento}); err != nil {
		return err
	}
	row += 2

	for _, imp := range view.Imports {
		if err := setRow(f, sheet, row, importHeaderRow(imp)); err != nil {
			return err
		}
		row++
		if err := setRow(f, sheet, row, productHeader); err != nil {
			return err
		}
		row++
		for _, p := range imp.Products {
			if err := setRow(f, sheet, row, productRow(p)); err != nil {
				return err
			}
			row++
		}
		row++
	}

	totals := []any{
		"TOTAL FÁBRICA",
		fmt.Sprintf("%d importações", view.Summary.ImportCount),
		fmt.Sprintf("%d produtos", view.Summary.TotalProducts),
		importtransport.FormatMoney(view.Summary.TotalAmount),
		importtransport.FormatCBM(view.Summary.TotalCBM),
	}
	return setRow(f, sheet, row, totals)
}

func importHeaderRow(imp aggregation.Import) []any {
	name := imp.ImportName
	if name == "" {
		name = imp.ID
	}
	return []any{
		name,
		imp.Date + " " + imp.Time,
		imp.DataPedido,
		imp.LotePedido,
		fmt.Sprintf("%d produtos", imp.Count),
		importtransport.FormatMoney(imp.TotalValue),
	}
}

func productRow(p aggregation.Product) []any {
	return []any{
		p.Ref,
		p.Description,
		p.Name,
		p.NCM,
		p.Unit,
		p.Ctns,
		p.UnitCtn,
		importtransport.FormatMoney(p.UnitPrice),
		importtransport.FormatMoney(aggregation.EffectiveAmount(p)),
		importtransport.FormatCBM(p.CBM),
		importtransport.FormatCBM(aggregation.EffectiveCBM(p)),
		string(p.OrderStatus),
	}
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	return f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values)
}

var sheetNameReplacer = strings.NewReplacer(
	":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", " ", "]", " ",
)

func sheetName(factoryName string, index int) string {
	name := strings.TrimSpace(sheetNameReplacer.Replace(factoryName))
	if name == "" {
		name = "Fábrica"
	}
	runes := []rune(name)
	if len(runes) > maxSheetNameLen {
		name = string(runes[:maxSheetNameLen])
	}
	// Suffix with the position so repeated factory names stay unique.
	return fmt.Sprintf("%s (%d)", name, index+1)
}
