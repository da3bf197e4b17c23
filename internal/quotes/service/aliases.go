package service

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Uploaded spreadsheets arrive with inconsistent column headings accumulated
// over years of factory templates. Each logical field has an ordered list of
// candidate keys; the first key present in the raw payload wins. The
// precedence lives here as data so it stays visible and testable.

type textAlias struct {
	field string
	keys  []string
}

type numberAlias struct {
	field string
	keys  []string
}

var textAliases = []textAlias{
	{"ref", []string{"ref", "referencia", "referência", "REF", "codigo", "código"}},
	{"description", []string{"description", "descricao", "descrição", "desc"}},
	{"name", []string{"name", "nome", "produto", "item"}},
	{"quoteName", []string{"quoteName", "nomeCotacao", "cotacao", "cotação"}},
	{"ncm", []string{"ncm", "NCM"}},
	{"unit", []string{"unit", "unidade", "und", "un"}},
	{"obs", []string{"obs", "observacao", "observação", "observacoes", "remark", "remarks"}},
	{"dataPedido", []string{"dataPedido", "data_pedido", "dataDoPedido"}},
	{"lotePedido", []string{"lotePedido", "lote_pedido", "lote"}},
}

var numberAliases = []numberAlias{
	{"ctns", []string{"ctns", "caixas", "cartons", "qtdCaixas"}},
	{"unitCtn", []string{"unitCtn", "unit_ctn", "unidadesPorCaixa", "unCtn"}},
	{"unitPrice", []string{"unitPrice", "unit_price", "preco", "preço", "precoUnitario", "u.price"}},
	{"amount", []string{"amount", "valorTotal", "total"}},
	{"cbm", []string{"cbm", "CBM"}},
	{"cbmTotal", []string{"cbmTotal", "cbm_total", "cbmTotalGeral"}},
	{"grossWeight", []string{"grossWeight", "gross_weight", "pesoBruto", "g.w", "gw"}},
	{"netWeight", []string{"netWeight", "net_weight", "pesoLiquido", "pesoLíquido", "n.w", "nw"}},
	{"length", []string{"length", "comprimento", "comp"}},
	{"width", []string{"width", "largura", "larg"}},
	{"height", []string{"height", "altura", "alt"}},
}

// NormalizeFields resolves a raw key/value payload into CreateParams using
// the alias tables. Unknown keys are ignored; missing fields keep their zero
// values, matching the everything-optional quote model.
func NormalizeFields(factoryID uuid.UUID, raw map[string]any) CreateParams {
	params := CreateParams{FactoryID: factoryID}

	text := map[string]*string{
		"ref":         &params.Ref,
		"description": &params.Description,
		"name":        &params.Name,
		"quoteName":   &params.QuoteName,
		"ncm":         &params.NCM,
		"unit":        &params.Unit,
		"obs":         &params.Obs,
		"dataPedido":  &params.DataPedido,
		"lotePedido":  &params.LotePedido,
	}
	for _, alias := range textAliases {
		if value, ok := firstText(raw, alias.keys); ok {
			*text[alias.field] = value
		}
	}

	numbers := map[string]*float64{
		"ctns":        &params.Ctns,
		"unitCtn":     &params.UnitCtn,
		"unitPrice":   &params.UnitPrice,
		"amount":      &params.Amount,
		"cbm":         &params.CBM,
		"cbmTotal":    &params.CBMTotal,
		"grossWeight": &params.GrossWeight,
		"netWeight":   &params.NetWeight,
		"length":      &params.Length,
		"width":       &params.Width,
		"height":      &params.Height,
	}
	for _, alias := range numberAliases {
		if value, ok := firstNumber(raw, alias.keys); ok {
			*numbers[alias.field] = value
		}
	}

	return params
}

func firstText(raw map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		value, present := raw[key]
		if !present {
			continue
		}
		if text, ok := value.(string); ok {
			trimmed := strings.TrimSpace(text)
			if trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}

func firstNumber(raw map[string]any, keys []string) (float64, bool) {
	for _, key := range keys {
		value, present := raw[key]
		if !present {
			continue
		}
		switch typed := value.(type) {
		case float64:
			return typed, true
		case int:
			return float64(typed), true
		case string:
			// Brazilian spreadsheets use comma as the decimal separator.
			normalized := strings.ReplaceAll(strings.TrimSpace(typed), ",", ".")
			if parsed, err := strconv.ParseFloat(normalized, 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}
