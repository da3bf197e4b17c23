package service

import (
	"testing"

	"github.com/google/uuid"
)

func TestNormalizeFieldsAliasPrecedence(t *testing.T) {
	raw := map[string]any{
		"referencia": "REF-LEGADO",
		"ref":        "REF-NOVO",
		"descricao":  "copo de vidro",
	}

	params := NormalizeFields(uuid.New(), raw)
	if params.Ref != "REF-NOVO" {
		t.Fatalf("ref = %q, canonical key must win over legacy alias", params.Ref)
	}
	if params.Description != "copo de vidro" {
		t.Fatalf("description = %q", params.Description)
	}
}

func TestNormalizeFieldsLegacyKeysResolve(t *testing.T) {
	raw := map[string]any{
		"pesoBruto":  12.5,
		"pesoLiquido": "11,2",
		"caixas":     "40",
		"preço":      2.3,
	}

	params := NormalizeFields(uuid.New(), raw)
	if params.GrossWeight != 12.5 {
		t.Fatalf("grossWeight = %v", params.GrossWeight)
	}
	if params.NetWeight != 11.2 {
		t.Fatalf("netWeight = %v, comma decimal must parse", params.NetWeight)
	}
	if params.Ctns != 40 {
		t.Fatalf("ctns = %v", params.Ctns)
	}
	if params.UnitPrice != 2.3 {
		t.Fatalf("unitPrice = %v", params.UnitPrice)
	}
}

func TestNormalizeFieldsIgnoresUnknownAndBlank(t *testing.T) {
	raw := map[string]any{
		"colunaMisteriosa": "valor",
		"ref":              "   ",
		"codigo":           "REF-9",
		"ctns":             "não numérico",
	}

	params := NormalizeFields(uuid.New(), raw)
	if params.Ref != "REF-9" {
		t.Fatalf("blank canonical value must fall through to next alias, got %q", params.Ref)
	}
	if params.Ctns != 0 {
		t.Fatalf("unparseable number must stay zero, got %v", params.Ctns)
	}
}
