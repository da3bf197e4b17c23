package aggregation

import (
	"testing"

	"github.com/google/uuid"
)

func groupWith(factoryName string, imports ...Import) FactoryGroup {
	return FactoryGroup{
		Factory: FactoryInfo{ID: uuid.New(), Name: factoryName},
		Imports: imports,
	}
}

func TestDetectDuplicatesWithinFactory(t *testing.T) {
	g := groupWith("Fábrica A",
		Import{ID: "2026-03-10T09:00", Products: []Product{{Ref: "REF-1"}, {Ref: "REF-2"}}},
		Import{ID: "2026-03-10T10:00", Products: []Product{{Ref: "REF-1"}}},
	)

	records := DetectDuplicates(ScopeFactory, []FactoryGroup{g}, NormalizeTrim)
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Reference != "REF-1" {
		t.Fatalf("reference = %q", records[0].Reference)
	}
	if len(records[0].Occurrences) != 2 {
		t.Fatalf("occurrences = %d, want 2", len(records[0].Occurrences))
	}
}

func TestDetectDuplicatesFactoryScopeIgnoresCrossFactoryRepeats(t *testing.T) {
	a := groupWith("Fábrica A", Import{ID: "i1", Products: []Product{{Ref: "REF-1"}}})
	b := groupWith("Fábrica B", Import{ID: "i2", Products: []Product{{Ref: "REF-1"}}})

	if records := DetectDuplicates(ScopeFactory, []FactoryGroup{a, b}, NormalizeTrim); len(records) != 0 {
		t.Fatalf("factory scope flagged cross-factory repeat: %+v", records)
	}
	if records := DetectDuplicates(ScopeGlobal, []FactoryGroup{a, b}, NormalizeTrim); len(records) != 1 {
		t.Fatalf("global scope records = %d, want 1", len(records))
	}
}

func TestDetectDuplicatesSymmetry(t *testing.T) {
	g := groupWith("Fábrica A",
		Import{ID: "i1", Products: []Product{{Ref: "X", Description: "primeiro"}}},
		Import{ID: "i2", Products: []Product{{Ref: "X", Description: "segundo"}}},
	)

	records := DetectDuplicates(ScopeFactory, []FactoryGroup{g}, NormalizeTrim)
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	// Both occurrences must be listed; detection has no notion of an
	// "original" versus a "duplicate".
	descriptions := map[string]bool{}
	for _, occ := range records[0].Occurrences {
		descriptions[occ.Product.Description] = true
	}
	if !descriptions["primeiro"] || !descriptions["segundo"] {
		t.Fatalf("missing occurrence: %+v", records[0].Occurrences)
	}
}

func TestDetectDuplicatesSkipsReplacementImports(t *testing.T) {
	g := groupWith("Fábrica A",
		Import{ID: "i1", Products: []Product{{Ref: "X"}}},
		Import{ID: "i2", IsReplacement: true, Products: []Product{{Ref: "X"}, {Ref: "X"}}},
	)

	if records := DetectDuplicates(ScopeFactory, []FactoryGroup{g}, NormalizeTrim); len(records) != 0 {
		t.Fatalf("replacement import participated in detection: %+v", records)
	}
}

func TestDetectDuplicatesIgnoresBlankRefs(t *testing.T) {
	g := groupWith("Fábrica A",
		Import{ID: "i1", Products: []Product{{Ref: ""}, {Ref: "   "}}},
		Import{ID: "i2", Products: []Product{{Ref: ""}}},
	)

	if records := DetectDuplicates(ScopeFactory, []FactoryGroup{g}, NormalizeTrim); len(records) != 0 {
		t.Fatalf("blank refs matched each other: %+v", records)
	}
}

func TestDetectDuplicatesTrimsButKeepsCaseByDefault(t *testing.T) {
	g := groupWith("Fábrica A",
		Import{ID: "i1", Products: []Product{{Ref: " REF-1 "}, {Ref: "ref-1"}}},
		Import{ID: "i2", Products: []Product{{Ref: "REF-1"}}},
	)

	records := DetectDuplicates(ScopeFactory, []FactoryGroup{g}, NormalizeTrim)
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if len(records[0].Occurrences) != 2 {
		t.Fatalf("case-sensitive match grouped %d occurrences, want 2", len(records[0].Occurrences))
	}

	folded := DetectDuplicates(ScopeFactory, []FactoryGroup{g}, NormalizeTrimFold)
	if len(folded) != 1 || len(folded[0].Occurrences) != 3 {
		t.Fatalf("fold policy: %+v", folded)
	}
}

func TestDetectDuplicatesOccurrenceContext(t *testing.T) {
	g := groupWith("Fábrica A",
		Import{ID: "i1", ImportName: "Pedido 1", DataPedido: "01/03/2026", LotePedido: "L-1", Products: []Product{{Ref: "X"}}},
		Import{ID: "i2", ImportName: "Pedido 2", Products: []Product{{Ref: "X"}}},
	)

	records := DetectDuplicates(ScopeFactory, []FactoryGroup{g}, NormalizeTrim)
	occ := records[0].Occurrences[0]
	if occ.FactoryName != "Fábrica A" || occ.ImportID != "i1" || occ.ImportName != "Pedido 1" {
		t.Fatalf("occurrence context: %+v", occ)
	}
	if occ.DataPedido != "01/03/2026" || occ.LotePedido != "L-1" {
		t.Fatalf("occurrence order fields: %+v", occ)
	}
}
