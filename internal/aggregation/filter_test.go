package aggregation

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func viewFixture() []FactoryGroup {
	return []FactoryGroup{
		{
			Factory: FactoryInfo{ID: uuid.New(), Name: "Cerâmica Sul"},
			Imports: []Import{
				{ID: "a1", DataPedido: "10/03/2026", LotePedido: "L-1", Datetime: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
					Products: []Product{{Ref: "CS-1", Description: "vaso decorativo"}}},
				{ID: "a2", DataPedido: "20/04/2026", LotePedido: "L-2", Datetime: time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC),
					Products: []Product{{Ref: "CS-2", Description: "prato raso"}}},
			},
		},
		{
			Factory: FactoryInfo{ID: uuid.New(), Name: "Metalúrgica Norte"},
			Imports: []Import{
				{ID: "b1", DataPedido: "05/02/2026", LotePedido: "L-9", Datetime: time.Date(2026, 2, 5, 9, 0, 0, 0, time.UTC),
					Products: []Product{{Ref: "MN-1", Description: "suporte de aço"}}},
			},
		},
	}
}

func TestApplyFiltersConjunction(t *testing.T) {
	groups := viewFixture()

	out := ApplyFilters(groups, Filters{DataPedido: "03/2026", LotePedido: "L-1"}, SortFlags{})
	if len(out) != 1 || len(out[0].Imports) != 1 || out[0].Imports[0].ID != "a1" {
		t.Fatalf("conjunction result: %+v", out)
	}

	// Same dataPedido but mismatching lote must exclude the import.
	out = ApplyFilters(groups, Filters{DataPedido: "03/2026", LotePedido: "L-9"}, SortFlags{})
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %+v", out)
	}
}

func TestApplyFiltersEmptyFiltersPassEverything(t *testing.T) {
	groups := viewFixture()
	out := ApplyFilters(groups, Filters{}, SortFlags{})
	if len(out) != 2 || len(out[0].Imports) != 2 {
		t.Fatalf("empty filters altered the view: %+v", out)
	}
}

func TestApplyFiltersPrunesEmptyFactories(t *testing.T) {
	out := ApplyFilters(viewFixture(), Filters{LotePedido: "L-9"}, SortFlags{})
	if len(out) != 1 || out[0].Factory.Name != "Metalúrgica Norte" {
		t.Fatalf("pruning result: %+v", out)
	}
}

func TestApplyFiltersBuscaGeralSearchesProductsAndFactory(t *testing.T) {
	groups := viewFixture()

	out := ApplyFilters(groups, Filters{BuscaGeral: "prato"}, SortFlags{})
	if len(out) != 1 || out[0].Imports[0].ID != "a2" {
		t.Fatalf("product description search: %+v", out)
	}

	out = ApplyFilters(groups, Filters{BuscaGeral: "metalúrgica"}, SortFlags{})
	if len(out) != 1 || out[0].Factory.Name != "Metalúrgica Norte" {
		t.Fatalf("factory name search: %+v", out)
	}
}

func TestApplyFiltersDoesNotMutateInput(t *testing.T) {
	groups := viewFixture()
	ApplyFilters(groups, Filters{LotePedido: "L-9"}, SortFlags{ByDataPedido: true})
	if len(groups[0].Imports) != 2 || groups[0].Factory.Name != "Cerâmica Sul" {
		t.Fatalf("input mutated: %+v", groups[0])
	}
}

func TestSortByRecentOrdersNewestFirst(t *testing.T) {
	out := ApplyFilters(viewFixture(), Filters{}, SortFlags{ByRecent: true})
	if out[0].Factory.Name != "Cerâmica Sul" {
		t.Fatalf("factory order: %q first", out[0].Factory.Name)
	}
	if out[0].Imports[0].ID != "a2" {
		t.Fatalf("import order: %q first, want newest", out[0].Imports[0].ID)
	}
}

func TestSortByDataPedidoOrdersEarliestFirst(t *testing.T) {
	out := ApplyFilters(viewFixture(), Filters{}, SortFlags{ByDataPedido: true})
	if out[0].Factory.Name != "Metalúrgica Norte" {
		t.Fatalf("factory order: %q first, want earliest order date", out[0].Factory.Name)
	}
}

func TestSortByDataPedidoBlankDatesSortToFront(t *testing.T) {
	groups := viewFixture()
	groups = append(groups, FactoryGroup{
		Factory: FactoryInfo{ID: uuid.New(), Name: "Sem Data"},
		Imports: []Import{{ID: "c1", DataPedido: ""}},
	})

	out := ApplyFilters(groups, Filters{}, SortFlags{ByDataPedido: true})
	if out[0].Factory.Name != "Sem Data" {
		t.Fatalf("blank date did not sort first: %q", out[0].Factory.Name)
	}
}

func TestExclusiveSortFlagsAreMutuallyExclusive(t *testing.T) {
	flags := ExclusiveSort(SortFlags{}, true, false)
	if !flags.ByRecent || flags.ByDataPedido {
		t.Fatalf("after enabling recent: %+v", flags)
	}

	flags = ExclusiveSort(flags, false, true)
	if flags.ByRecent || !flags.ByDataPedido {
		t.Fatalf("enabling dataPedido must disable recent: %+v", flags)
	}

	flags = ExclusiveSort(flags, false, true)
	if flags.ByRecent || flags.ByDataPedido {
		t.Fatalf("toggling active sort off must return neutral: %+v", flags)
	}
}

func TestParseOrderDateLayouts(t *testing.T) {
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if got := ParseOrderDate("15/03/2026"); !got.Equal(want) {
		t.Fatalf("day-first layout: %v", got)
	}
	if got := ParseOrderDate("2026-03-15"); !got.Equal(want) {
		t.Fatalf("iso layout: %v", got)
	}

	epoch := time.Unix(0, 0).UTC()
	if got := ParseOrderDate("março de 2026"); !got.Equal(epoch) {
		t.Fatalf("malformed date: %v, want epoch", got)
	}
	if got := ParseOrderDate("  "); !got.Equal(epoch) {
		t.Fatalf("blank date: %v, want epoch", got)
	}
}
