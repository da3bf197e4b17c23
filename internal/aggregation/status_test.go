package aggregation

import "testing"

func TestOrderStatusDerivedGetters(t *testing.T) {
	if !StatusPending.SelectedForOrder() || StatusPending.Exported() {
		t.Fatal("pending must be selected and not exported")
	}
	if StatusExported.SelectedForOrder() || !StatusExported.Exported() {
		t.Fatal("exported must be not selected and exported")
	}
}

func TestOrderStatusToggled(t *testing.T) {
	if StatusPending.Toggled() != StatusExported {
		t.Fatal("pending must toggle to exported")
	}
	if StatusExported.Toggled() != StatusPending {
		t.Fatal("exported must toggle to pending")
	}
}

func TestOrderStatusValid(t *testing.T) {
	if !StatusPending.Valid() || !StatusExported.Valid() {
		t.Fatal("known statuses must be valid")
	}
	if OrderStatus("shipped").Valid() {
		t.Fatal("unknown status must be invalid")
	}
}

func TestFactoryExported(t *testing.T) {
	allExported := FactoryGroup{Imports: []Import{
		{Products: []Product{{OrderStatus: StatusExported}, {OrderStatus: StatusExported}}},
	}}
	if !FactoryExported(allExported) {
		t.Fatal("all quotes exported must mark factory exported")
	}

	mixed := FactoryGroup{Imports: []Import{
		{Products: []Product{{OrderStatus: StatusExported}, {OrderStatus: StatusPending}}},
	}}
	if FactoryExported(mixed) {
		t.Fatal("one pending quote must keep factory unexported")
	}

	empty := FactoryGroup{Imports: []Import{{Products: nil}}}
	if FactoryExported(empty) {
		t.Fatal("factory with zero quotes must never show as exported")
	}
}
