package aggregation

// OrderStatus is the workflow state of a quote. The legacy data kept three
// separately-settable fields (exported, selectedForOrder, orderStatus) that
// had to move in lockstep; here a single enum is the source of truth and the
// booleans are derived, so the fields can no longer disagree.
type OrderStatus string

const (
	// StatusPending means the quote is selected for an order but not yet
	// finalized into an export.
	StatusPending OrderStatus = "pending"
	// StatusExported means the quote has been finalized into an outgoing
	// order.
	StatusExported OrderStatus = "exported"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	return s == StatusPending || s == StatusExported
}

// Exported reports whether the quote has been finalized.
func (s OrderStatus) Exported() bool {
	return s == StatusExported
}

// SelectedForOrder reports whether the quote still sits in the active
// selection. Pending quotes are selected; exported quotes are not.
func (s OrderStatus) SelectedForOrder() bool {
	return s == StatusPending
}

// Toggled returns the opposite status.
func (s OrderStatus) Toggled() OrderStatus {
	if s == StatusExported {
		return StatusPending
	}
	return StatusExported
}

// FactoryExported reports the factory's aggregate export state: true only
// when the factory has at least one quote and every quote across every
// import is exported. A factory with zero quotes is never shown as exported.
func FactoryExported(group FactoryGroup) bool {
	total := 0
	for _, imp := range group.Imports {
		for _, p := range imp.Products {
			total++
			if !p.OrderStatus.Exported() {
				return false
			}
		}
	}
	return total > 0
}
