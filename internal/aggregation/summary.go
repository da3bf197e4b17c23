package aggregation

// ProductAmount computes a product's monetary amount from cartons, units per
// carton and unit price. unitCtn defaults to the multiplicative identity 1
// while ctns and unitPrice default to 0: the amount stays zero until cartons
// and price are set, without a surprise multiply-by-zero on cartons-per-unit.
func ProductAmount(p Product) float64 {
	unitCtn := p.UnitCtn
	if unitCtn == 0 {
		unitCtn = 1
	}
	return p.Ctns * unitCtn * p.UnitPrice
}

// EffectiveAmount prefers a precomputed amount when one was persisted
// (greater than zero); the order-creation flow writes finalized amounts with
// its own rounding, which recomputation must not overwrite.
func EffectiveAmount(p Product) float64 {
	if p.Amount > 0 {
		return p.Amount
	}
	return ProductAmount(p)
}

// EffectiveCBM prefers a persisted cbmTotal, falling back to cbm per carton
// times cartons. Same precedence rule as EffectiveAmount.
func EffectiveCBM(p Product) float64 {
	if p.CBMTotal > 0 {
		return p.CBMTotal
	}
	return p.CBM * p.Ctns
}

// SummarizeImport folds one import's products into totals. Raw floats only;
// display rounding (2 decimals for currency, 3 for CBM) belongs to the
// presentation boundary.
func SummarizeImport(imp Import) ImportSummary {
	var s ImportSummary
	for _, p := range imp.Products {
		s.TotalAmount += EffectiveAmount(p)
		s.TotalCBM += EffectiveCBM(p)
		s.ProductCount++
	}
	return s
}

// SummarizeFactory folds all of a factory's imports into totals.
func SummarizeFactory(group FactoryGroup) FactorySummary {
	var s FactorySummary
	for _, imp := range group.Imports {
		is := SummarizeImport(imp)
		s.TotalAmount += is.TotalAmount
		s.TotalCBM += is.TotalCBM
		s.TotalProducts += is.ProductCount
		s.ImportCount++
	}
	return s
}
