package aggregation

import "testing"

func TestProductAmountDefaults(t *testing.T) {
	tests := []struct {
		name string
		p    Product
		want float64
	}{
		{"all fields set", Product{Ctns: 10, UnitCtn: 12, UnitPrice: 1.5}, 180},
		{"unitCtn omitted defaults to 1", Product{Ctns: 10, UnitPrice: 1.5}, 15},
		{"ctns omitted yields zero", Product{UnitCtn: 12, UnitPrice: 1.5}, 0},
		{"unitPrice omitted yields zero", Product{Ctns: 10, UnitCtn: 12}, 0},
		{"everything omitted", Product{}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ProductAmount(tc.p); got != tc.want {
				t.Fatalf("ProductAmount = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEffectiveAmountPrefersPersistedValue(t *testing.T) {
	p := Product{Amount: 99.5, Ctns: 10, UnitCtn: 12, UnitPrice: 1.5}
	if got := EffectiveAmount(p); got != 99.5 {
		t.Fatalf("EffectiveAmount = %v, want persisted 99.5", got)
	}

	p.Amount = 0
	if got := EffectiveAmount(p); got != 180 {
		t.Fatalf("EffectiveAmount = %v, want recomputed 180", got)
	}
}

func TestEffectiveCBMPrefersPersistedTotal(t *testing.T) {
	p := Product{CBMTotal: 2.5, CBM: 0.1, Ctns: 10}
	if got := EffectiveCBM(p); got != 2.5 {
		t.Fatalf("EffectiveCBM = %v, want persisted 2.5", got)
	}

	p.CBMTotal = 0
	if got := EffectiveCBM(p); got != 1.0 {
		t.Fatalf("EffectiveCBM = %v, want cbm*ctns 1.0", got)
	}
}

func TestSummarizeImport(t *testing.T) {
	imp := Import{Products: []Product{
		{Ctns: 10, UnitCtn: 12, UnitPrice: 2, CBM: 0.05},
		{Amount: 50, CBMTotal: 1.2},
		{}, // empty line contributes nothing but is still counted
	}}

	s := SummarizeImport(imp)
	if s.ProductCount != 3 {
		t.Fatalf("productCount = %d, want 3", s.ProductCount)
	}
	if s.TotalAmount != 290 {
		t.Fatalf("totalAmount = %v, want 290", s.TotalAmount)
	}
	if s.TotalCBM != 0.5+1.2 {
		t.Fatalf("totalCBM = %v, want 1.7", s.TotalCBM)
	}
}

func TestSummarizeFactory(t *testing.T) {
	group := FactoryGroup{Imports: []Import{
		{Products: []Product{{Amount: 100, CBMTotal: 1}}},
		{Products: []Product{{Amount: 200, CBMTotal: 2}, {Amount: 50, CBMTotal: 0.5}}},
	}}

	s := SummarizeFactory(group)
	if s.ImportCount != 2 || s.TotalProducts != 3 {
		t.Fatalf("counts = %d imports, %d products", s.ImportCount, s.TotalProducts)
	}
	if s.TotalAmount != 350 || s.TotalCBM != 3.5 {
		t.Fatalf("totals = %v / %v", s.TotalAmount, s.TotalCBM)
	}
}
