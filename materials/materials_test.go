package materials

import (
	"math"
	"testing"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name           string
		length, width  float64
		pieces         int
		wantArea       float64
		wantLinear     float64
		wantSolderCost float64
		wantFoilCost   float64
	}{
		{
			name:   "ten pieces",
			length: 4, width: 3, pieces: 10,
			wantArea:       120,
			wantLinear:     35,
			wantSolderCost: 4.2,
			wantFoilCost:   0.91,
		},
		{
			name:   "zero pieces",
			length: 4, width: 3, pieces: 0,
		},
		{
			name:   "negative pieces clamped",
			length: 4, width: 3, pieces: -5,
		},
		{
			name:   "nan dimensions zeroed",
			length: math.NaN(), width: 3, pieces: 2,
			wantArea:       0,
			wantLinear:     7,
			wantSolderCost: 0.84,
			wantFoilCost:   7 * 2 * 0.013,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.length, tt.width, tt.pieces)
			if got.Area != tt.wantArea {
				t.Errorf("Area = %v, want %v", got.Area, tt.wantArea)
			}
			if got.LinearInches != tt.wantLinear {
				t.Errorf("LinearInches = %v, want %v", got.LinearInches, tt.wantLinear)
			}
			if math.Abs(got.SolderCost-tt.wantSolderCost) > 1e-9 {
				t.Errorf("SolderCost = %v, want %v", got.SolderCost, tt.wantSolderCost)
			}
			if math.Abs(got.FoilCost-tt.wantFoilCost) > 1e-9 {
				t.Errorf("FoilCost = %v, want %v", got.FoilCost, tt.wantFoilCost)
			}
			if want := got.SolderCost + got.FoilCost; got.Total != want {
				t.Errorf("Total = %v, want solder+foil = %v", got.Total, want)
			}
		})
	}
}

func TestEstimateLineItem(t *testing.T) {
	est := Calculate(4, 3, 10)
	li := est.LineItem()

	if li.Account != ConsumablesAccount {
		t.Errorf("Account = %q, want %q", li.Account, ConsumablesAccount)
	}
	if li.Qty != 1 {
		t.Errorf("Qty = %v, want 1", li.Qty)
	}
	if li.Price != est.Total {
		t.Errorf("Price = %v, want %v", li.Price, est.Total)
	}
	want := "Consumables (Solder & Foil) - Calculated for 10 pieces"
	if li.Desc != want {
		t.Errorf("Desc = %q, want %q", li.Desc, want)
	}
}

func TestEstimateBillable(t *testing.T) {
	if Calculate(4, 3, 0).Billable() {
		t.Error("zero-piece estimate should not be billable")
	}
	if !Calculate(4, 3, 1).Billable() {
		t.Error("positive estimate should be billable")
	}
}
