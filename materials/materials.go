// Package materials estimates consumable usage and cost for
// copper-foil glasswork from piece dimensions and counts, and converts
// an estimate into a billable document line item.
package materials

import (
	"fmt"
	"math"

	"github.com/craftbooks/books/document"
)

// Industry-standard usage rates. Linear run is estimated from the
// piece count alone; solder and foil are both consumed along that run,
// with foil wrapping both edges.
const (
	LinearInchesPerPiece = 3.5
	SolderCostPerInch    = 0.12
	FoilCostPerInch      = 0.013
	FoilSidesPerInch     = 2
)

// ConsumablesAccount is the account code estimates are billed against.
const ConsumablesAccount = "200"

// Estimate is the computed material usage for a project.
type Estimate struct {
	Pieces       int     `json:"pieces"`
	Area         float64 `json:"area"`
	LinearInches float64 `json:"linear_inches"`
	SolderCost   float64 `json:"solder_cost"`
	FoilCost     float64 `json:"foil_cost"`
	Total        float64 `json:"total"`
}

// Calculate produces a material estimate for a project of the given
// average piece dimensions (inches) and piece count. Negative or
// malformed inputs are treated as zero.
func Calculate(length, width float64, pieces int) Estimate {
	length = sanitize(length)
	width = sanitize(width)
	if pieces < 0 {
		pieces = 0
	}

	linearInches := float64(pieces) * LinearInchesPerPiece
	solder := linearInches * SolderCostPerInch
	foil := linearInches * FoilSidesPerInch * FoilCostPerInch

	return Estimate{
		Pieces:       pieces,
		Area:         length * width * float64(pieces),
		LinearInches: linearInches,
		SolderCost:   solder,
		FoilCost:     foil,
		Total:        solder + foil,
	}
}

// LineItem converts the estimate into a single consumables line billed
// at the total cost.
func (e Estimate) LineItem() document.LineItem {
	return document.LineItem{
		Account: ConsumablesAccount,
		Desc:    fmt.Sprintf("Consumables (Solder & Foil) - Calculated for %d pieces", e.Pieces),
		Qty:     1,
		Price:   e.Total,
	}
}

// Billable reports whether the estimate carries a positive cost worth
// pushing onto a document.
func (e Estimate) Billable() bool {
	return e.Total > 0
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
