package calc

import "math"

// Rates are the per-kilogram prices applied to a weight result.
type Rates struct {
	SteelPerKg float64 `json:"steelRatePerKg"`
	ZincPerKg  float64 `json:"zincRatePerKg"`
	TaxPercent float64 `json:"taxPercent"`
}

// PriceBreakdown is the cost of qty identical parts.
type PriceBreakdown struct {
	Quantity      int     `json:"quantity"`
	SteelCost     float64 `json:"steelCost"`
	ZincCost      float64 `json:"zincCost"`
	UnitPrice     float64 `json:"unitPrice"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
	TotalWeightKg float64 `json:"totalWeightKg"`
}

// Price prices a weight result. A quantity of zero or less counts as one.
func Price(r WeightResult, rates Rates, qty int) PriceBreakdown {
	if qty <= 0 {
		qty = 1
	}
	steel := r.BlackMaterialWeightKg * rates.SteelPerKg
	zinc := r.ZincWeightKg * rates.ZincPerKg
	unit := steel + zinc
	subtotal := unit * float64(qty)
	tax := subtotal * rates.TaxPercent / 100

	return PriceBreakdown{
		Quantity:      qty,
		SteelCost:     steel,
		ZincCost:      zinc,
		UnitPrice:     unit,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         subtotal + tax,
		TotalWeightKg: r.TotalWeightKg * float64(qty),
	}
}

// Round2 rounds to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
