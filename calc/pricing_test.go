package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	r := WeightResult{PartType: Post, BlackMaterialWeightKg: 10, ZincWeightKg: 0.5, TotalWeightKg: 10.5}
	p := Price(r, Rates{SteelPerKg: 70, ZincPerKg: 300, TaxPercent: 18}, 4)

	assert.Equal(t, 4, p.Quantity)
	assert.InDelta(t, 700, p.SteelCost, 1e-9)
	assert.InDelta(t, 150, p.ZincCost, 1e-9)
	assert.InDelta(t, 850, p.UnitPrice, 1e-9)
	assert.InDelta(t, 3400, p.Subtotal, 1e-9)
	assert.InDelta(t, 612, p.Tax, 1e-9)
	assert.InDelta(t, 4012, p.Total, 1e-9)
	assert.InDelta(t, 42, p.TotalWeightKg, 1e-9)
}

func TestPrice_DefaultsQuantity(t *testing.T) {
	r := WeightResult{BlackMaterialWeightKg: 2, ZincWeightKg: 1, TotalWeightKg: 3}
	for _, qty := range []int{0, -3} {
		p := Price(r, Rates{SteelPerKg: 1, ZincPerKg: 1}, qty)
		assert.Equal(t, 1, p.Quantity)
		assert.InDelta(t, 3, p.Total, 1e-9)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 81.87, Round2(81.86928))
	assert.Equal(t, 1.89, Round2(1.886967))
	assert.Equal(t, -2.5, Round2(-2.499))
}
