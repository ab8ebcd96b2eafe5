// Package calc computes black steel and zinc coating weights for guard-rail
// components and prices them.
//
// The functions here never validate their numeric input. Zero, negative and
// non-finite values flow straight through the arithmetic; callers are expected
// to reject bad input before calling in.
package calc

// WeightInput carries the per-call dimensions. LengthMm is ignored for parts
// with a fixed length.
type WeightInput struct {
	ThicknessMm float64 `json:"thicknessMm"`
	LengthMm    float64 `json:"lengthMm"`
	CoatingGsm  float64 `json:"coatingGsm"`
}

// WeightResult is the computed weight of a single part.
type WeightResult struct {
	PartType              PartType `json:"partType"`
	BlackMaterialWeightKg float64  `json:"blackMaterialWeightKg"`
	ZincWeightKg          float64  `json:"zincWeightKg"`
	TotalWeightKg         float64  `json:"totalWeightKg"`
}

// Compute treats the part as a rectangular prism of thickness x nominal width
// x length. Black weight is volume times density; zinc weight is the prism's
// surface area times the coating weight.
func Compute(pc PartConstants, in WeightInput) WeightResult {
	length := in.LengthMm
	if pc.FixedLengthMm != 0 {
		length = pc.FixedLengthMm
	}
	t, w := in.ThicknessMm, pc.NominalWidthMm

	volumeMm3 := t * w * length
	black := volumeMm3 * pc.DensityKgPerMm3

	surfaceAreaMm2 := 2 * (t*w + w*length + length*t)
	surfaceAreaM2 := surfaceAreaMm2 / 1000000
	zinc := (surfaceAreaM2 * in.CoatingGsm) / 1000

	return WeightResult{
		PartType:              pc.Type,
		BlackMaterialWeightKg: black,
		ZincWeightKg:          zinc,
		TotalWeightKg:         black + zinc,
	}
}

// Calculate looks up the constants for part and runs Compute. The only error
// is ErrUnknownPart.
func Calculate(part PartType, in WeightInput) (WeightResult, error) {
	pc, ok := Lookup(part)
	if !ok {
		return WeightResult{}, ErrUnknownPart
	}
	return Compute(pc, in), nil
}

// LegacyFields returns the result keyed the way the per-part calculators name
// their fields, e.g. totalPostWeightKg for a post.
func (r WeightResult) LegacyFields() map[string]float64 {
	totalField := "totalWeightKg"
	if pc, ok := Lookup(r.PartType); ok {
		totalField = pc.TotalField
	}
	return map[string]float64{
		"blackMaterialWeightKg": r.BlackMaterialWeightKg,
		"zincWeightKg":          r.ZincWeightKg,
		totalField:              r.TotalWeightKg,
	}
}
