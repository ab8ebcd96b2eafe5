package calc

// Per-part calculators with the field names existing callers bind to.

type WBeamInput struct {
	ThicknessMm float64 `json:"thicknessMm"`
	CoatingGsm  float64 `json:"coatingGsm"`
}

type WBeamWeights struct {
	BlackMaterialWeightKg float64 `json:"blackMaterialWeightKg"`
	ZincWeightKg          float64 `json:"zincWeightKg"`
	TotalWBeamWeightKg    float64 `json:"totalWBeamWeightKg"`
}

func CalculateWBeamWeights(in WBeamInput) WBeamWeights {
	r := Compute(parts[WBeam], WeightInput{ThicknessMm: in.ThicknessMm, CoatingGsm: in.CoatingGsm})
	return WBeamWeights{
		BlackMaterialWeightKg: r.BlackMaterialWeightKg,
		ZincWeightKg:          r.ZincWeightKg,
		TotalWBeamWeightKg:    r.TotalWeightKg,
	}
}

type ThrieBeamInput struct {
	ThicknessMm float64 `json:"thicknessMm"`
	CoatingGsm  float64 `json:"coatingGsm"`
}

type ThrieBeamWeights struct {
	BlackMaterialWeightKg  float64 `json:"blackMaterialWeightKg"`
	ZincWeightKg           float64 `json:"zincWeightKg"`
	TotalThrieBeamWeightKg float64 `json:"totalThrieBeamWeightKg"`
}

func CalculateThrieBeamWeights(in ThrieBeamInput) ThrieBeamWeights {
	r := Compute(parts[ThrieBeam], WeightInput{ThicknessMm: in.ThicknessMm, CoatingGsm: in.CoatingGsm})
	return ThrieBeamWeights{
		BlackMaterialWeightKg:  r.BlackMaterialWeightKg,
		ZincWeightKg:           r.ZincWeightKg,
		TotalThrieBeamWeightKg: r.TotalWeightKg,
	}
}

type PostInput struct {
	ThicknessMm float64 `json:"thicknessMm"`
	LengthMm    float64 `json:"lengthMm"`
	CoatingGsm  float64 `json:"coatingGsm"`
}

type PostWeights struct {
	BlackMaterialWeightKg float64 `json:"blackMaterialWeightKg"`
	ZincWeightKg          float64 `json:"zincWeightKg"`
	TotalPostWeightKg     float64 `json:"totalPostWeightKg"`
}

func CalculatePostWeights(in PostInput) PostWeights {
	r := Compute(parts[Post], WeightInput(in))
	return PostWeights{
		BlackMaterialWeightKg: r.BlackMaterialWeightKg,
		ZincWeightKg:          r.ZincWeightKg,
		TotalPostWeightKg:     r.TotalWeightKg,
	}
}

type SpacerInput struct {
	ThicknessMm float64 `json:"thicknessMm"`
	LengthMm    float64 `json:"lengthMm"`
	CoatingGsm  float64 `json:"coatingGsm"`
}

type SpacerWeights struct {
	BlackMaterialWeightKg float64 `json:"blackMaterialWeightKg"`
	ZincWeightKg          float64 `json:"zincWeightKg"`
	TotalSpacerWeightKg   float64 `json:"totalSpacerWeightKg"`
}

func CalculateSpacerWeights(in SpacerInput) SpacerWeights {
	r := Compute(parts[Spacer], WeightInput(in))
	return SpacerWeights{
		BlackMaterialWeightKg: r.BlackMaterialWeightKg,
		ZincWeightKg:          r.ZincWeightKg,
		TotalSpacerWeightKg:   r.TotalWeightKg,
	}
}
