package handlers

import (
	"fmt"
	"math"

	"guardrail-quote/calc"
	"guardrail-quote/database"
	"guardrail-quote/metrics"
	"guardrail-quote/types"
)

// inputError is a request field the calculator must not see.
type inputError struct {
	Field string
	Msg   string
}

func (e *inputError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Msg)
}

func positive(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v > 0
}

// checkWeightInput turns request fields into calculator input. Thickness
// must be positive, length must be positive for parts without a fixed
// length, and the coating must be a configured grade.
func checkWeightInput(pc calc.PartConstants, thickness, length, coating *float64) (calc.WeightInput, error) {
	var in calc.WeightInput
	if !positive(thickness) {
		return in, &inputError{Field: "thicknessMm", Msg: "must be a positive number"}
	}
	in.ThicknessMm = *thickness

	if pc.NeedsLength() {
		if !positive(length) {
			return in, &inputError{Field: "lengthMm", Msg: "must be a positive number for " + pc.Name}
		}
		in.LengthMm = *length
	}

	if coating == nil {
		return in, &inputError{Field: "coatingGsm", Msg: "is required"}
	}
	ok, err := database.IsCoatingGrade(*coating)
	if err != nil {
		return in, err
	}
	if !ok {
		return in, &inputError{Field: "coatingGsm", Msg: fmt.Sprintf("%g is not an offered coating grade", *coating)}
	}
	in.CoatingGsm = *coating
	return in, nil
}

// checkCalcRequest resolves the part type and validates the dimensions.
func checkCalcRequest(req types.CalcRequest) (calc.PartConstants, calc.WeightInput, error) {
	pt, err := calc.ParsePartType(req.PartType)
	if err != nil {
		metrics.RecordValidationFailure("unknown", "partType")
		return calc.PartConstants{}, calc.WeightInput{}, &inputError{Field: "partType", Msg: "must be one of wbeam, thriebeam, post, spacer"}
	}
	pc, _ := calc.Lookup(pt)
	in, err := checkWeightInput(pc, req.ThicknessMm, req.LengthMm, req.CoatingGsm)
	if ie, ok := err.(*inputError); ok {
		metrics.RecordValidationFailure(string(pt), ie.Field)
	}
	return pc, in, err
}
