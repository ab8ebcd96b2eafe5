package calc

import (
	"errors"
	"fmt"
	"strings"
)

// SteelDensityKgPerMm3 is the density of steel in kg per cubic millimetre.
const SteelDensityKgPerMm3 = 0.0000079

// BeamLengthMm is the fixed length of both beam profiles.
const BeamLengthMm = 4318.0

var ErrUnknownPart = errors.New("unknown part type")

// PartType identifies one of the guard-rail components we quote.
type PartType string

const (
	WBeam     PartType = "wbeam"
	ThrieBeam PartType = "thriebeam"
	Post      PartType = "post"
	Spacer    PartType = "spacer"
)

// PartConstants holds the fixed geometry of a part type. Width and height are
// recorded for reference only; the weight formula uses the nominal width.
type PartConstants struct {
	Type            PartType `json:"partType"`
	Name            string   `json:"name"`
	WidthMm         float64  `json:"widthMm"`
	HeightMm        float64  `json:"heightMm"`
	NominalWidthMm  float64  `json:"nominalWidthMm"`
	FixedLengthMm   float64  `json:"fixedLengthMm,omitempty"` // 0 when the caller supplies the length
	DensityKgPerMm3 float64  `json:"densityKgPerMm3"`
	TotalField      string   `json:"totalField"`
}

// NeedsLength reports whether the caller must supply the part length.
func (pc PartConstants) NeedsLength() bool {
	return pc.FixedLengthMm == 0
}

// partOrder is the display order used by Parts.
var partOrder = []PartType{WBeam, ThrieBeam, Post, Spacer}

var parts = map[PartType]PartConstants{
	WBeam: {
		Type:            WBeam,
		Name:            "W-Beam",
		WidthMm:         80,
		HeightMm:        310,
		NominalWidthMm:  480,
		FixedLengthMm:   BeamLengthMm,
		DensityKgPerMm3: SteelDensityKgPerMm3,
		TotalField:      "totalWBeamWeightKg",
	},
	ThrieBeam: {
		Type:            ThrieBeam,
		Name:            "Thrie Beam",
		WidthMm:         80,
		HeightMm:        502,
		NominalWidthMm:  750,
		FixedLengthMm:   BeamLengthMm,
		DensityKgPerMm3: SteelDensityKgPerMm3,
		TotalField:      "totalThrieBeamWeightKg",
	},
	Post: {
		Type:            Post,
		Name:            "Post",
		WidthMm:         150,
		HeightMm:        75,
		NominalWidthMm:  278,
		DensityKgPerMm3: SteelDensityKgPerMm3,
		TotalField:      "totalPostWeightKg",
	},
	Spacer: {
		Type:            Spacer,
		Name:            "Spacer",
		WidthMm:         150,
		HeightMm:        75,
		NominalWidthMm:  278,
		DensityKgPerMm3: SteelDensityKgPerMm3,
		TotalField:      "totalSpacerWeightKg",
	},
}

// Lookup returns a copy of the constants registered for pt.
func Lookup(pt PartType) (PartConstants, bool) {
	pc, ok := parts[pt]
	return pc, ok
}

// Parts lists every registered part in display order.
func Parts() []PartConstants {
	out := make([]PartConstants, 0, len(partOrder))
	for _, pt := range partOrder {
		out = append(out, parts[pt])
	}
	return out
}

// ParsePartType accepts the canonical ids as well as the display spellings
// used by older clients ("W-Beam", "thrie_beam", ...).
func ParsePartType(s string) (PartType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	pt := PartType(key)
	if _, ok := parts[pt]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPart, s)
	}
	return pt, nil
}
