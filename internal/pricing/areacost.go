package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"scan2plan/internal/domain/entities"
)

// AreaCost is the computed cost of one area: scanning once, modeling per
// discipline.
type AreaCost struct {
	AreaID   string
	Tier     entities.AreaTier
	Scanning decimal.Decimal
	Modeling map[entities.Discipline]decimal.Decimal
}

// AreaCalculator prices a single area against the rate matrices.
type AreaCalculator struct {
	Matrix         MatrixLookup
	Tiers          TierBoundaries
	LandscapeTiers TierBoundaries
}

// ValidateArea rejects malformed areas before any matrix lookup runs.
// Discipline and LOD codes are validated for every area kind; only the unit
// requirements (square feet vs acres) differ between standard and landscape.
func ValidateArea(a entities.Area) error {
	for _, d := range a.Disciplines {
		if !d.Valid() {
			return &InvalidAreaError{AreaID: a.ID, Reason: "unrecognized discipline " + string(d)}
		}
	}
	if a.DefaultLOD != "" && !a.DefaultLOD.Valid() {
		return &InvalidAreaError{AreaID: a.ID, Reason: "unrecognized lod " + string(a.DefaultLOD)}
	}
	for d, lod := range a.LODPerDiscipline {
		if !lod.Valid() {
			return &InvalidAreaError{AreaID: a.ID, Reason: "unrecognized lod " + string(lod) + " for discipline " + string(d)}
		}
	}

	switch a.Kind {
	case entities.AreaKindStandard, "":
		if a.SquareFeet <= 0 {
			return &InvalidAreaError{AreaID: a.ID, Reason: "square footage must be > 0"}
		}
		if len(a.Disciplines) == 0 {
			return &InvalidAreaError{AreaID: a.ID, Reason: "at least one discipline is required"}
		}
	case entities.AreaKindLandscape:
		if a.Acres <= 0 {
			return &InvalidAreaError{AreaID: a.ID, Reason: "landscape area requires acres > 0"}
		}
	default:
		return &InvalidAreaError{AreaID: a.ID, Reason: "unrecognized area kind " + string(a.Kind)}
	}
	return nil
}

// Calculate prices one validated area. The tier is classified once per area;
// scanning is looked up once (discipline-independent); each requested
// discipline is priced at its own LOD, falling back to the area default.
//
// Landscape areas branch to acreage units and the landscape matrix before
// any rate is chosen.
func (c AreaCalculator) Calculate(ctx context.Context, kind entities.MatrixKind, a entities.Area) (AreaCost, error) {
	if err := ValidateArea(a); err != nil {
		return AreaCost{}, err
	}

	units := a.SquareFeet
	if a.Kind == entities.AreaKindLandscape {
		units = a.Acres
		kind = entities.MatrixLandscape
	}
	tier := c.classify(a.Kind, units)
	quantity := decimal.NewFromFloat(units)

	scanRate, err := c.Matrix.Rate(ctx, kind, a.BuildingType, tier, entities.DisciplineScanning, entities.LODNone)
	if err != nil {
		return AreaCost{}, err
	}

	cost := AreaCost{
		AreaID:   a.ID,
		Tier:     tier,
		Scanning: scanRate.Mul(quantity),
		Modeling: make(map[entities.Discipline]decimal.Decimal, len(a.Disciplines)),
	}

	for _, d := range a.Disciplines {
		lod, err := resolveLOD(a, d)
		if err != nil {
			return AreaCost{}, err
		}
		rate, err := c.Matrix.Rate(ctx, kind, a.BuildingType, tier, d, lod)
		if err != nil {
			return AreaCost{}, err
		}
		cost.Modeling[d] = rate.Mul(quantity)
	}
	return cost, nil
}

func (c AreaCalculator) classify(kind entities.AreaKind, units float64) entities.AreaTier {
	if kind == entities.AreaKindLandscape {
		return c.LandscapeTiers.Classify(units)
	}
	return c.Tiers.Classify(units)
}

func resolveLOD(a entities.Area, d entities.Discipline) (entities.LOD, error) {
	if lod, ok := a.LODPerDiscipline[d]; ok {
		return lod, nil
	}
	if a.DefaultLOD != "" {
		return a.DefaultLOD, nil
	}
	return "", &InvalidAreaError{AreaID: a.ID, Reason: "no lod for discipline " + string(d)}
}
