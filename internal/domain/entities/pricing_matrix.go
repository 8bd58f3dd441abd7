package entities

import "github.com/shopspring/decimal"

// MatrixKind selects which externally maintained rate matrix prices a quote.
type MatrixKind string

const (
	MatrixStandard   MatrixKind = "standard"
	MatrixUpteam     MatrixKind = "upteam"
	MatrixCADPackage MatrixKind = "cadpackage"

	// MatrixLandscape holds per-acre rates and is selected by area kind,
	// never by the quote-level matrix choice.
	MatrixLandscape MatrixKind = "landscape"
)

func (k MatrixKind) Valid() bool {
	switch k {
	case MatrixStandard, MatrixUpteam, MatrixCADPackage, MatrixLandscape:
		return true
	}
	return false
}

// AreaTier is a volume bucket used to select rates. Tiers are fixed, ordered
// and non-overlapping; the boundary values themselves are configuration.
type AreaTier string

const (
	TierSmall  AreaTier = "small"
	TierMedium AreaTier = "medium"
	TierLarge  AreaTier = "large"
	TierXLarge AreaTier = "xlarge"
)

// PricingMatrixEntry is one row of the externally maintained rate tables.
// The (kind, building type, tier, discipline, lod) key is unique; a missing
// key is a data-completeness error, never a zero rate.
type PricingMatrixEntry struct {
	MatrixKind   MatrixKind
	BuildingType string
	AreaTier     AreaTier
	Discipline   Discipline
	LOD          LOD
	RatePerUnit  decimal.Decimal
}

// BusinessDefaults is read-only configuration supplied by the settings store.
type BusinessDefaults struct {
	TravelRatePerMile  decimal.Decimal
	TierAThresholdSqFt float64
	// Upper bounds of the small/medium/large tiers, in square feet.
	// Anything above LargeMaxSqFt is xlarge.
	SmallMaxSqFt  float64
	MediumMaxSqFt float64
	LargeMaxSqFt  float64
}

// DefaultBusinessDefaults mirrors the seeded settings row so the engine can
// run against an empty settings table in local development.
func DefaultBusinessDefaults() BusinessDefaults {
	return BusinessDefaults{
		TravelRatePerMile:  decimal.NewFromInt(4),
		TierAThresholdSqFt: 50000,
		SmallMaxSqFt:       5000,
		MediumMaxSqFt:      15000,
		LargeMaxSqFt:       50000,
	}
}
