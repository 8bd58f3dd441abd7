package pricing

import "scan2plan/internal/domain/entities"

// TierBoundaries are the upper bounds of the small/medium/large tiers.
// Anything above LargeMax is xlarge. A value sitting exactly on a boundary
// belongs to the lower tier. The numbers themselves are deployment
// configuration (settings store), not engine constants.
type TierBoundaries struct {
	SmallMax  float64
	MediumMax float64
	LargeMax  float64
}

func (b TierBoundaries) Classify(units float64) entities.AreaTier {
	switch {
	case units <= b.SmallMax:
		return entities.TierSmall
	case units <= b.MediumMax:
		return entities.TierMedium
	case units <= b.LargeMax:
		return entities.TierLarge
	default:
		return entities.TierXLarge
	}
}

// BoundariesFrom builds square-footage boundaries from the settings row.
func BoundariesFrom(d entities.BusinessDefaults) TierBoundaries {
	return TierBoundaries{
		SmallMax:  d.SmallMaxSqFt,
		MediumMax: d.MediumMaxSqFt,
		LargeMax:  d.LargeMaxSqFt,
	}
}

// DefaultLandscapeBoundaries buckets landscape acreage. Landscape work is
// rare enough that these have never needed to be configurable.
func DefaultLandscapeBoundaries() TierBoundaries {
	return TierBoundaries{SmallMax: 10, MediumMax: 50, LargeMax: 200}
}
