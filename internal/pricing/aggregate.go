package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"scan2plan/internal/domain/entities"
)

// Input is everything a quote calculation depends on. Given identical input
// and identical matrix state, Calculate always produces an identical
// breakdown; re-calculation on edit is safe.
type Input struct {
	MatrixKind    entities.MatrixKind
	Areas         []entities.Area
	Travel        entities.TravelConfig
	Risks         []entities.RiskFactor
	Services      []entities.AddOnService
	TierAOverride *entities.TierAOverride
	Defaults      entities.BusinessDefaults
}

// Engine aggregates area, travel, add-on and risk pricing into a breakdown.
type Engine struct {
	matrix MatrixLookup
	risks  RiskTable
}

func NewEngine(matrix MatrixLookup) *Engine {
	return &Engine{matrix: matrix, risks: DefaultRiskTable()}
}

// NewEngineWithRisks lets deployments override the seeded risk rules.
func NewEngineWithRisks(matrix MatrixLookup, risks RiskTable) *Engine {
	return &Engine{matrix: matrix, risks: risks}
}

// Calculate validates all inputs up front (no partial breakdown on failure),
// then prices each area, applies the Tier-A override, travel, add-ons and
// risk surcharges. Intermediate sums keep full precision; callers round once
// when producing the quote's TotalPrice.
//
// The risk surcharge applies to the work subtotal (scanning + modeling),
// after the Tier-A override; travel and add-ons are pass-through costs and
// carry no surcharge.
func (e *Engine) Calculate(ctx context.Context, in Input) (entities.PricingBreakdown, error) {
	kind := in.MatrixKind
	if kind == "" {
		kind = entities.MatrixStandard
	}
	if !kind.Valid() {
		return entities.PricingBreakdown{}, ErrInvalidMatrixKind
	}

	if err := e.risks.Validate(in.Risks); err != nil {
		return entities.PricingBreakdown{}, err
	}
	for _, a := range in.Areas {
		if err := ValidateArea(a); err != nil {
			return entities.PricingBreakdown{}, err
		}
	}

	calc := AreaCalculator{
		Matrix:         e.matrix,
		Tiers:          BoundariesFrom(in.Defaults),
		LandscapeTiers: DefaultLandscapeBoundaries(),
	}

	scanning := decimal.Zero
	modeling := make(map[entities.Discipline]decimal.Decimal)
	for _, a := range in.Areas {
		cost, err := calc.Calculate(ctx, kind, a)
		if err != nil {
			return entities.PricingBreakdown{}, err
		}
		scanning = scanning.Add(cost.Scanning)
		for d, v := range cost.Modeling {
			modeling[d] = modeling[d].Add(v)
		}
	}

	modeling, _ = ResolveTierA(modeling, in.TierAOverride, entities.TotalSquareFeet(in.Areas), in.Defaults.TierAThresholdSqFt)

	travel := TravelCost(in.Travel, in.Defaults.TravelRatePerMile)

	addOns := decimal.Zero
	for _, s := range in.Services {
		addOns = addOns.Add(s.Price)
	}

	bim := decimal.Zero
	for _, v := range modeling {
		bim = bim.Add(v)
	}

	surcharge, err := e.risks.Surcharge(in.Risks, scanning.Add(bim))
	if err != nil {
		return entities.PricingBreakdown{}, err
	}

	b := entities.PricingBreakdown{
		ScanningTotal:      scanning,
		BIMTotals:          modeling,
		TravelTotal:        travel,
		AddOnsTotal:        addOns,
		RiskSurchargeTotal: surcharge,
	}
	b.Total = scanning.Add(bim).Add(travel).Add(addOns).Add(surcharge)
	return b, nil
}
