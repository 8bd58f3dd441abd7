package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discipline is an engineering trade scope priced independently per area.
type Discipline string

const (
	DisciplineArchitecture Discipline = "architecture"
	DisciplineStructural   Discipline = "structural"
	DisciplineMEP          Discipline = "mep"
	DisciplineSite         Discipline = "site"

	// DisciplineScanning is a pricing-matrix axis only: field capture is
	// priced once per area, independent of the modeled disciplines.
	DisciplineScanning Discipline = "scanning"
)

// Disciplines that a quote request may ask to model. Scanning is excluded:
// it is never requested directly.
var ModelingDisciplines = []Discipline{
	DisciplineArchitecture,
	DisciplineStructural,
	DisciplineMEP,
	DisciplineSite,
}

func (d Discipline) Valid() bool {
	for _, m := range ModelingDisciplines {
		if d == m {
			return true
		}
	}
	return false
}

// LOD is the Level of Detail code used as a pricing-matrix axis.
type LOD string

const (
	LOD200 LOD = "200"
	LOD300 LOD = "300"
	LOD350 LOD = "350"
	LOD400 LOD = "400"

	// LODNone keys matrix rows that do not vary by detail level (scanning).
	LODNone LOD = "none"
)

func (l LOD) Valid() bool {
	switch l {
	case LOD200, LOD300, LOD350, LOD400:
		return true
	}
	return false
}

// AreaKind selects the unit model for an area. Standard areas are priced per
// square foot; landscape areas are priced per acre against a dedicated matrix.
type AreaKind string

const (
	AreaKindStandard  AreaKind = "standard"
	AreaKindLandscape AreaKind = "landscape"
)

// RiskFactor is a member of the closed set of declared project risks.
type RiskFactor string

const (
	RiskRemote    RiskFactor = "remote"
	RiskFastTrack RiskFactor = "fast_track"
	RiskOccupied  RiskFactor = "occupied"
	RiskHazardous RiskFactor = "hazardous"
)

// Area is one physical scope unit within a project.
type Area struct {
	ID           string
	Name         string
	BuildingType string
	Kind         AreaKind
	SquareFeet   float64
	Acres        float64
	Scope        string
	Disciplines  []Discipline
	// LODPerDiscipline overrides DefaultLOD for individual disciplines.
	LODPerDiscipline map[Discipline]LOD
	DefaultLOD       LOD
}

// TravelConfig carries dispatch inputs for one quote. A non-nil
// CustomTravelCost overrides the distance computation entirely.
type TravelConfig struct {
	DispatchLocation string
	DistanceMiles    float64
	CustomTravelCost *decimal.Decimal
}

// TierAOverride replaces the computed Architecture cost on large projects
// with a manually negotiated scanning+modeling cost times margin.
type TierAOverride struct {
	ScanningCost decimal.Decimal
	ModelingCost decimal.Decimal
	Margin       decimal.Decimal
}

// AddOnService is a flat-priced extra (e.g. scan-to-CAD deliverable,
// as-built verification) carried into the quote total.
type AddOnService struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

// PricingBreakdown is the computed, persisted pricing artifact. Intermediate
// fields keep full precision; rounding happens once, at Quote.TotalPrice.
type PricingBreakdown struct {
	ScanningTotal      decimal.Decimal
	BIMTotals          map[Discipline]decimal.Decimal
	TravelTotal        decimal.Decimal
	AddOnsTotal        decimal.Decimal
	RiskSurchargeTotal decimal.Decimal
	Total              decimal.Decimal
}

// BIMTotal sums the per-discipline modeling totals.
func (b PricingBreakdown) BIMTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, v := range b.BIMTotals {
		sum = sum.Add(v)
	}
	return sum
}

// Quote is the aggregate root for one priced revision of a lead's project.
//
// Versioning model (flat tree, not a chain):
//   - the root quote has ParentQuoteID == "" and VersionNumber == 1
//   - every descendant's ParentQuoteID points at the root
//   - exactly one quote per lead carries IsLatest == true
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (lead_id-index): lead_id
type Quote struct {
	ID            string
	LeadID        string
	QuoteNumber   string
	VersionNumber int
	ParentQuoteID string
	IsLatest      bool

	MatrixKind    MatrixKind
	Areas         []Area
	Travel        TravelConfig
	Risks         []RiskFactor
	Services      []AddOnService
	TierAOverride *TierAOverride

	PricingBreakdown PricingBreakdown
	TotalPrice       decimal.Decimal
	PaymentTerms     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RootID resolves the root of this quote's version tree.
func (q Quote) RootID() string {
	if q.ParentQuoteID != "" {
		return q.ParentQuoteID
	}
	return q.ID
}

// TotalSquareFeet is the project-level footage used for Tier-A eligibility.
// Landscape areas do not count toward it.
func (q Quote) TotalSquareFeet() float64 {
	return TotalSquareFeet(q.Areas)
}

func TotalSquareFeet(areas []Area) float64 {
	total := 0.0
	for _, a := range areas {
		if a.Kind != AreaKindLandscape {
			total += a.SquareFeet
		}
	}
	return total
}

// ProposalLineItem is one displayable row derived from a quote's breakdown.
type ProposalLineItem struct {
	Item        string
	Description string
	Quantity    decimal.Decimal
	Unit        string
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}
