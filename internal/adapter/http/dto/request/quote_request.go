package request

import (
	"strings"

	"github.com/shopspring/decimal"

	"scan2plan/internal/domain/entities"
	"scan2plan/internal/usecase"
)

type AreaRequest struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	BuildingType     string            `json:"building_type" binding:"required"`
	Kind             string            `json:"kind"`
	SquareFeet       float64           `json:"square_feet"`
	Acres            float64           `json:"acres"`
	Scope            string            `json:"scope"`
	Disciplines      []string          `json:"disciplines"`
	LODPerDiscipline map[string]string `json:"lod_per_discipline"`
	DefaultLOD       string            `json:"default_lod"`
}

type TravelRequest struct {
	DispatchLocation string   `json:"dispatch_location"`
	DistanceMiles    float64  `json:"distance_miles" binding:"gte=0"`
	CustomTravelCost *float64 `json:"custom_travel_cost" binding:"omitempty,gte=0"`
}

type AddOnServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

type TierAOverrideRequest struct {
	ScanningCost float64 `json:"scanning_cost" binding:"gte=0"`
	ModelingCost float64 `json:"modeling_cost" binding:"gte=0"`
	Margin       float64 `json:"margin" binding:"required,gt=0"`
}

// QuoteRequest is the pricing input payload shared by create, in-place
// recalculation and new-version endpoints. Enum-valued strings are carried
// through as-is; the pricing engine owns their validation so that rejected
// identifiers produce the structured error taxonomy, not a bare 400.
type QuoteRequest struct {
	LeadID        string                `json:"lead_id"`
	MatrixKind    string                `json:"matrix_kind"`
	Areas         []AreaRequest         `json:"areas" binding:"required,min=1,dive"`
	Travel        *TravelRequest        `json:"travel"`
	Risks         []string              `json:"risks"`
	Services      []AddOnServiceRequest `json:"services" binding:"dive"`
	TierAOverride *TierAOverrideRequest `json:"tier_a_override"`
	PaymentTerms  string                `json:"payment_terms"`
}

// QuoteVersionRequest adds the optimistic concurrency check for
// POST /quotes/:id/versions.
type QuoteVersionRequest struct {
	QuoteRequest
	ExpectedVersion int `json:"expected_version" binding:"required,gt=0"`
}

func (r QuoteRequest) ResolveLeadID() string {
	return strings.TrimSpace(r.LeadID)
}

// ToInput converts the payload into the use case's input shape.
func (r QuoteRequest) ToInput() usecase.QuoteInput {
	in := usecase.QuoteInput{
		LeadID:       r.ResolveLeadID(),
		MatrixKind:   entities.MatrixKind(r.MatrixKind),
		Areas:        make([]entities.Area, 0, len(r.Areas)),
		PaymentTerms: strings.TrimSpace(r.PaymentTerms),
	}

	for _, a := range r.Areas {
		in.Areas = append(in.Areas, a.toEntity())
	}

	if r.Travel != nil {
		in.Travel = entities.TravelConfig{
			DispatchLocation: strings.TrimSpace(r.Travel.DispatchLocation),
			DistanceMiles:    r.Travel.DistanceMiles,
		}
		if r.Travel.CustomTravelCost != nil {
			cost := decimal.NewFromFloat(*r.Travel.CustomTravelCost)
			in.Travel.CustomTravelCost = &cost
		}
	}

	for _, risk := range r.Risks {
		in.Risks = append(in.Risks, entities.RiskFactor(strings.TrimSpace(risk)))
	}

	for _, s := range r.Services {
		in.Services = append(in.Services, entities.AddOnService{
			Name:        strings.TrimSpace(s.Name),
			Description: strings.TrimSpace(s.Description),
			Price:       decimal.NewFromFloat(s.Price),
		})
	}

	if r.TierAOverride != nil {
		in.TierAOverride = &entities.TierAOverride{
			ScanningCost: decimal.NewFromFloat(r.TierAOverride.ScanningCost),
			ModelingCost: decimal.NewFromFloat(r.TierAOverride.ModelingCost),
			Margin:       decimal.NewFromFloat(r.TierAOverride.Margin),
		}
	}

	return in
}

func (a AreaRequest) toEntity() entities.Area {
	area := entities.Area{
		ID:           strings.TrimSpace(a.ID),
		Name:         strings.TrimSpace(a.Name),
		BuildingType: strings.TrimSpace(a.BuildingType),
		Kind:         entities.AreaKind(a.Kind),
		SquareFeet:   a.SquareFeet,
		Acres:        a.Acres,
		Scope:        strings.TrimSpace(a.Scope),
		DefaultLOD:   entities.LOD(a.DefaultLOD),
	}
	if area.Kind == "" {
		area.Kind = entities.AreaKindStandard
	}
	for _, d := range a.Disciplines {
		area.Disciplines = append(area.Disciplines, entities.Discipline(strings.TrimSpace(d)))
	}
	if len(a.LODPerDiscipline) > 0 {
		area.LODPerDiscipline = make(map[entities.Discipline]entities.LOD, len(a.LODPerDiscipline))
		for d, lod := range a.LODPerDiscipline {
			area.LODPerDiscipline[entities.Discipline(d)] = entities.LOD(lod)
		}
	}
	return area
}
