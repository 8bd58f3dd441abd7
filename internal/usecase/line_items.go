package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"scan2plan/internal/domain/entities"
)

// disciplineLabels are the customer-facing names on proposal rows. The
// Tier-A override is an internal pricing device: its Architecture row reads
// plain "Architecture", never a distinct service.
var disciplineLabels = map[entities.Discipline]string{
	entities.DisciplineArchitecture: "Architecture",
	entities.DisciplineStructural:   "Structural",
	entities.DisciplineMEP:          "MEP",
	entities.DisciplineSite:         "Site / Civil",
}

// BuildLineItems flattens a quote's breakdown into displayable proposal
// rows. Row order is fixed: scanning, modeling disciplines, travel,
// add-ons, risk surcharge.
func BuildLineItems(q entities.Quote) []entities.ProposalLineItem {
	items := make([]entities.ProposalLineItem, 0, len(q.PricingBreakdown.BIMTotals)+len(q.Services)+3)

	sqft := decimal.NewFromFloat(q.TotalSquareFeet())
	items = append(items, quantityRow(
		"3D Laser Scanning",
		"On-site reality capture of all project areas",
		sqft, "sqft",
		q.PricingBreakdown.ScanningTotal,
	))

	for _, d := range entities.ModelingDisciplines {
		amount, ok := q.PricingBreakdown.BIMTotals[d]
		if !ok {
			continue
		}
		items = append(items, quantityRow(
			disciplineLabels[d]+" Modeling",
			fmt.Sprintf("BIM deliverable, %s discipline", strings.ToLower(disciplineLabels[d])),
			sqft, "sqft",
			amount,
		))
	}

	if q.PricingBreakdown.TravelTotal.Sign() > 0 {
		items = append(items, travelRow(q))
	}

	for _, s := range q.Services {
		items = append(items, entities.ProposalLineItem{
			Item:        s.Name,
			Description: s.Description,
			Quantity:    decimal.NewFromInt(1),
			Unit:        "each",
			Rate:        s.Price,
			Amount:      s.Price,
		})
	}

	if q.PricingBreakdown.RiskSurchargeTotal.Sign() > 0 {
		items = append(items, entities.ProposalLineItem{
			Item:        "Site Conditions Surcharge",
			Description: riskDescription(q.Risks),
			Quantity:    decimal.NewFromInt(1),
			Unit:        "each",
			Rate:        q.PricingBreakdown.RiskSurchargeTotal,
			Amount:      q.PricingBreakdown.RiskSurchargeTotal,
		})
	}

	return items
}

func quantityRow(item, description string, qty decimal.Decimal, unit string, amount decimal.Decimal) entities.ProposalLineItem {
	rate := decimal.Zero
	if qty.Sign() > 0 {
		rate = amount.DivRound(qty, 4)
	}
	return entities.ProposalLineItem{
		Item:        item,
		Description: description,
		Quantity:    qty,
		Unit:        unit,
		Rate:        rate,
		Amount:      amount,
	}
}

func travelRow(q entities.Quote) entities.ProposalLineItem {
	amount := q.PricingBreakdown.TravelTotal
	if q.Travel.CustomTravelCost != nil || q.Travel.DistanceMiles <= 0 {
		return entities.ProposalLineItem{
			Item:        "Travel",
			Description: "Field crew dispatch from " + q.Travel.DispatchLocation,
			Quantity:    decimal.NewFromInt(1),
			Unit:        "each",
			Rate:        amount,
			Amount:      amount,
		}
	}
	miles := decimal.NewFromFloat(q.Travel.DistanceMiles)
	return entities.ProposalLineItem{
		Item:        "Travel",
		Description: "Field crew dispatch from " + q.Travel.DispatchLocation,
		Quantity:    miles,
		Unit:        "miles",
		Rate:        amount.DivRound(miles, 4),
		Amount:      amount,
	}
}

func riskDescription(risks []entities.RiskFactor) string {
	labels := map[entities.RiskFactor]string{
		entities.RiskRemote:    "remote site",
		entities.RiskFastTrack: "fast-track schedule",
		entities.RiskOccupied:  "occupied building",
		entities.RiskHazardous: "hazardous conditions",
	}
	parts := make([]string, 0, len(risks))
	for _, r := range risks {
		if l, ok := labels[r]; ok {
			parts = append(parts, l)
		}
	}
	return "Applies for: " + strings.Join(parts, ", ")
}
