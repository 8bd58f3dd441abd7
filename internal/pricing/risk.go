package pricing

import (
	"github.com/shopspring/decimal"

	"scan2plan/internal/domain/entities"
)

// RiskRule defines one risk factor's adjustment: a percentage of the work
// subtotal, a flat fee, or both.
type RiskRule struct {
	Percent decimal.Decimal
	Flat    decimal.Decimal
}

// RiskTable maps the closed risk set to adjustments. Effects of multiple
// simultaneous risks compose additively.
type RiskTable map[entities.RiskFactor]RiskRule

// DefaultRiskTable mirrors the seeded business rules: remote sites carry a
// flat mobilization fee, the rest scale with the size of the job.
func DefaultRiskTable() RiskTable {
	return RiskTable{
		entities.RiskRemote:    {Flat: decimal.NewFromInt(1500)},
		entities.RiskFastTrack: {Percent: decimal.NewFromFloat(0.15)},
		entities.RiskOccupied:  {Percent: decimal.NewFromFloat(0.10)},
		entities.RiskHazardous: {Percent: decimal.NewFromFloat(0.20)},
	}
}

// Validate rejects identifiers outside the table's closed set.
func (t RiskTable) Validate(risks []entities.RiskFactor) error {
	for _, r := range risks {
		if _, ok := t[r]; !ok {
			return &UnknownRiskFactorError{Risk: r}
		}
	}
	return nil
}

// Surcharge computes the total risk adjustment over the work subtotal.
// Each distinct risk applies once; duplicates in the input do not stack.
func (t RiskTable) Surcharge(risks []entities.RiskFactor, subtotal decimal.Decimal) (decimal.Decimal, error) {
	if err := t.Validate(risks); err != nil {
		return decimal.Zero, err
	}
	seen := make(map[entities.RiskFactor]bool, len(risks))
	total := decimal.Zero
	for _, r := range risks {
		if seen[r] {
			continue
		}
		seen[r] = true
		rule := t[r]
		total = total.Add(subtotal.Mul(rule.Percent)).Add(rule.Flat)
	}
	return total, nil
}
