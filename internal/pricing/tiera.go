package pricing

import (
	"scan2plan/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// ResolveTierA applies the large-project Architecture override. It replaces
// only the Architecture total with (scanning + modeling) x margin; every
// other discipline keeps its matrix-computed value. The override is inert
// when the project sits below the threshold or when none was supplied.
//
// Returns the (possibly new) modeling map and whether the override applied.
func ResolveTierA(modeling map[entities.Discipline]decimal.Decimal, o *entities.TierAOverride, totalSqFt, thresholdSqFt float64) (map[entities.Discipline]decimal.Decimal, bool) {
	if o == nil || totalSqFt < thresholdSqFt {
		return modeling, false
	}

	out := make(map[entities.Discipline]decimal.Decimal, len(modeling)+1)
	for d, v := range modeling {
		out[d] = v
	}
	out[entities.DisciplineArchitecture] = o.ScanningCost.Add(o.ModelingCost).Mul(o.Margin)
	return out, true
}
