package pricing

import (
	"github.com/shopspring/decimal"

	"scan2plan/internal/domain/entities"
)

// TravelCost prices field dispatch. A custom travel cost is terminal and
// bypasses the distance computation entirely. No distance and no override is
// a legitimate business state (local work), priced at zero.
func TravelCost(t entities.TravelConfig, ratePerMile decimal.Decimal) decimal.Decimal {
	if t.CustomTravelCost != nil {
		return *t.CustomTravelCost
	}
	if t.DistanceMiles <= 0 {
		return decimal.Zero
	}
	return ratePerMile.Mul(decimal.NewFromFloat(t.DistanceMiles))
}
