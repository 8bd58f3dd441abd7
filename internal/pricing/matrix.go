package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"scan2plan/internal/domain/entities"
)

// MatrixLookup resolves a rate-per-unit from the externally maintained rate
// tables. Implementations must return *MatrixEntryNotFoundError for a
// missing key, never a zero rate.
//
// Scanning rows are keyed with entities.DisciplineScanning and
// entities.LODNone: field capture does not vary by detail level.
type MatrixLookup interface {
	Rate(ctx context.Context, kind entities.MatrixKind, buildingType string, tier entities.AreaTier, discipline entities.Discipline, lod entities.LOD) (decimal.Decimal, error)
}

// StaticMatrix is an in-memory MatrixLookup seeded from entries. It backs
// unit tests and local development without a DynamoDB instance.
type StaticMatrix struct {
	rates map[string]decimal.Decimal
}

func NewStaticMatrix(entries ...entities.PricingMatrixEntry) *StaticMatrix {
	m := &StaticMatrix{rates: make(map[string]decimal.Decimal, len(entries))}
	for _, e := range entries {
		m.rates[MatrixKey(e.MatrixKind, e.BuildingType, e.AreaTier, e.Discipline, e.LOD)] = e.RatePerUnit
	}
	return m
}

func (m *StaticMatrix) Add(e entities.PricingMatrixEntry) {
	m.rates[MatrixKey(e.MatrixKind, e.BuildingType, e.AreaTier, e.Discipline, e.LOD)] = e.RatePerUnit
}

func (m *StaticMatrix) Rate(_ context.Context, kind entities.MatrixKind, buildingType string, tier entities.AreaTier, discipline entities.Discipline, lod entities.LOD) (decimal.Decimal, error) {
	rate, ok := m.rates[MatrixKey(kind, buildingType, tier, discipline, lod)]
	if !ok {
		return decimal.Zero, &MatrixEntryNotFoundError{
			MatrixKind:   kind,
			BuildingType: buildingType,
			AreaTier:     tier,
			Discipline:   discipline,
			LOD:          lod,
		}
	}
	return rate, nil
}

// MatrixKey builds the canonical composite key shared with the DynamoDB
// matrix table.
func MatrixKey(kind entities.MatrixKind, buildingType string, tier entities.AreaTier, discipline entities.Discipline, lod entities.LOD) string {
	return string(kind) + "#" + buildingType + "#" + string(tier) + "#" + string(discipline) + "#" + string(lod)
}
