package pricing

import (
	"context"
	"errors"
	"testing"

	"scan2plan/internal/domain/entities"
)

func testDefaults() entities.BusinessDefaults {
	return entities.BusinessDefaults{
		TravelRatePerMile:  dec("4"),
		TierAThresholdSqFt: 50000,
		SmallMaxSqFt:       5000,
		MediumMaxSqFt:      15000,
		LargeMaxSqFt:       50000,
	}
}

func archArea(id, buildingType string, sqft float64, lod entities.LOD) entities.Area {
	return entities.Area{
		ID:           id,
		BuildingType: buildingType,
		SquareFeet:   sqft,
		Disciplines:  []entities.Discipline{entities.DisciplineArchitecture},
		DefaultLOD:   lod,
	}
}

func TestEngine_Calculate_SingleArea(t *testing.T) {
	matrix := NewStaticMatrix(
		entry(entities.MatrixStandard, "office", entities.TierMedium, entities.DisciplineScanning, entities.LODNone, "0.20"),
		entry(entities.MatrixStandard, "office", entities.TierMedium, entities.DisciplineArchitecture, entities.LOD300, "0.50"),
	)
	engine := NewEngine(matrix)

	b, err := engine.Calculate(context.Background(), Input{
		Areas:    []entities.Area{archArea("a1", "office", 10000, entities.LOD300)},
		Defaults: testDefaults(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 10000 * (0.20 + 0.50), no travel, no risk
	if b.ScanningTotal.String() != "2000" {
		t.Fatalf("scanning = %s, want 2000", b.ScanningTotal)
	}
	if b.BIMTotals[entities.DisciplineArchitecture].String() != "5000" {
		t.Fatalf("architecture = %s, want 5000", b.BIMTotals[entities.DisciplineArchitecture])
	}
	if b.TravelTotal.String() != "0" || b.RiskSurchargeTotal.String() != "0" || b.AddOnsTotal.String() != "0" {
		t.Fatalf("expected zero travel/risk/add-ons, got %+v", b)
	}
	if b.Total.String() != "7000" {
		t.Fatalf("total = %s, want 7000", b.Total)
	}
}

func TestEngine_Calculate_TwoAreasWithTravel(t *testing.T) {
	matrix := NewStaticMatrix(
		entry(entities.MatrixStandard, "commercial", entities.TierSmall, entities.DisciplineScanning, entities.LODNone, "0.20"),
		entry(entities.MatrixStandard, "commercial", entities.TierSmall, entities.DisciplineArchitecture, entities.LOD300, "0.50"),
		entry(entities.MatrixStandard, "residential", entities.TierSmall, entities.DisciplineScanning, entities.LODNone, "0.10"),
		entry(entities.MatrixStandard, "residential", entities.TierSmall, entities.DisciplineArchitecture, entities.LOD200, "0.40"),
	)
	engine := NewEngine(matrix)

	b, err := engine.Calculate(context.Background(), Input{
		Areas: []entities.Area{
			archArea("a1", "commercial", 5000, entities.LOD300),
			archArea("a2", "residential", 3000, entities.LOD200),
		},
		Travel:   entities.TravelConfig{DistanceMiles: 40},
		Defaults: testDefaults(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.TravelTotal.String() != "160" {
		t.Fatalf("travel = %s, want 160", b.TravelTotal)
	}
	// commercial: 5000*0.20 + 5000*0.50 = 3500; residential: 3000*0.10 + 3000*0.40 = 1500
	if b.Total.String() != "5160" {
		t.Fatalf("total = %s, want 5160", b.Total)
	}
}

func TestEngine_Calculate_TierAIsolation(t *testing.T) {
	matrix := NewStaticMatrix(
		entry(entities.MatrixStandard, "office", entities.TierXLarge, entities.DisciplineScanning, entities.LODNone, "0.15"),
		entry(entities.MatrixStandard, "office", entities.TierXLarge, entities.DisciplineArchitecture, entities.LOD300, "0.45"),
		entry(entities.MatrixStandard, "office", entities.TierXLarge, entities.DisciplineStructural, entities.LOD300, "0.25"),
	)
	engine := NewEngine(matrix)

	area := entities.Area{
		ID:           "a1",
		BuildingType: "office",
		SquareFeet:   60000,
		Disciplines:  []entities.Discipline{entities.DisciplineArchitecture, entities.DisciplineStructural},
		DefaultLOD:   entities.LOD300,
	}
	override := &entities.TierAOverride{
		ScanningCost: dec("8000"),
		ModelingCost: dec("12000"),
		Margin:       dec("3"),
	}

	in := Input{Areas: []entities.Area{area}, Defaults: testDefaults()}
	plain, err := engine.Calculate(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in.TierAOverride = override
	overridden, err := engine.Calculate(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if overridden.BIMTotals[entities.DisciplineArchitecture].String() != "60000" {
		t.Fatalf("architecture = %s, want 60000 regardless of matrix rates",
			overridden.BIMTotals[entities.DisciplineArchitecture])
	}
	if !overridden.BIMTotals[entities.DisciplineStructural].Equal(plain.BIMTotals[entities.DisciplineStructural]) {
		t.Fatalf("structural changed under override: %s != %s",
			overridden.BIMTotals[entities.DisciplineStructural], plain.BIMTotals[entities.DisciplineStructural])
	}
	if !overridden.ScanningTotal.Equal(plain.ScanningTotal) {
		t.Fatalf("scanning changed under override")
	}
}

func TestEngine_Calculate_AddOnsAndRisks(t *testing.T) {
	matrix := NewStaticMatrix(
		entry(entities.MatrixStandard, "office", entities.TierMedium, entities.DisciplineScanning, entities.LODNone, "0.20"),
		entry(entities.MatrixStandard, "office", entities.TierMedium, entities.DisciplineArchitecture, entities.LOD300, "0.50"),
	)
	engine := NewEngine(matrix)

	b, err := engine.Calculate(context.Background(), Input{
		Areas: []entities.Area{archArea("a1", "office", 10000, entities.LOD300)},
		Risks: []entities.RiskFactor{entities.RiskFastTrack},
		Services: []entities.AddOnService{
			{Name: "Scan-to-CAD", Price: dec("1200")},
			{Name: "As-built verification", Price: dec("800")},
		},
		Defaults: testDefaults(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.AddOnsTotal.String() != "2000" {
		t.Fatalf("add-ons = %s, want 2000", b.AddOnsTotal)
	}
	// 15% of the 7000 work subtotal; add-ons carry no surcharge
	if b.RiskSurchargeTotal.String() != "1050" {
		t.Fatalf("surcharge = %s, want 1050", b.RiskSurchargeTotal)
	}
	if b.Total.String() != "10050" {
		t.Fatalf("total = %s, want 10050", b.Total)
	}
}

func TestEngine_Calculate_Idempotent(t *testing.T) {
	matrix := NewStaticMatrix(
		entry(entities.MatrixStandard, "office", entities.TierMedium, entities.DisciplineScanning, entities.LODNone, "0.21"),
		entry(entities.MatrixStandard, "office", entities.TierMedium, entities.DisciplineArchitecture, entities.LOD300, "0.53"),
		entry(entities.MatrixStandard, "office", entities.TierMedium, entities.DisciplineMEP, entities.LOD350, "0.37"),
	)
	engine := NewEngine(matrix)

	in := Input{
		Areas: []entities.Area{{
			ID:           "a1",
			BuildingType: "office",
			SquareFeet:   12345,
			Disciplines:  []entities.Discipline{entities.DisciplineArchitecture, entities.DisciplineMEP},
			LODPerDiscipline: map[entities.Discipline]entities.LOD{
				entities.DisciplineMEP: entities.LOD350,
			},
			DefaultLOD: entities.LOD300,
		}},
		Travel:   entities.TravelConfig{DistanceMiles: 17.5},
		Risks:    []entities.RiskFactor{entities.RiskOccupied, entities.RiskRemote},
		Defaults: testDefaults(),
	}

	first, err := engine.Calculate(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.Calculate(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Total.String() != second.Total.String() ||
		first.ScanningTotal.String() != second.ScanningTotal.String() ||
		first.TravelTotal.String() != second.TravelTotal.String() ||
		first.RiskSurchargeTotal.String() != second.RiskSurchargeTotal.String() {
		t.Fatalf("breakdown differs between identical runs:\n%+v\n%+v", first, second)
	}
	for d, v := range first.BIMTotals {
		if second.BIMTotals[d].String() != v.String() {
			t.Fatalf("discipline %s differs between identical runs", d)
		}
	}
}

func TestEngine_Calculate_FailFast(t *testing.T) {
	matrix := NewStaticMatrix(
		entry(entities.MatrixStandard, "office", entities.TierMedium, entities.DisciplineScanning, entities.LODNone, "0.20"),
		entry(entities.MatrixStandard, "office", entities.TierMedium, entities.DisciplineArchitecture, entities.LOD300, "0.50"),
	)
	engine := NewEngine(matrix)

	t.Run("invalid area rejected before computation", func(t *testing.T) {
		_, err := engine.Calculate(context.Background(), Input{
			Areas: []entities.Area{
				archArea("a1", "office", 10000, entities.LOD300),
				{ID: "bad", SquareFeet: -1},
			},
			Defaults: testDefaults(),
		})
		if !errors.Is(err, ErrInvalidArea) {
			t.Fatalf("expected ErrInvalidArea, got %v", err)
		}
	})

	t.Run("unknown risk rejected before computation", func(t *testing.T) {
		_, err := engine.Calculate(context.Background(), Input{
			Areas:    []entities.Area{archArea("a1", "office", 10000, entities.LOD300)},
			Risks:    []entities.RiskFactor{"tsunami"},
			Defaults: testDefaults(),
		})
		if !errors.Is(err, ErrUnknownRiskFactor) {
			t.Fatalf("expected ErrUnknownRiskFactor, got %v", err)
		}
	})

	t.Run("unknown matrix kind rejected", func(t *testing.T) {
		_, err := engine.Calculate(context.Background(), Input{
			MatrixKind: "bespoke",
			Areas:      []entities.Area{archArea("a1", "office", 10000, entities.LOD300)},
			Defaults:   testDefaults(),
		})
		if !errors.Is(err, ErrInvalidMatrixKind) {
			t.Fatalf("expected ErrInvalidMatrixKind, got %v", err)
		}
	})
}
