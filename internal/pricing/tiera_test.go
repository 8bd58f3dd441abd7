package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"scan2plan/internal/domain/entities"
)

func TestResolveTierA(t *testing.T) {
	base := map[entities.Discipline]decimal.Decimal{
		entities.DisciplineArchitecture: dec("27000"),
		entities.DisciplineStructural:   dec("15000"),
		entities.DisciplineMEP:          dec("18000"),
	}
	override := &entities.TierAOverride{
		ScanningCost: dec("8000"),
		ModelingCost: dec("12000"),
		Margin:       dec("3"),
	}

	t.Run("nil override leaves costs untouched", func(t *testing.T) {
		got, applied := ResolveTierA(base, nil, 60000, 50000)
		if applied {
			t.Fatalf("expected override not applied")
		}
		if got[entities.DisciplineArchitecture].String() != "27000" {
			t.Fatalf("architecture changed without an override")
		}
	})

	t.Run("below threshold the override is inert", func(t *testing.T) {
		got, applied := ResolveTierA(base, override, 40000, 50000)
		if applied {
			t.Fatalf("expected override not applied below threshold")
		}
		if got[entities.DisciplineArchitecture].String() != "27000" {
			t.Fatalf("architecture changed below threshold")
		}
	})

	t.Run("replaces only the architecture line", func(t *testing.T) {
		got, applied := ResolveTierA(base, override, 60000, 50000)
		if !applied {
			t.Fatalf("expected override applied")
		}
		if got[entities.DisciplineArchitecture].String() != "60000" {
			t.Fatalf("architecture = %s, want (8000+12000)*3 = 60000", got[entities.DisciplineArchitecture])
		}
		for _, d := range []entities.Discipline{entities.DisciplineStructural, entities.DisciplineMEP} {
			if !got[d].Equal(base[d]) {
				t.Fatalf("discipline %s changed: %s != %s", d, got[d], base[d])
			}
		}
		// input map must not be mutated
		if base[entities.DisciplineArchitecture].String() != "27000" {
			t.Fatalf("input map mutated")
		}
	})

	t.Run("applies at exactly the threshold", func(t *testing.T) {
		_, applied := ResolveTierA(base, override, 50000, 50000)
		if !applied {
			t.Fatalf("expected override applied at threshold")
		}
	})
}
