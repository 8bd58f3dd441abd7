package pricing

import (
	"errors"
	"testing"

	"scan2plan/internal/domain/entities"
)

func TestRiskTable_Surcharge(t *testing.T) {
	table := DefaultRiskTable()
	subtotal := dec("1000")

	t.Run("no risks no surcharge", func(t *testing.T) {
		got, err := table.Surcharge(nil, subtotal)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.String() != "0" {
			t.Fatalf("surcharge = %s, want 0", got)
		}
	})

	t.Run("flat and percentage risks compose additively", func(t *testing.T) {
		got, err := table.Surcharge([]entities.RiskFactor{entities.RiskRemote, entities.RiskFastTrack}, subtotal)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// remote flat 1500 + fast-track 15% of 1000
		if got.String() != "1650" {
			t.Fatalf("surcharge = %s, want 1650", got)
		}
	})

	t.Run("duplicate risks apply once", func(t *testing.T) {
		got, err := table.Surcharge([]entities.RiskFactor{entities.RiskOccupied, entities.RiskOccupied}, subtotal)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.String() != "100" {
			t.Fatalf("surcharge = %s, want 100", got)
		}
	})

	t.Run("unknown risk rejected", func(t *testing.T) {
		_, err := table.Surcharge([]entities.RiskFactor{"earthquake"}, subtotal)
		if !errors.Is(err, ErrUnknownRiskFactor) {
			t.Fatalf("expected ErrUnknownRiskFactor, got %v", err)
		}
		var ure *UnknownRiskFactorError
		if !errors.As(err, &ure) || ure.Risk != "earthquake" {
			t.Fatalf("expected UnknownRiskFactorError for earthquake, got %v", err)
		}
	})
}
