package pricing

import (
	"errors"
	"fmt"

	"scan2plan/internal/domain/entities"
)

var (
	ErrMatrixEntryNotFound = errors.New("pricing matrix entry not found")
	ErrInvalidArea         = errors.New("invalid area")
	ErrUnknownRiskFactor   = errors.New("unknown risk factor")
	ErrInvalidMatrixKind   = errors.New("invalid matrix kind")
)

// MatrixEntryNotFoundError reports the exact missing key so matrix
// maintenance can act on it. It is a data-completeness failure: the engine
// never substitutes a zero rate.
type MatrixEntryNotFoundError struct {
	MatrixKind   entities.MatrixKind
	BuildingType string
	AreaTier     entities.AreaTier
	Discipline   entities.Discipline
	LOD          entities.LOD
}

func (e *MatrixEntryNotFoundError) Error() string {
	return fmt.Sprintf("no rate for matrix=%s building_type=%s tier=%s discipline=%s lod=%s",
		e.MatrixKind, e.BuildingType, e.AreaTier, e.Discipline, e.LOD)
}

func (e *MatrixEntryNotFoundError) Unwrap() error { return ErrMatrixEntryNotFound }

// InvalidAreaError rejects an area before any cost computation runs.
type InvalidAreaError struct {
	AreaID string
	Reason string
}

func (e *InvalidAreaError) Error() string {
	return fmt.Sprintf("invalid area %s: %s", e.AreaID, e.Reason)
}

func (e *InvalidAreaError) Unwrap() error { return ErrInvalidArea }

// UnknownRiskFactorError rejects a risk identifier outside the closed set.
type UnknownRiskFactorError struct {
	Risk entities.RiskFactor
}

func (e *UnknownRiskFactorError) Error() string {
	return fmt.Sprintf("unknown risk factor %q", string(e.Risk))
}

func (e *UnknownRiskFactorError) Unwrap() error { return ErrUnknownRiskFactor }
