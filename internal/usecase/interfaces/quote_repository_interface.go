package interfaces

import (
	"context"
	"errors"

	"scan2plan/internal/domain/entities"
)

// Conflict sentinels surfaced by repository implementations when a
// condition-protected write loses a race. The use case translates them into
// caller-facing errors; they never cross the HTTP boundary directly.
var (
	ErrQuoteNumberTaken   = errors.New("quote number already taken")
	ErrLatestFlipConflict = errors.New("latest quote changed since read")
	ErrLeadRootExists     = errors.New("lead already has a root quote")
)

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// The versioning invariants live here as atomic units:
//   - CreateInitial guards quote-number uniqueness and one root per lead
//   - CreateVersion inserts the new version and flips the outgoing latest
//     in a single transaction
//   - UpdateLatest is conditioned on the row still being the latest

type IQuoteRepository interface {
	CreateInitial(ctx context.Context, q entities.Quote) (entities.Quote, error)
	// CreateVersion conditions the is_latest flip on currentLatestID still
	// holding expectedVersion; a stale read fails with
	// ErrLatestFlipConflict and writes nothing.
	CreateVersion(ctx context.Context, q entities.Quote, currentLatestID string, expectedVersion int) (entities.Quote, error)
	UpdateLatest(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByLeadID(ctx context.Context, leadID string) ([]entities.Quote, error)
	GetLatestByLeadID(ctx context.Context, leadID string) (entities.Quote, error)
}
