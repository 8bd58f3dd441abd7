package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"scan2plan/internal/domain/entities"
	"scan2plan/internal/pricing"
	"scan2plan/internal/usecase/interfaces"
)

var (
	ErrInvalidLeadID       = errors.New("invalid lead id")
	ErrInvalidQuoteID      = errors.New("invalid quote id")
	ErrQuoteNotFound       = errors.New("quote not found")
	ErrQuoteAlreadyExists  = errors.New("lead already has a quote")
	ErrQuoteNotLatest      = errors.New("quote is not the latest version")
	ErrVersionConflict     = errors.New("version conflict: latest quote changed")
	ErrQuoteNumberConflict = errors.New("quote number allocation failed")
)

// quoteNumberAttempts covers the sanctioned single retry after a
// quote-number uniqueness race.
const quoteNumberAttempts = 2

// QuoteInput carries the pricing inputs for a calculation. The same shape
// serves create, in-place recalculation and new-version creation; a quote's
// breakdown is only ever re-derived from inputs, never patched.
type QuoteInput struct {
	LeadID        string
	MatrixKind    entities.MatrixKind
	Areas         []entities.Area
	Travel        entities.TravelConfig
	Risks         []entities.RiskFactor
	Services      []entities.AddOnService
	TierAOverride *entities.TierAOverride
	PaymentTerms  string
}

// IQuoteUseCase exposes quote pricing and version management.
//
// State machine per lead: NO_QUOTES -> HAS_LATEST(v).
//   - CreateQuote: only from NO_QUOTES; assigns version 1 and a fresh number
//   - CreateVersion: from HAS_LATEST(v) with an optimistic expected-version
//     check; the new quote becomes latest atomically
//   - RecalculateLatest: in-place re-derivation on the latest quote only

type IQuoteUseCase interface {
	CreateQuote(ctx context.Context, in QuoteInput) (entities.Quote, error)
	CreateVersion(ctx context.Context, quoteID string, expectedVersion int, in QuoteInput) (entities.Quote, error)
	RecalculateLatest(ctx context.Context, quoteID string, in QuoteInput) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	ListByLeadID(ctx context.Context, leadID string) ([]entities.Quote, error)
	GetLatestByLeadID(ctx context.Context, leadID string) (entities.Quote, error)
	LineItems(ctx context.Context, quoteID string) ([]entities.ProposalLineItem, error)
}

type QuoteUseCase struct {
	repo      interfaces.IQuoteRepository
	allocator interfaces.IQuoteNumberAllocator
	settings  interfaces.ISettingsRepository
	engine    *pricing.Engine
	now       func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(
	repo interfaces.IQuoteRepository,
	allocator interfaces.IQuoteNumberAllocator,
	settings interfaces.ISettingsRepository,
	matrix pricing.MatrixLookup,
) *QuoteUseCase {
	return &QuoteUseCase{
		repo:      repo,
		allocator: allocator,
		settings:  settings,
		engine:    pricing.NewEngine(matrix),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, in QuoteInput) (entities.Quote, error) {
	leadID := strings.TrimSpace(in.LeadID)
	if leadID == "" {
		return entities.Quote{}, ErrInvalidLeadID
	}

	existing, err := u.repo.ListByLeadID(ctx, leadID)
	if err != nil {
		return entities.Quote{}, err
	}
	if len(existing) > 0 {
		return entities.Quote{}, ErrQuoteAlreadyExists
	}

	breakdown, err := u.calculate(ctx, in)
	if err != nil {
		return entities.Quote{}, err
	}

	now := u.now()
	q := entities.Quote{
		ID:               uuid.NewString(),
		LeadID:           leadID,
		VersionNumber:    1,
		IsLatest:         true,
		MatrixKind:       in.MatrixKind,
		Areas:            in.Areas,
		Travel:           in.Travel,
		Risks:            in.Risks,
		Services:         in.Services,
		TierAOverride:    in.TierAOverride,
		PricingBreakdown: breakdown,
		TotalPrice:       breakdown.Total.Round(0),
		PaymentTerms:     in.PaymentTerms,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	for attempt := 0; attempt < quoteNumberAttempts; attempt++ {
		q.QuoteNumber, err = u.allocateQuoteNumber(ctx, now)
		if err != nil {
			return entities.Quote{}, err
		}
		created, err := u.repo.CreateInitial(ctx, q)
		switch {
		case errors.Is(err, interfaces.ErrQuoteNumberTaken):
			continue
		case errors.Is(err, interfaces.ErrLeadRootExists):
			return entities.Quote{}, ErrQuoteAlreadyExists
		case err != nil:
			return entities.Quote{}, err
		}
		return created, nil
	}
	return entities.Quote{}, ErrQuoteNumberConflict
}

func (u *QuoteUseCase) CreateVersion(ctx context.Context, quoteID string, expectedVersion int, in QuoteInput) (entities.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	base, err := u.repo.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if base.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	latest, err := u.repo.GetLatestByLeadID(ctx, base.LeadID)
	if err != nil {
		return entities.Quote{}, err
	}
	if latest.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if latest.VersionNumber != expectedVersion {
		return entities.Quote{}, ErrVersionConflict
	}

	tree, err := u.repo.ListByLeadID(ctx, base.LeadID)
	if err != nil {
		return entities.Quote{}, err
	}
	maxVersion := 0
	for _, q := range tree {
		if q.VersionNumber > maxVersion {
			maxVersion = q.VersionNumber
		}
	}

	breakdown, err := u.calculate(ctx, in)
	if err != nil {
		return entities.Quote{}, err
	}

	now := u.now()
	next := entities.Quote{
		ID:               uuid.NewString(),
		LeadID:           base.LeadID,
		VersionNumber:    maxVersion + 1,
		ParentQuoteID:    base.RootID(),
		IsLatest:         true,
		MatrixKind:       in.MatrixKind,
		Areas:            in.Areas,
		Travel:           in.Travel,
		Risks:            in.Risks,
		Services:         in.Services,
		TierAOverride:    in.TierAOverride,
		PricingBreakdown: breakdown,
		TotalPrice:       breakdown.Total.Round(0),
		PaymentTerms:     in.PaymentTerms,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	for attempt := 0; attempt < quoteNumberAttempts; attempt++ {
		next.QuoteNumber, err = u.allocateQuoteNumber(ctx, now)
		if err != nil {
			return entities.Quote{}, err
		}
		created, err := u.repo.CreateVersion(ctx, next, latest.ID, expectedVersion)
		switch {
		case errors.Is(err, interfaces.ErrQuoteNumberTaken):
			continue
		case errors.Is(err, interfaces.ErrLatestFlipConflict):
			return entities.Quote{}, ErrVersionConflict
		case err != nil:
			return entities.Quote{}, err
		}
		return created, nil
	}
	return entities.Quote{}, ErrQuoteNumberConflict
}

func (u *QuoteUseCase) RecalculateLatest(ctx context.Context, quoteID string, in QuoteInput) (entities.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if !q.IsLatest {
		return entities.Quote{}, ErrQuoteNotLatest
	}

	breakdown, err := u.calculate(ctx, in)
	if err != nil {
		return entities.Quote{}, err
	}

	q.MatrixKind = in.MatrixKind
	q.Areas = in.Areas
	q.Travel = in.Travel
	q.Risks = in.Risks
	q.Services = in.Services
	q.TierAOverride = in.TierAOverride
	q.PricingBreakdown = breakdown
	q.TotalPrice = breakdown.Total.Round(0)
	if in.PaymentTerms != "" {
		q.PaymentTerms = in.PaymentTerms
	}
	q.UpdatedAt = u.now()

	updated, err := u.repo.UpdateLatest(ctx, q)
	if errors.Is(err, interfaces.ErrLatestFlipConflict) {
		return entities.Quote{}, ErrQuoteNotLatest
	}
	if err != nil {
		return entities.Quote{}, err
	}
	return updated, nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) ListByLeadID(ctx context.Context, leadID string) ([]entities.Quote, error) {
	leadID = strings.TrimSpace(leadID)
	if leadID == "" {
		return nil, ErrInvalidLeadID
	}
	quotes, err := u.repo.ListByLeadID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].VersionNumber < quotes[j].VersionNumber
	})
	return quotes, nil
}

func (u *QuoteUseCase) GetLatestByLeadID(ctx context.Context, leadID string) (entities.Quote, error) {
	leadID = strings.TrimSpace(leadID)
	if leadID == "" {
		return entities.Quote{}, ErrInvalidLeadID
	}
	q, err := u.repo.GetLatestByLeadID(ctx, leadID)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) LineItems(ctx context.Context, quoteID string) ([]entities.ProposalLineItem, error) {
	q, err := u.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	return BuildLineItems(q), nil
}

func (u *QuoteUseCase) calculate(ctx context.Context, in QuoteInput) (entities.PricingBreakdown, error) {
	defaults, err := u.settings.GetBusinessDefaults(ctx)
	if err != nil {
		return entities.PricingBreakdown{}, err
	}
	breakdown, err := u.engine.Calculate(ctx, pricing.Input{
		MatrixKind:    in.MatrixKind,
		Areas:         in.Areas,
		Travel:        in.Travel,
		Risks:         in.Risks,
		Services:      in.Services,
		TierAOverride: in.TierAOverride,
		Defaults:      defaults,
	})
	if err != nil {
		return entities.PricingBreakdown{}, err
	}
	return breakdown, nil
}

func (u *QuoteUseCase) allocateQuoteNumber(ctx context.Context, now time.Time) (string, error) {
	year := now.Year()
	seq, err := u.allocator.NextSequence(ctx, year)
	if err != nil {
		return "", err
	}
	return FormatQuoteNumber(year, seq), nil
}

// FormatQuoteNumber renders the S2P-<year>-<seq> scheme. The sequence is
// zero-padded to four digits; it keeps growing past 9999 within a year.
func FormatQuoteNumber(year, seq int) string {
	return fmt.Sprintf("S2P-%d-%04d", year, seq)
}
