package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorhub/caixa/internal/domain"
	"github.com/gestorhub/caixa/internal/infrastructure/metrics"
)

// EntryUseCase handles standalone ledger entries: user-submitted credits and
// debits that are not part of a transfer pair.
type EntryUseCase struct {
	entries EntryStore
	idGen   IDGenerator
	clock   Clock
	metrics *metrics.Metrics
}

// NewEntryUseCase creates a new EntryUseCase. Metrics may be nil.
func NewEntryUseCase(entries EntryStore, idGen IDGenerator, clock Clock, m *metrics.Metrics) *EntryUseCase {
	if clock == nil {
		clock = UTCClock{}
	}

	return &EntryUseCase{entries: entries, idGen: idGen, clock: clock, metrics: m}
}

// CreateEntryInput represents input for creating a standalone entry.
type CreateEntryInput struct {
	Kind        domain.EntryKind
	Amount      decimal.Decimal
	DueDate     time.Time
	SettledDate *time.Time
	AccountID   string
	Category    string
	Description string
}

// CreateEntry validates and inserts a single entry. A store failure is
// surfaced to the caller for a user-visible retry; it is never auto-retried
// here.
func (uc *EntryUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.Entry, error) {
	entry := &domain.Entry{
		ID:          uc.idGen.Generate(),
		Kind:        input.Kind,
		Amount:      input.Amount,
		DueDate:     input.DueDate,
		SettledDate: input.SettledDate,
		AccountID:   input.AccountID,
		Category:    input.Category,
		Description: input.Description,
		Provenance:  domain.ProvenanceWallet,
		CreatedAt:   uc.clock.Now(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := uc.entries.Insert(ctx, entry); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.Inc()
	}

	return entry, nil
}

// ListEntries lists normalized entries, optionally narrowed by account,
// settlement state or category.
func (uc *EntryUseCase) ListEntries(ctx context.Context, filter EntryFilter) ([]*domain.Entry, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	if filter.Limit > 500 {
		filter.Limit = 500
	}

	return uc.entries.List(ctx, filter)
}
