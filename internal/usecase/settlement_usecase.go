package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestorhub/caixa/internal/domain"
	"github.com/gestorhub/caixa/internal/infrastructure/metrics"
)

// SettlementUseCase marks entries as paid or received. An entry has exactly
// one forward transition, pending to settled; clearing a settlement date is a
// generic edit handled elsewhere, not a tracked transition.
type SettlementUseCase struct {
	entries EntryStore
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewSettlementUseCase creates a new SettlementUseCase. Metrics may be nil.
func NewSettlementUseCase(entries EntryStore, m *metrics.Metrics, logger zerolog.Logger) *SettlementUseCase {
	return &SettlementUseCase{entries: entries, metrics: m, logger: logger}
}

// SettleInput represents input for settling an entry. AccountID is optional;
// when the entry has no account yet it is attached at settlement time ("pay
// into this account now").
type SettleInput struct {
	EntryID   string
	Date      time.Time
	AccountID string
}

// Settle sets the settlement date on an entry. Re-settling an already-settled
// entry with a new date is a correction and is allowed. Entries from the
// legacy source are read-only here; the caller routes those edits to the
// owning module.
func (uc *SettlementUseCase) Settle(ctx context.Context, input SettleInput) (*domain.Entry, error) {
	entry, err := uc.entries.GetByID(ctx, input.EntryID)
	if err != nil {
		return nil, err
	}

	if entry.Provenance == domain.ProvenanceExternal {
		return nil, fmt.Errorf("%w: %s", domain.ErrExternalEntry, entry.ID)
	}

	entry.MarkSettled(input.Date, input.AccountID)

	if err := uc.entries.Update(ctx, entry); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesSettled.Inc()
	}

	uc.logger.Info().
		Str("entry_id", entry.ID).
		Str("account_id", entry.AccountID).
		Time("settled_date", input.Date).
		Msg("entry settled")

	return entry, nil
}
