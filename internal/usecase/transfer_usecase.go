package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestorhub/caixa/internal/domain"
	"github.com/gestorhub/caixa/internal/infrastructure/metrics"
)

// TransferUseCase orchestrates the double-entry transfer (aporte): one debit
// leg at the origin, one credit leg at the destination, linked by a shared
// transfer id.
//
// The record store offers independent single-record inserts only, so the two
// legs cannot land in one transaction. The use case runs a compensating-action
// protocol instead:
//
//	Pending -> OriginWritten -> Committed
//	                         -> CompensatedRollback (destination failed, origin deleted)
//	                         -> Inconsistent         (destination failed, delete failed too)
//
// The writes are always issued sequentially; compensation needs a known
// write order. Once the origin write is acknowledged the operation runs to
// completion, success or compensation.
type TransferUseCase struct {
	accountRepo AccountRepository
	entries     EntryStore
	idGen       IDGenerator
	clock       Clock
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewTransferUseCase creates a new TransferUseCase. Metrics may be nil.
func NewTransferUseCase(
	accountRepo AccountRepository,
	entries EntryStore,
	idGen IDGenerator,
	clock Clock,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *TransferUseCase {
	if clock == nil {
		clock = UTCClock{}
	}

	return &TransferUseCase{
		accountRepo: accountRepo,
		entries:     entries,
		idGen:       idGen,
		clock:       clock,
		metrics:     m,
		logger:      logger,
	}
}

// Execute validates and performs the transfer. Validation failures return
// before any write. A destination failure triggers deletion of the origin leg;
// if that deletion fails too, the error is a *domain.InconsistentTransferError
// naming the orphaned leg.
func (uc *TransferUseCase) Execute(ctx context.Context, transfer domain.Transfer) (*domain.TransferResult, error) {
	start := time.Now()

	result, err := uc.execute(ctx, transfer)
	if err != nil {
		uc.countFailure(err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersCommitted.Inc()
		uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
	}

	return result, nil
}

func (uc *TransferUseCase) execute(ctx context.Context, transfer domain.Transfer) (*domain.TransferResult, error) {
	// Validation happens before any write.
	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.accountRepo.GetByID(ctx, transfer.OriginAccountID); err != nil {
		return nil, err
	}

	if _, err := uc.accountRepo.GetByID(ctx, transfer.DestinationAccountID); err != nil {
		return nil, err
	}

	transferID := uc.idGen.Generate()
	now := uc.clock.Now()
	origin, destination := transfer.Legs(transferID, uc.idGen.Generate(), uc.idGen.Generate(), now)

	// First write. Failure here leaves nothing behind.
	if err := uc.entries.Insert(ctx, origin); err != nil {
		return nil, fmt.Errorf("%w: origin leg: %w", domain.ErrTransferAborted, err)
	}

	// Second write. From here on the operation runs to completion.
	if err := uc.entries.Insert(ctx, destination); err != nil {
		return nil, uc.compensate(ctx, transferID, origin, err)
	}

	uc.logger.Info().
		Str("transfer_id", transferID).
		Str("origin_account", transfer.OriginAccountID).
		Str("destination_account", transfer.DestinationAccountID).
		Str("amount", transfer.Amount.StringFixed(2)).
		Msg("transfer committed")

	return &domain.TransferResult{
		TransferID:       transferID,
		OriginEntry:      origin,
		DestinationEntry: destination,
		State:            domain.TransferCommitted,
	}, nil
}

// compensate deletes the already-written origin leg after a destination
// failure. The compensation delete ignores ctx cancellation: the origin write
// was acknowledged, so the rollback must be attempted regardless.
func (uc *TransferUseCase) compensate(ctx context.Context, transferID string, origin *domain.Entry, writeErr error) error {
	if err := uc.entries.Delete(context.WithoutCancel(ctx), origin.ID); err != nil {
		incErr := &domain.InconsistentTransferError{
			TransferID:    transferID,
			OrphanEntryID: origin.ID,
			AccountID:     origin.AccountID,
			Amount:        origin.Amount,
			WriteErr:      writeErr,
			CompensateErr: err,
		}

		uc.logger.Error().
			Str("transfer_id", transferID).
			Str("orphan_entry_id", origin.ID).
			Str("account_id", origin.AccountID).
			Str("amount", origin.Amount.StringFixed(2)).
			Err(err).
			Msg("transfer inconsistent: compensation failed, manual reconciliation required")

		return incErr
	}

	uc.logger.Warn().
		Str("transfer_id", transferID).
		Err(writeErr).
		Msg("destination write failed, origin leg rolled back")

	return fmt.Errorf("%w: destination leg: %w", domain.ErrTransferRolledBack, writeErr)
}

func (uc *TransferUseCase) countFailure(err error) {
	if uc.metrics == nil {
		return
	}

	if reason := domain.TransferReason(err); reason != "" {
		uc.metrics.TransferRejections.WithLabelValues(reason).Inc()
		return
	}

	var inc *domain.InconsistentTransferError

	switch {
	case errors.As(err, &inc):
		uc.metrics.TransferFailures.WithLabelValues("inconsistent").Inc()
	case errors.Is(err, domain.ErrTransferRolledBack):
		uc.metrics.TransferFailures.WithLabelValues("rolled_back").Inc()
	default:
		uc.metrics.TransferFailures.WithLabelValues("origin_write").Inc()
	}
}
