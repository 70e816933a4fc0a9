package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is a request to move funds between two accounts. It is a logical
// operation, not a stored entity: on success it materializes as exactly two
// entries, a debit at the origin and a credit at the destination, sharing a
// transfer id.
type Transfer struct {
	OriginAccountID      string
	DestinationAccountID string
	Amount               decimal.Decimal
	DueDate              time.Time
	SettledDate          *time.Time
	Description          string
}

// Validate validates the transfer request.
func (t *Transfer) Validate() error {
	if t.OriginAccountID == t.DestinationAccountID {
		return ErrSameAccount
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// Legs builds the paired entries for the transfer. Both legs carry the same
// transfer id, dates, amount and description; only kind and account differ.
func (t *Transfer) Legs(transferID, originEntryID, destinationEntryID string, now time.Time) (origin, destination *Entry) {
	origin = &Entry{
		ID:          originEntryID,
		Kind:        KindDebit,
		Amount:      t.Amount,
		DueDate:     t.DueDate,
		SettledDate: t.SettledDate,
		AccountID:   t.OriginAccountID,
		Category:    CategoryTransfer,
		Description: t.Description,
		Provenance:  ProvenanceWallet,
		TransferID:  transferID,
		CreatedAt:   now,
	}

	destination = &Entry{
		ID:          destinationEntryID,
		Kind:        KindCredit,
		Amount:      t.Amount,
		DueDate:     t.DueDate,
		SettledDate: t.SettledDate,
		AccountID:   t.DestinationAccountID,
		Category:    CategoryTransfer,
		Description: t.Description,
		Provenance:  ProvenanceWallet,
		TransferID:  transferID,
		CreatedAt:   now,
	}

	return origin, destination
}

// CategoryTransfer tags system-generated transfer legs.
const CategoryTransfer = "transfer"

// TransferState tracks a transfer through the two sequential store writes and
// their compensation path.
type TransferState string

const (
	TransferPending       TransferState = "pending"
	TransferOriginWritten TransferState = "origin_written"
	TransferCommitted     TransferState = "committed"
	TransferRolledBack    TransferState = "compensated_rollback"
	TransferInconsistent  TransferState = "inconsistent"
)

// TransferResult is the outcome of a committed transfer.
type TransferResult struct {
	TransferID       string
	OriginEntry      *Entry
	DestinationEntry *Entry
	State            TransferState
}
