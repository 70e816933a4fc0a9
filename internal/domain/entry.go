package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind says which side of the balance an entry lands on. The amount is
// always positive; the kind carries the sign.
type EntryKind string

const (
	KindCredit EntryKind = "CREDIT"
	KindDebit  EntryKind = "DEBIT"
)

// Provenance values identify which source table produced a record. Used for
// edit routing only, never for balance math.
const (
	ProvenanceWallet   = "wallet"
	ProvenanceExternal = "external"
)

// Entry is a single financial movement, normalized from the heterogeneous
// source schemas.
type Entry struct {
	ID          string
	Kind        EntryKind
	Amount      decimal.Decimal
	DueDate     time.Time
	SettledDate *time.Time
	AccountID   string
	Category    string
	Description string
	Provenance  string
	TransferID  string
	CreatedAt   time.Time
}

// Validate checks entry invariants.
func (e *Entry) Validate() error {
	if e.Kind != KindCredit && e.Kind != KindDebit {
		return ErrInvalidKind
	}

	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// Settled reports whether the entry has been paid or received, independent of
// its due date.
func (e *Entry) Settled() bool {
	return e.SettledDate != nil
}

// Signed returns the amount with the sign implied by the kind.
func (e *Entry) Signed() decimal.Decimal {
	if e.Kind == KindDebit {
		return e.Amount.Neg()
	}

	return e.Amount
}

// MarkSettled records the settlement date. An entry with no account picks up
// the supplied account at settlement time; re-settling with a new date is a
// correction, not an error.
func (e *Entry) MarkSettled(date time.Time, accountID string) {
	d := date
	e.SettledDate = &d

	if e.AccountID == "" && accountID != "" {
		e.AccountID = accountID
	}
}

// TransferLeg reports whether the entry is one half of a transfer pair.
func (e *Entry) TransferLeg() bool {
	return e.TransferID != ""
}
