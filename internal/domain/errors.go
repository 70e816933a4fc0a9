package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Entry errors
	ErrEntryNotFound = errors.New("entry not found")
	ErrInvalidKind   = errors.New("entry kind must be credit or debit")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrExternalEntry = errors.New("entry belongs to a read-only source")

	// Transfer errors
	ErrSameAccount        = errors.New("cannot transfer to same account")
	ErrTransferAborted    = errors.New("transfer aborted before any write")
	ErrTransferRolledBack = errors.New("transfer rolled back after partial failure")
)

// Transfer rejection reason codes surfaced to callers.
const (
	ReasonSameAccount       = "SAME_ACCOUNT"
	ReasonMissingAccount    = "MISSING_ACCOUNT"
	ReasonNonPositiveAmount = "NON_POSITIVE_AMOUNT"
)

// TransferReason maps a validation error to its reason code. Empty string for
// errors that are not transfer validation failures.
func TransferReason(err error) string {
	switch {
	case errors.Is(err, ErrSameAccount):
		return ReasonSameAccount
	case errors.Is(err, ErrAccountNotFound):
		return ReasonMissingAccount
	case errors.Is(err, ErrInvalidAmount):
		return ReasonNonPositiveAmount
	default:
		return ""
	}
}

// InconsistentTransferError reports the double-failure case: the origin leg
// persisted, the destination write failed, and deleting the origin leg failed
// too. The books now hold an orphaned leg that needs manual reconciliation.
type InconsistentTransferError struct {
	TransferID    string
	OrphanEntryID string
	AccountID     string
	Amount        decimal.Decimal
	WriteErr      error
	CompensateErr error
}

func (e *InconsistentTransferError) Error() string {
	return fmt.Sprintf(
		"transfer %s inconsistent: orphaned debit entry %s of %s on account %s (write: %v, compensation: %v)",
		e.TransferID, e.OrphanEntryID, e.Amount.StringFixed(2), e.AccountID, e.WriteErr, e.CompensateErr,
	)
}

func (e *InconsistentTransferError) Unwrap() error {
	return e.WriteErr
}
