package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTransfer_Validate(t *testing.T) {
	tests := []struct {
		name     string
		transfer Transfer
		wantErr  error
	}{
		{
			name: "valid transfer",
			transfer: Transfer{
				OriginAccountID:      "acc-1",
				DestinationAccountID: "acc-2",
				Amount:               amount("100.00"),
			},
		},
		{
			name: "same account rejected",
			transfer: Transfer{
				OriginAccountID:      "acc-1",
				DestinationAccountID: "acc-1",
				Amount:               amount("100.00"),
			},
			wantErr: ErrSameAccount,
		},
		{
			name: "zero amount rejected",
			transfer: Transfer{
				OriginAccountID:      "acc-1",
				DestinationAccountID: "acc-2",
				Amount:               decimal.Zero,
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "negative amount rejected",
			transfer: Transfer{
				OriginAccountID:      "acc-1",
				DestinationAccountID: "acc-2",
				Amount:               amount("-1.00"),
			},
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transfer.Validate()
			if err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTransfer_Legs(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	due := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	settled := now

	transfer := Transfer{
		OriginAccountID:      "acc-a",
		DestinationAccountID: "acc-b",
		Amount:               amount("300.00"),
		DueDate:              due,
		SettledDate:          &settled,
		Description:          "monthly top-up",
	}

	origin, destination := transfer.Legs("tr-1", "e-origin", "e-dest", now)

	if origin.Kind != KindDebit || destination.Kind != KindCredit {
		t.Fatalf("expected debit origin and credit destination, got %s/%s", origin.Kind, destination.Kind)
	}

	if origin.AccountID != "acc-a" || destination.AccountID != "acc-b" {
		t.Errorf("legs attached to wrong accounts: %s/%s", origin.AccountID, destination.AccountID)
	}

	if origin.TransferID != "tr-1" || destination.TransferID != "tr-1" {
		t.Errorf("legs must share the transfer id")
	}

	if !origin.Amount.Equal(destination.Amount) {
		t.Errorf("legs must carry the same amount")
	}

	// The pair nets to zero: what leaves the origin arrives at the destination.
	if !origin.Signed().Add(destination.Signed()).IsZero() {
		t.Errorf("legs must net to zero, got %s", origin.Signed().Add(destination.Signed()))
	}

	for _, leg := range []*Entry{origin, destination} {
		if !leg.DueDate.Equal(due) {
			t.Errorf("leg due date mismatch")
		}
		if leg.SettledDate == nil || !leg.SettledDate.Equal(settled) {
			t.Errorf("leg settled date mismatch")
		}
		if leg.Description != "monthly top-up" {
			t.Errorf("leg description mismatch")
		}
		if !leg.TransferLeg() {
			t.Errorf("leg must report itself as a transfer leg")
		}
		if err := leg.Validate(); err != nil {
			t.Errorf("leg must be valid: %v", err)
		}
	}
}

func TestTransferReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrSameAccount, ReasonSameAccount},
		{ErrAccountNotFound, ReasonMissingAccount},
		{ErrInvalidAmount, ReasonNonPositiveAmount},
		{errors.New("something else"), ""},
	}

	for _, tt := range tests {
		if got := TransferReason(tt.err); got != tt.want {
			t.Errorf("TransferReason(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestInconsistentTransferError(t *testing.T) {
	writeErr := errors.New("connection reset")
	compErr := errors.New("timeout")

	err := &InconsistentTransferError{
		TransferID:    "tr-9",
		OrphanEntryID: "e-orphan",
		AccountID:     "acc-a",
		Amount:        amount("300.00"),
		WriteErr:      writeErr,
		CompensateErr: compErr,
	}

	msg := err.Error()
	for _, want := range []string{"tr-9", "e-orphan", "acc-a", "300.00"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}

	if !errors.Is(err, writeErr) {
		t.Errorf("expected Unwrap to expose the write error")
	}
}
