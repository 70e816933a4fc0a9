package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestorhub/caixa/internal/domain"
	"github.com/gestorhub/caixa/internal/usecase"
	"github.com/gestorhub/caixa/internal/usecase/mocks"
)

func TestSettlementUseCase_Settle(t *testing.T) {
	date := time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("settles a pending entry", func(t *testing.T) {
		entries := mocks.NewMockEntryStore()
		if err := entries.Insert(ctx, &domain.Entry{ID: "e1", Kind: domain.KindDebit, Amount: amount("10.00"), AccountID: "acc-1", Provenance: domain.ProvenanceWallet}); err != nil {
			t.Fatal(err)
		}

		uc := usecase.NewSettlementUseCase(entries, nil, zerolog.Nop())

		entry, err := uc.Settle(ctx, usecase.SettleInput{EntryID: "e1", Date: date})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !entry.Settled() || !entry.SettledDate.Equal(date) {
			t.Errorf("expected entry settled at %v, got %v", date, entry.SettledDate)
		}

		stored, err := entries.GetByID(ctx, "e1")
		if err != nil {
			t.Fatal(err)
		}
		if !stored.Settled() {
			t.Errorf("settlement was not persisted")
		}
	})

	t.Run("attaches the account at settlement time", func(t *testing.T) {
		entries := mocks.NewMockEntryStore()
		if err := entries.Insert(ctx, &domain.Entry{ID: "e1", Kind: domain.KindCredit, Amount: amount("10.00"), Provenance: domain.ProvenanceWallet}); err != nil {
			t.Fatal(err)
		}

		uc := usecase.NewSettlementUseCase(entries, nil, zerolog.Nop())

		entry, err := uc.Settle(ctx, usecase.SettleInput{EntryID: "e1", Date: date, AccountID: "acc-9"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.AccountID != "acc-9" {
			t.Errorf("expected account acc-9, got %q", entry.AccountID)
		}
	})

	t.Run("re-settling corrects the date", func(t *testing.T) {
		entries := mocks.NewMockEntryStore()
		already := date.AddDate(0, 0, -2)
		if err := entries.Insert(ctx, &domain.Entry{ID: "e1", Kind: domain.KindDebit, Amount: amount("10.00"), AccountID: "acc-1", SettledDate: &already, Provenance: domain.ProvenanceWallet}); err != nil {
			t.Fatal(err)
		}

		uc := usecase.NewSettlementUseCase(entries, nil, zerolog.Nop())

		entry, err := uc.Settle(ctx, usecase.SettleInput{EntryID: "e1", Date: date})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !entry.SettledDate.Equal(date) {
			t.Errorf("expected corrected date %v, got %v", date, entry.SettledDate)
		}
	})

	t.Run("rejects legacy-source entries", func(t *testing.T) {
		entries := mocks.NewMockEntryStore()
		if err := entries.Insert(ctx, &domain.Entry{ID: "f1", Kind: domain.KindDebit, Amount: amount("10.00"), AccountID: "acc-1", Provenance: domain.ProvenanceExternal}); err != nil {
			t.Fatal(err)
		}

		uc := usecase.NewSettlementUseCase(entries, nil, zerolog.Nop())

		_, err := uc.Settle(ctx, usecase.SettleInput{EntryID: "f1", Date: date})
		if !errors.Is(err, domain.ErrExternalEntry) {
			t.Fatalf("expected ErrExternalEntry, got %v", err)
		}

		stored, getErr := entries.GetByID(ctx, "f1")
		if getErr != nil {
			t.Fatal(getErr)
		}
		if stored.Settled() {
			t.Errorf("legacy entry must not be modified")
		}
	})

	t.Run("unknown entry", func(t *testing.T) {
		uc := usecase.NewSettlementUseCase(mocks.NewMockEntryStore(), nil, zerolog.Nop())

		_, err := uc.Settle(ctx, usecase.SettleInput{EntryID: "missing", Date: date})
		if !errors.Is(err, domain.ErrEntryNotFound) {
			t.Fatalf("expected ErrEntryNotFound, got %v", err)
		}
	})
}
