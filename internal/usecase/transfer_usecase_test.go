package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gestorhub/caixa/internal/domain"
	"github.com/gestorhub/caixa/internal/usecase"
	"github.com/gestorhub/caixa/internal/usecase/mocks"
)

func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedAccounts(t *testing.T, repo *mocks.MockAccountRepository, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if err := repo.Create(context.Background(), &domain.Account{ID: id, Name: id}); err != nil {
			t.Fatalf("seed account %s: %v", id, err)
		}
	}
}

func TestTransferUseCase_Execute(t *testing.T) {
	now := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

	validTransfer := domain.Transfer{
		OriginAccountID:      "acc-a",
		DestinationAccountID: "acc-b",
		Amount:               amount("150.00"),
		DueDate:              now,
		Description:          "aporte mensal",
	}

	t.Run("commits both legs", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		seedAccounts(t, accountRepo, "acc-a", "acc-b")
		entries := mocks.NewMockEntryStore()

		uc := usecase.NewTransferUseCase(accountRepo, entries, mocks.NewMockIDGenerator(), mocks.MockClock{Time: now}, nil, zerolog.Nop())

		result, err := uc.Execute(context.Background(), validTransfer)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.State != domain.TransferCommitted {
			t.Errorf("expected state %s, got %s", domain.TransferCommitted, result.State)
		}
		if entries.Len() != 2 {
			t.Fatalf("expected 2 entries written, got %d", entries.Len())
		}

		origin, destination := result.OriginEntry, result.DestinationEntry
		if origin.Kind != domain.KindDebit || destination.Kind != domain.KindCredit {
			t.Errorf("expected debit origin and credit destination, got %s/%s", origin.Kind, destination.Kind)
		}
		if origin.TransferID != result.TransferID || destination.TransferID != result.TransferID {
			t.Errorf("legs must share the transfer id %s", result.TransferID)
		}
		if !origin.Signed().Add(destination.Signed()).IsZero() {
			t.Errorf("legs must net to zero")
		}
	})

	t.Run("moves the amount between balances", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		origin := &domain.Account{ID: "acc-a", InitialBalance: amount("500.00")}
		destination := &domain.Account{ID: "acc-b", InitialBalance: amount("200.00")}
		for _, a := range []*domain.Account{origin, destination} {
			if err := accountRepo.Create(context.Background(), a); err != nil {
				t.Fatal(err)
			}
		}
		entries := mocks.NewMockEntryStore()

		uc := usecase.NewTransferUseCase(accountRepo, entries, mocks.NewMockIDGenerator(), mocks.MockClock{Time: now}, nil, zerolog.Nop())

		transfer := validTransfer
		transfer.Amount = amount("300.00")

		result, err := uc.Execute(context.Background(), transfer)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		legs := []*domain.Entry{result.OriginEntry, result.DestinationEntry}
		if got := domain.ComputeBalance(origin, legs, false); !got.Equal(amount("200.00")) {
			t.Errorf("origin balance: expected 200.00, got %s", got)
		}
		if got := domain.ComputeBalance(destination, legs, false); !got.Equal(amount("500.00")) {
			t.Errorf("destination balance: expected 500.00, got %s", got)
		}
	})

	t.Run("rejects self transfer before any write", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		seedAccounts(t, accountRepo, "acc-a")
		entries := mocks.NewMockEntryStore()

		uc := usecase.NewTransferUseCase(accountRepo, entries, mocks.NewMockIDGenerator(), mocks.MockClock{Time: now}, nil, zerolog.Nop())

		transfer := validTransfer
		transfer.DestinationAccountID = "acc-a"

		_, err := uc.Execute(context.Background(), transfer)
		if !errors.Is(err, domain.ErrSameAccount) {
			t.Fatalf("expected ErrSameAccount, got %v", err)
		}
		if entries.Len() != 0 {
			t.Errorf("expected no entries written, got %d", entries.Len())
		}
	})

	t.Run("rejects non-positive amount before any write", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		seedAccounts(t, accountRepo, "acc-a", "acc-b")
		entries := mocks.NewMockEntryStore()

		uc := usecase.NewTransferUseCase(accountRepo, entries, mocks.NewMockIDGenerator(), mocks.MockClock{Time: now}, nil, zerolog.Nop())

		transfer := validTransfer
		transfer.Amount = decimal.Zero

		_, err := uc.Execute(context.Background(), transfer)
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
		if entries.Len() != 0 {
			t.Errorf("expected no entries written, got %d", entries.Len())
		}
	})

	t.Run("rejects missing destination account before any write", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		seedAccounts(t, accountRepo, "acc-a")
		entries := mocks.NewMockEntryStore()

		uc := usecase.NewTransferUseCase(accountRepo, entries, mocks.NewMockIDGenerator(), mocks.MockClock{Time: now}, nil, zerolog.Nop())

		_, err := uc.Execute(context.Background(), validTransfer)
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
		if entries.Len() != 0 {
			t.Errorf("expected no entries written, got %d", entries.Len())
		}
	})

	t.Run("origin write failure aborts with nothing behind", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		seedAccounts(t, accountRepo, "acc-a", "acc-b")

		entries := mocks.NewMockEntryStore()
		entries.InsertFunc = func(ctx context.Context, entry *domain.Entry) error {
			return errors.New("connection reset")
		}

		uc := usecase.NewTransferUseCase(accountRepo, entries, mocks.NewMockIDGenerator(), mocks.MockClock{Time: now}, nil, zerolog.Nop())

		_, err := uc.Execute(context.Background(), validTransfer)
		if !errors.Is(err, domain.ErrTransferAborted) {
			t.Fatalf("expected ErrTransferAborted, got %v", err)
		}
		if entries.Len() != 0 {
			t.Errorf("expected no entries left behind, got %d", entries.Len())
		}
	})

	t.Run("destination write failure rolls back the origin leg", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		seedAccounts(t, accountRepo, "acc-a", "acc-b")

		entries := mocks.NewMockEntryStore()
		inner := mocks.NewMockEntryStore()
		calls := 0
		entries.InsertFunc = func(ctx context.Context, entry *domain.Entry) error {
			calls++
			if calls == 2 {
				return errors.New("connection reset")
			}
			return inner.Insert(ctx, entry)
		}
		entries.DeleteFunc = inner.Delete

		uc := usecase.NewTransferUseCase(accountRepo, entries, mocks.NewMockIDGenerator(), mocks.MockClock{Time: now}, nil, zerolog.Nop())

		_, err := uc.Execute(context.Background(), validTransfer)
		if !errors.Is(err, domain.ErrTransferRolledBack) {
			t.Fatalf("expected ErrTransferRolledBack, got %v", err)
		}
		if inner.Len() != 0 {
			t.Errorf("expected the origin leg to be deleted, store holds %d", inner.Len())
		}
	})

	t.Run("rollback still runs after caller cancellation", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		seedAccounts(t, accountRepo, "acc-a", "acc-b")

		entries := mocks.NewMockEntryStore()
		inner := mocks.NewMockEntryStore()
		calls := 0
		entries.InsertFunc = func(ctx context.Context, entry *domain.Entry) error {
			calls++
			if calls == 2 {
				return context.Canceled
			}
			return inner.Insert(ctx, entry)
		}
		entries.DeleteFunc = func(ctx context.Context, id string) error {
			if err := ctx.Err(); err != nil {
				t.Errorf("compensation delete must not observe cancellation: %v", err)
			}
			return inner.Delete(ctx, id)
		}

		uc := usecase.NewTransferUseCase(accountRepo, entries, mocks.NewMockIDGenerator(), mocks.MockClock{Time: now}, nil, zerolog.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := uc.Execute(ctx, validTransfer)
		if !errors.Is(err, domain.ErrTransferRolledBack) {
			t.Fatalf("expected ErrTransferRolledBack, got %v", err)
		}
		if inner.Len() != 0 {
			t.Errorf("expected the origin leg to be deleted, store holds %d", inner.Len())
		}
	})

	t.Run("failed compensation reports the orphaned leg", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository()
		seedAccounts(t, accountRepo, "acc-a", "acc-b")

		writeErr := errors.New("connection reset")
		deleteErr := errors.New("timeout")

		entries := mocks.NewMockEntryStore()
		inner := mocks.NewMockEntryStore()
		calls := 0
		entries.InsertFunc = func(ctx context.Context, entry *domain.Entry) error {
			calls++
			if calls == 2 {
				return writeErr
			}
			return inner.Insert(ctx, entry)
		}
		entries.DeleteFunc = func(ctx context.Context, id string) error {
			return deleteErr
		}

		uc := usecase.NewTransferUseCase(accountRepo, entries, mocks.NewMockIDGenerator(), mocks.MockClock{Time: now}, nil, zerolog.Nop())

		_, err := uc.Execute(context.Background(), validTransfer)

		var inc *domain.InconsistentTransferError
		if !errors.As(err, &inc) {
			t.Fatalf("expected InconsistentTransferError, got %v", err)
		}

		if inc.AccountID != "acc-a" {
			t.Errorf("orphan must sit on the origin account, got %q", inc.AccountID)
		}
		if !inc.Amount.Equal(amount("150.00")) {
			t.Errorf("orphan amount mismatch: %s", inc.Amount)
		}
		if inc.OrphanEntryID == "" || inc.TransferID == "" {
			t.Errorf("orphan details missing: entry %q, transfer %q", inc.OrphanEntryID, inc.TransferID)
		}
		if !errors.Is(inc.WriteErr, writeErr) || !errors.Is(inc.CompensateErr, deleteErr) {
			t.Errorf("underlying errors not preserved")
		}
		if inner.Len() != 1 {
			t.Errorf("expected the orphaned origin leg to remain, store holds %d", inner.Len())
		}
	})
}
