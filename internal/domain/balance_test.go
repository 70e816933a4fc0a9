package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func settledAt(t time.Time) *time.Time {
	return &t
}

func TestComputeBalance(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	account := &Account{ID: "acc-x", InitialBalance: amount("1000.00")}

	entries := []*Entry{
		{ID: "e1", Kind: KindCredit, Amount: amount("250.00"), AccountID: "acc-x", SettledDate: settledAt(now)},
		{ID: "e2", Kind: KindDebit, Amount: amount("100.00"), AccountID: "acc-x"},
		{ID: "e3", Kind: KindCredit, Amount: amount("999.99"), AccountID: "acc-other"},
		{ID: "e4", Kind: KindDebit, Amount: amount("42.00"), AccountID: ""},
	}

	t.Run("full balance", func(t *testing.T) {
		got := ComputeBalance(account, entries, false)
		require.True(t, got.Equal(amount("1150.00")), "got %s", got)
	})

	t.Run("settled only", func(t *testing.T) {
		got := ComputeBalance(account, entries, true)
		require.True(t, got.Equal(amount("1250.00")), "got %s", got)
	})

	t.Run("no matching entries yields initial balance", func(t *testing.T) {
		other := &Account{ID: "acc-empty", InitialBalance: amount("-13.37")}
		got := ComputeBalance(other, entries, false)
		require.True(t, got.Equal(amount("-13.37")), "got %s", got)
	})

	t.Run("order independence", func(t *testing.T) {
		want := ComputeBalance(account, entries, false)

		r := rand.New(rand.NewSource(1))
		for i := 0; i < 20; i++ {
			shuffled := make([]*Entry, len(entries))
			copy(shuffled, entries)
			r.Shuffle(len(shuffled), func(a, b int) {
				shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
			})

			got := ComputeBalance(account, shuffled, false)
			require.True(t, got.Equal(want), "permutation %d: got %s, want %s", i, got, want)
		}
	})

	t.Run("inputs are not mutated", func(t *testing.T) {
		before := entries[0].Amount
		ComputeBalance(account, entries, false)
		require.True(t, entries[0].Amount.Equal(before))
	})
}

func TestComputeBalance_SettlementIndependence(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	account := &Account{ID: "acc-x", InitialBalance: amount("500.00")}

	entry := &Entry{ID: "e1", Kind: KindDebit, Amount: amount("75.50"), AccountID: "acc-x"}
	entries := []*Entry{entry}

	fullBefore := ComputeBalance(account, entries, false)
	settledBefore := ComputeBalance(account, entries, true)

	entry.SettledDate = settledAt(now)

	fullAfter := ComputeBalance(account, entries, false)
	settledAfter := ComputeBalance(account, entries, true)

	require.True(t, fullAfter.Equal(fullBefore), "settling must not change the full balance")
	require.False(t, settledAfter.Equal(settledBefore), "settling must change the settled-only balance")
}

func TestComputeBalance_NoFloatDrift(t *testing.T) {
	// 0.1 added ten times is exactly 1.0 in decimal, famously not in float64.
	account := &Account{ID: "acc-x", InitialBalance: decimal.Zero}

	var entries []*Entry
	for i := 0; i < 10; i++ {
		entries = append(entries, &Entry{Kind: KindCredit, Amount: amount("0.10"), AccountID: "acc-x"})
	}

	got := ComputeBalance(account, entries, false)
	require.Equal(t, "1.00", got.StringFixed(2))
}

func TestPreviewBalance(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		current     string
		draft       *Entry
		settledOnly bool
		want        string
	}{
		{
			name:    "credit draft raises balance",
			current: "100.00",
			draft:   &Entry{Kind: KindCredit, Amount: amount("25.00"), SettledDate: settledAt(now)},
			want:    "125.00",
		},
		{
			name:    "debit draft lowers balance",
			current: "100.00",
			draft:   &Entry{Kind: KindDebit, Amount: amount("25.00"), SettledDate: settledAt(now)},
			want:    "75.00",
		},
		{
			name:        "unsettled draft cannot move a settled-only view",
			current:     "100.00",
			draft:       &Entry{Kind: KindDebit, Amount: amount("25.00")},
			settledOnly: true,
			want:        "100.00",
		},
		{
			name:    "unsettled draft still moves the full view",
			current: "100.00",
			draft:   &Entry{Kind: KindDebit, Amount: amount("25.00")},
			want:    "75.00",
		},
		{
			name:    "negative draft amount treated as zero",
			current: "100.00",
			draft:   &Entry{Kind: KindDebit, Amount: amount("-50.00")},
			want:    "100.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PreviewBalance(amount(tt.current), tt.draft, tt.settledOnly)
			require.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestPreviewBalance_ConsistentWithComputeBalance(t *testing.T) {
	account := &Account{ID: "acc-x", InitialBalance: amount("321.09")}

	entries := []*Entry{
		{ID: "e1", Kind: KindCredit, Amount: amount("10.01"), AccountID: "acc-x"},
		{ID: "e2", Kind: KindDebit, Amount: amount("3.50"), AccountID: "acc-x"},
	}

	draft := &Entry{ID: "draft", Kind: KindCredit, Amount: amount("88.88"), AccountID: "acc-x"}

	previewed := PreviewBalance(ComputeBalance(account, entries, false), draft, false)
	recomputed := ComputeBalance(account, append(entries, draft), false)

	require.True(t, previewed.Equal(recomputed), "preview %s, recomputed %s", previewed, recomputed)
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	account := &Account{ID: "acc-x", Name: "Conta Corrente", InitialBalance: amount("1000.00")}

	entries := []*Entry{
		{ID: "e1", Kind: KindCredit, Amount: amount("250.00"), AccountID: "acc-x", SettledDate: settledAt(now)},
		{ID: "e2", Kind: KindDebit, Amount: amount("100.00"), AccountID: "acc-x"},
	}

	s := Summarize(account, entries)

	require.Equal(t, "acc-x", s.AccountID)
	require.Equal(t, "Conta Corrente", s.Name)
	require.Equal(t, "1000.00", s.InitialBalance.StringFixed(2))
	require.Equal(t, "1150.00", s.CurrentBalance.StringFixed(2))
	require.Equal(t, "1250.00", s.SettledBalance.StringFixed(2))
}
