package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a bank or wallet-like account that entries settle against.
type Account struct {
	ID             string
	Name           string
	InitialBalance decimal.Decimal
	CreatedAt      time.Time
}

// BalanceSummary is the read-only per-account shape exposed for display.
type BalanceSummary struct {
	AccountID      string
	Name           string
	InitialBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	SettledBalance decimal.Decimal
}

// Summarize computes the display summary for an account over a normalized
// entry collection.
func Summarize(account *Account, entries []*Entry) BalanceSummary {
	return BalanceSummary{
		AccountID:      account.ID,
		Name:           account.Name,
		InitialBalance: account.InitialBalance,
		CurrentBalance: ComputeBalance(account, entries, false),
		SettledBalance: ComputeBalance(account, entries, true),
	}
}
