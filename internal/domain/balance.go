package domain

import "github.com/shopspring/decimal"

// ComputeBalance returns the balance of an account over a normalized entry
// collection: initial balance plus credits minus debits. With settledOnly set,
// pending entries are left out.
//
// The function is pure and order-independent; callers may pass the full entry
// collection, filtering happens here. An account with no matching entries
// yields its initial balance, not zero.
func ComputeBalance(account *Account, entries []*Entry, settledOnly bool) decimal.Decimal {
	balance := account.InitialBalance

	for _, e := range entries {
		if e.AccountID != account.ID {
			continue
		}

		if settledOnly && !e.Settled() {
			continue
		}

		balance = balance.Add(e.Signed())
	}

	return balance
}

// PreviewBalance projects the balance after a draft entry without persisting
// anything. An unsettled draft cannot move a settled-only view, and a
// negative draft amount is treated as zero even when upstream validation let
// it through.
func PreviewBalance(current decimal.Decimal, draft *Entry, settledOnly bool) decimal.Decimal {
	if settledOnly && !draft.Settled() {
		return current
	}

	amount := draft.Amount
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	if draft.Kind == KindDebit {
		return current.Sub(amount)
	}

	return current.Add(amount)
}
