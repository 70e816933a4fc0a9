package dto

import (
	"time"

	"github.com/gestorhub/caixa/internal/domain"
)

// Balances are fixed to two decimals at this boundary only; everything
// upstream stays in full decimal precision.

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	InitialBalance string    `json:"initial_balance"`
	CreatedAt      time.Time `json:"created_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		Name:           a.Name,
		InitialBalance: a.InitialBalance.StringFixed(2),
		CreatedAt:      a.CreatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// BalanceSummaryResponse is the read-only balance shape per account.
type BalanceSummaryResponse struct {
	AccountID      string `json:"account_id"`
	Name           string `json:"name"`
	InitialBalance string `json:"initial_balance"`
	CurrentBalance string `json:"current_balance"`
	SettledBalance string `json:"settled_balance"`
}

// SummaryFromDomain converts a domain summary to a response.
func SummaryFromDomain(s domain.BalanceSummary) *BalanceSummaryResponse {
	return &BalanceSummaryResponse{
		AccountID:      s.AccountID,
		Name:           s.Name,
		InitialBalance: s.InitialBalance.StringFixed(2),
		CurrentBalance: s.CurrentBalance.StringFixed(2),
		SettledBalance: s.SettledBalance.StringFixed(2),
	}
}

// SummariesFromDomain converts domain summaries to responses.
func SummariesFromDomain(summaries []domain.BalanceSummary) []*BalanceSummaryResponse {
	result := make([]*BalanceSummaryResponse, len(summaries))
	for i, s := range summaries {
		result[i] = SummaryFromDomain(s)
	}
	return result
}

// EntryResponse represents a normalized entry in API responses.
type EntryResponse struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	Amount      string     `json:"amount"`
	DueDate     time.Time  `json:"due_date"`
	SettledDate *time.Time `json:"settled_date,omitempty"`
	AccountID   string     `json:"account_id,omitempty"`
	Category    string     `json:"category,omitempty"`
	Description string     `json:"description,omitempty"`
	Provenance  string     `json:"provenance"`
	TransferID  string     `json:"transfer_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		Kind:        string(e.Kind),
		Amount:      e.Amount.StringFixed(2),
		DueDate:     e.DueDate,
		SettledDate: e.SettledDate,
		AccountID:   e.AccountID,
		Category:    e.Category,
		Description: e.Description,
		Provenance:  e.Provenance,
		TransferID:  e.TransferID,
		CreatedAt:   e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// TransferResponse represents a committed transfer in API responses.
type TransferResponse struct {
	TransferID       string         `json:"transfer_id"`
	State            string         `json:"state"`
	OriginEntry      *EntryResponse `json:"origin_entry"`
	DestinationEntry *EntryResponse `json:"destination_entry"`
}

// TransferFromDomain converts a domain transfer result to a response.
func TransferFromDomain(t *domain.TransferResult) *TransferResponse {
	return &TransferResponse{
		TransferID:       t.TransferID,
		State:            string(t.State),
		OriginEntry:      EntryFromDomain(t.OriginEntry),
		DestinationEntry: EntryFromDomain(t.DestinationEntry),
	}
}

// BalanceResponse is a single projected or computed balance.
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
}
