package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorhub/caixa/internal/domain"
	"github.com/gestorhub/caixa/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:           r.Name,
		InitialBalance: r.InitialBalance,
	}
}

// CreateEntryRequest represents a request to create a standalone entry.
type CreateEntryRequest struct {
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"due_date"`
	SettledDate *time.Time      `json:"settled_date,omitempty"`
	AccountID   string          `json:"account_id,omitempty"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput() usecase.CreateEntryInput {
	return usecase.CreateEntryInput{
		Kind:        domain.EntryKind(r.Kind),
		Amount:      r.Amount,
		DueDate:     r.DueDate,
		SettledDate: r.SettledDate,
		AccountID:   r.AccountID,
		Category:    r.Category,
		Description: r.Description,
	}
}

// CreateTransferRequest represents a request to execute an aporte.
type CreateTransferRequest struct {
	OriginAccountID      string          `json:"origin_account_id"`
	DestinationAccountID string          `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
	DueDate              time.Time       `json:"due_date"`
	SettledDate          *time.Time      `json:"settled_date,omitempty"`
	Description          string          `json:"description,omitempty"`
}

// ToDomain converts to the domain transfer request.
func (r *CreateTransferRequest) ToDomain() domain.Transfer {
	return domain.Transfer{
		OriginAccountID:      r.OriginAccountID,
		DestinationAccountID: r.DestinationAccountID,
		Amount:               r.Amount,
		DueDate:              r.DueDate,
		SettledDate:          r.SettledDate,
		Description:          r.Description,
	}
}

// SettleEntryRequest represents a request to settle an entry.
type SettleEntryRequest struct {
	Date      time.Time `json:"date"`
	AccountID string    `json:"account_id,omitempty"`
}

// PreviewRequest represents a draft entry to project.
type PreviewRequest struct {
	AccountID   string          `json:"account_id"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Settled     bool            `json:"settled"`
	SettledOnly bool            `json:"settled_only"`
}

// ToUseCaseInput converts to use case input.
func (r *PreviewRequest) ToUseCaseInput() usecase.PreviewInput {
	return usecase.PreviewInput{
		AccountID:   r.AccountID,
		Kind:        domain.EntryKind(r.Kind),
		Amount:      r.Amount,
		Settled:     r.Settled,
		SettledOnly: r.SettledOnly,
	}
}
