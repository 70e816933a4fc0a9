// Package source normalizes the two heterogeneous record schemas into
// domain entries. Wallet movements and legacy finance records disagree on
// type labels, date fields and the account reference field name; everything
// downstream of this package sees one shape and never branches on origin.
package source

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorhub/caixa/internal/domain"
)

// Wallet movement type labels.
const (
	WalletTypeIncome   = "RECEITA"
	WalletTypeExpense  = "DESPESA"
	WalletTypeTransfer = "APORTE"
)

// Legacy finance record type labels.
const (
	FinanceTypeIn  = "entrada"
	FinanceTypeOut = "saida"
)

// WalletMovement is a raw row from the wallet table. APORTE is a request
// label only; stored transfer rows are RECEITA/DESPESA legs linked by
// TransferID.
type WalletMovement struct {
	ID         string
	Tipo       string
	Valor      decimal.Decimal
	Vencimento time.Time
	Pagamento  *time.Time
	ContaID    string
	Categoria  string
	Descricao  string
	TransferID string
	CriadoEm   time.Time
}

// FinanceRecord is a raw row from the legacy finance table. Records from this
// source are read-only for this module; edits are routed back to the owning
// module via provenance.
type FinanceRecord struct {
	ID             string
	Tipo           string
	Valor          decimal.Decimal
	DataVencimento time.Time
	DataPagamento  *time.Time
	Conta          string
	Categoria      string
	Descricao      string
	CriadoEm       time.Time
}

// NormalizeWallet maps a wallet movement onto a domain entry. Returns false
// for rows that cannot be represented (unknown type, non-positive amount);
// such rows are skipped, never guessed.
func NormalizeWallet(m WalletMovement) (*domain.Entry, bool) {
	var kind domain.EntryKind

	switch m.Tipo {
	case WalletTypeIncome:
		kind = domain.KindCredit
	case WalletTypeExpense:
		kind = domain.KindDebit
	default:
		return nil, false
	}

	if m.Valor.LessThanOrEqual(decimal.Zero) {
		return nil, false
	}

	return &domain.Entry{
		ID:          m.ID,
		Kind:        kind,
		Amount:      m.Valor,
		DueDate:     m.Vencimento,
		SettledDate: m.Pagamento,
		AccountID:   m.ContaID,
		Category:    m.Categoria,
		Description: m.Descricao,
		Provenance:  domain.ProvenanceWallet,
		TransferID:  m.TransferID,
		CreatedAt:   m.CriadoEm,
	}, true
}

// NormalizeFinance maps a legacy finance record onto a domain entry.
func NormalizeFinance(r FinanceRecord) (*domain.Entry, bool) {
	var kind domain.EntryKind

	switch r.Tipo {
	case FinanceTypeIn:
		kind = domain.KindCredit
	case FinanceTypeOut:
		kind = domain.KindDebit
	default:
		return nil, false
	}

	if r.Valor.LessThanOrEqual(decimal.Zero) {
		return nil, false
	}

	return &domain.Entry{
		ID:          r.ID,
		Kind:        kind,
		Amount:      r.Valor,
		DueDate:     r.DataVencimento,
		SettledDate: r.DataPagamento,
		AccountID:   r.Conta,
		Category:    r.Categoria,
		Description: r.Descricao,
		Provenance:  domain.ProvenanceExternal,
		CreatedAt:   r.CriadoEm,
	}, true
}

// Merge normalizes both collections into one entry stream. The skipped count
// reports rows dropped for unknown type or non-positive amount.
func Merge(movements []WalletMovement, records []FinanceRecord) (entries []*domain.Entry, skipped int) {
	entries = make([]*domain.Entry, 0, len(movements)+len(records))

	for _, m := range movements {
		e, ok := NormalizeWallet(m)
		if !ok {
			skipped++
			continue
		}

		entries = append(entries, e)
	}

	for _, r := range records {
		e, ok := NormalizeFinance(r)
		if !ok {
			skipped++
			continue
		}

		entries = append(entries, e)
	}

	return entries, skipped
}

// Denormalize maps a domain entry back onto a wallet movement row for
// insertion. Only wallet-provenance entries are writable through this module.
func Denormalize(e *domain.Entry) WalletMovement {
	tipo := WalletTypeIncome
	if e.Kind == domain.KindDebit {
		tipo = WalletTypeExpense
	}

	return WalletMovement{
		ID:         e.ID,
		Tipo:       tipo,
		Valor:      e.Amount,
		Vencimento: e.DueDate,
		Pagamento:  e.SettledDate,
		ContaID:    e.AccountID,
		Categoria:  e.Category,
		Descricao:  e.Description,
		TransferID: e.TransferID,
		CriadoEm:   e.CreatedAt,
	}
}
