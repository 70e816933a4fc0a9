package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gestorhub/caixa/internal/domain"
	"github.com/gestorhub/caixa/internal/infrastructure/metrics"
	"github.com/gestorhub/caixa/internal/source"
	"github.com/gestorhub/caixa/internal/usecase"
)

// EntryRepository implements usecase.EntryStore over the two heterogeneous
// source tables: wallet_movements (this module's own records) and
// finance_records (the legacy module's records, read-only here). Listing
// normalizes both into domain entries; writes go to wallet_movements only.
//
// Inserts and deletes are independent single-record statements. The transfer
// protocol upstream depends on that: there is no multi-record transaction to
// lean on.
type EntryRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewEntryRepository creates a new EntryRepository. Metrics may be nil.
func NewEntryRepository(pool *pgxpool.Pool, retrier *Retrier, m *metrics.Metrics, logger zerolog.Logger) *EntryRepository {
	return &EntryRepository{pool: pool, retrier: retrier, metrics: m, logger: logger}
}

// Insert writes a single wallet movement.
func (r *EntryRepository) Insert(ctx context.Context, entry *domain.Entry) error {
	if entry.Provenance == domain.ProvenanceExternal {
		return fmt.Errorf("%w: %s", domain.ErrExternalEntry, entry.ID)
	}

	m := source.Denormalize(entry)

	_, err := r.pool.Exec(ctx, `
		INSERT INTO wallet_movements
			(id, tipo, valor, vencimento, pagamento, conta_id, categoria, descricao, transfer_id, criado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID,
		m.Tipo,
		decimalToNumeric(m.Valor),
		timeToPgTimestamptz(m.Vencimento),
		timePtrToPgTimestamptz(m.Pagamento),
		textOrNull(m.ContaID),
		m.Categoria,
		m.Descricao,
		textOrNull(m.TransferID),
		timeToPgTimestamptz(m.CriadoEm),
	)

	return err
}

// Delete removes a wallet movement. Deleting an id that is already gone is
// not an error; compensation must be idempotent.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM wallet_movements WHERE id = $1`, id)

	return err
}

// GetByID looks the entry up in both source tables.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	var entry *domain.Entry

	err := r.retrier.Retry(ctx, func() error {
		row := r.pool.QueryRow(ctx, `
			SELECT id, tipo, valor, vencimento, pagamento, conta_id, categoria, descricao, transfer_id, criado_em
			FROM wallet_movements
			WHERE id = $1`,
			id,
		)

		m, err := scanWalletMovement(row)
		if err == nil {
			e, ok := source.NormalizeWallet(m)
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrInvalidKind, id)
			}

			entry = e

			return nil
		}

		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		row = r.pool.QueryRow(ctx, `
			SELECT id, tipo, valor, data_vencimento, data_pagamento, conta, categoria, descricao, criado_em
			FROM finance_records
			WHERE id = $1`,
			id,
		)

		rec, err := scanFinanceRecord(row)
		if err != nil {
			return err
		}

		e, ok := source.NormalizeFinance(rec)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrInvalidKind, id)
		}

		entry = e

		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return entry, nil
}

// Update rewrites a wallet movement. Legacy records cannot be updated through
// this store.
func (r *EntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	if entry.Provenance == domain.ProvenanceExternal {
		return fmt.Errorf("%w: %s", domain.ErrExternalEntry, entry.ID)
	}

	m := source.Denormalize(entry)

	tag, err := r.pool.Exec(ctx, `
		UPDATE wallet_movements
		SET tipo = $2, valor = $3, vencimento = $4, pagamento = $5,
		    conta_id = $6, categoria = $7, descricao = $8
		WHERE id = $1`,
		m.ID,
		m.Tipo,
		decimalToNumeric(m.Valor),
		timeToPgTimestamptz(m.Vencimento),
		timePtrToPgTimestamptz(m.Pagamento),
		textOrNull(m.ContaID),
		m.Categoria,
		m.Descricao,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// List reads both source tables, normalizes them into one entry stream and
// applies the filter. Pagination runs over the merged, deterministically
// ordered stream.
func (r *EntryRepository) List(ctx context.Context, filter usecase.EntryFilter) ([]*domain.Entry, error) {
	var (
		movements []source.WalletMovement
		records   []source.FinanceRecord
	)

	err := r.retrier.Retry(ctx, func() error {
		var err error

		movements, err = r.listWalletMovements(ctx, filter)
		if err != nil {
			return err
		}

		records, err = r.listFinanceRecords(ctx, filter)

		return err
	})
	if err != nil {
		return nil, err
	}

	entries, skipped := source.Merge(movements, records)
	if skipped > 0 {
		r.logger.Warn().Int("skipped", skipped).Msg("dropped unrecognizable source records during normalization")

		if r.metrics != nil {
			r.metrics.RecordsSkipped.Add(float64(skipped))
		}
	}

	if filter.SettledOnly {
		settled := entries[:0]
		for _, e := range entries {
			if e.Settled() {
				settled = append(settled, e)
			}
		}

		entries = settled
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].DueDate.Equal(entries[j].DueDate) {
			return entries[i].DueDate.Before(entries[j].DueDate)
		}

		return entries[i].ID < entries[j].ID
	})

	return paginate(entries, filter.Limit, filter.Offset), nil
}

func (r *EntryRepository) listWalletMovements(ctx context.Context, filter usecase.EntryFilter) ([]source.WalletMovement, error) {
	query := `
		SELECT id, tipo, valor, vencimento, pagamento, conta_id, categoria, descricao, transfer_id, criado_em
		FROM wallet_movements
		WHERE ($1 = '' OR conta_id = $1)
		  AND ($2 = '' OR categoria = $2)`

	rows, err := r.pool.Query(ctx, query, filter.AccountID, filter.Category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []source.WalletMovement

	for rows.Next() {
		m, err := scanWalletMovement(rows)
		if err != nil {
			return nil, err
		}

		movements = append(movements, m)
	}

	return movements, rows.Err()
}

func (r *EntryRepository) listFinanceRecords(ctx context.Context, filter usecase.EntryFilter) ([]source.FinanceRecord, error) {
	query := `
		SELECT id, tipo, valor, data_vencimento, data_pagamento, conta, categoria, descricao, criado_em
		FROM finance_records
		WHERE ($1 = '' OR conta = $1)
		  AND ($2 = '' OR categoria = $2)`

	rows, err := r.pool.Query(ctx, query, filter.AccountID, filter.Category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []source.FinanceRecord

	for rows.Next() {
		rec, err := scanFinanceRecord(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

func paginate(entries []*domain.Entry, limit, offset int) []*domain.Entry {
	if offset > 0 {
		if offset >= len(entries) {
			return nil
		}

		entries = entries[offset:]
	}

	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	return entries
}

func scanWalletMovement(row rowScanner) (source.WalletMovement, error) {
	var (
		m          source.WalletMovement
		valor      pgtype.Numeric
		vencimento pgtype.Timestamptz
		pagamento  pgtype.Timestamptz
		contaID    pgtype.Text
		transferID pgtype.Text
		criadoEm   pgtype.Timestamptz
	)

	err := row.Scan(&m.ID, &m.Tipo, &valor, &vencimento, &pagamento, &contaID, &m.Categoria, &m.Descricao, &transferID, &criadoEm)
	if err != nil {
		return source.WalletMovement{}, err
	}

	m.Valor = numericToDecimal(valor)
	m.Vencimento = vencimento.Time
	m.Pagamento = pgTimestamptzToTimePtr(pagamento)
	m.ContaID = contaID.String
	m.TransferID = transferID.String
	m.CriadoEm = criadoEm.Time

	return m, nil
}

func scanFinanceRecord(row rowScanner) (source.FinanceRecord, error) {
	var (
		rec        source.FinanceRecord
		valor      pgtype.Numeric
		vencimento pgtype.Timestamptz
		pagamento  pgtype.Timestamptz
		conta      pgtype.Text
		criadoEm   pgtype.Timestamptz
	)

	err := row.Scan(&rec.ID, &rec.Tipo, &valor, &vencimento, &pagamento, &conta, &rec.Categoria, &rec.Descricao, &criadoEm)
	if err != nil {
		return source.FinanceRecord{}, err
	}

	rec.Valor = numericToDecimal(valor)
	rec.DataVencimento = vencimento.Time
	rec.DataPagamento = pgTimestamptzToTimePtr(pagamento)
	rec.Conta = conta.String
	rec.CriadoEm = criadoEm.Time

	return rec, nil
}
