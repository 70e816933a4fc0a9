package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestorhub/caixa/internal/domain"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool, retrier *Retrier) *AccountRepository {
	return &AccountRepository{pool: pool, retrier: retrier}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (id, name, initial_balance, created_at)
		VALUES ($1, $2, $3, $4)`,
		account.ID,
		account.Name,
		decimalToNumeric(account.InitialBalance),
		timeToPgTimestamptz(account.CreatedAt),
	)

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var account *domain.Account

	err := r.retrier.Retry(ctx, func() error {
		row := r.pool.QueryRow(ctx, `
			SELECT id, name, initial_balance, created_at
			FROM accounts
			WHERE id = $1`,
			id,
		)

		a, err := scanAccount(row)
		if err != nil {
			return err
		}

		account = a

		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return account, nil
}

// List lists accounts ordered by creation time. A non-positive limit lists
// every account.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	query := `
		SELECT id, name, initial_balance, created_at
		FROM accounts
		ORDER BY created_at, id`

	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	var accounts []*domain.Account

	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		accounts = accounts[:0]

		for rows.Next() {
			a, err := scanAccount(rows)
			if err != nil {
				return err
			}

			accounts = append(accounts, a)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var (
		a       domain.Account
		balance pgtype.Numeric
		created pgtype.Timestamptz
	)

	if err := row.Scan(&a.ID, &a.Name, &balance, &created); err != nil {
		return nil, err
	}

	a.InitialBalance = numericToDecimal(balance)
	a.CreatedAt = created.Time

	return &a, nil
}
