package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/gestorhub/caixa/internal/domain"
	"github.com/gestorhub/caixa/internal/infrastructure/metrics"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
	clock       Clock
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. Metrics may be nil.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator, clock Clock, m *metrics.Metrics) *AccountUseCase {
	if clock == nil {
		clock = UTCClock{}
	}

	return &AccountUseCase{accountRepo: accountRepo, idGen: idGen, clock: clock, metrics: m}
}

// CreateAccountInput represents input for creating an account. The initial
// balance may be any sign; it acts as the credit-equivalent base of every
// balance computation.
type CreateAccountInput struct {
	Name           string
	InitialBalance decimal.Decimal
}

// CreateAccount creates a new account.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	account := &domain.Account{
		ID:             uc.idGen.Generate(),
		Name:           input.Name,
		InitialBalance: input.InitialBalance,
		CreatedAt:      uc.clock.Now(),
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}

	if limit > 100 {
		limit = 100
	}

	return uc.accountRepo.List(ctx, limit, offset)
}
