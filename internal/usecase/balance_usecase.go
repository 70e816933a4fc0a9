package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gestorhub/caixa/internal/domain"
)

// BalanceUseCase computes account balances and previews. The math itself
// lives in domain; this layer fetches the collections and caches summaries.
type BalanceUseCase struct {
	accountRepo AccountRepository
	entries     EntryStore
	cache       Cache
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewBalanceUseCase creates a new BalanceUseCase. Cache may be nil.
func NewBalanceUseCase(accountRepo AccountRepository, entries EntryStore, cache Cache, cacheTTL time.Duration, logger zerolog.Logger) *BalanceUseCase {
	return &BalanceUseCase{
		accountRepo: accountRepo,
		entries:     entries,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// AccountBalance returns the balance of a single account, settled-only or
// full, recomputed from the current entry collection.
func (uc *BalanceUseCase) AccountBalance(ctx context.Context, accountID string, settledOnly bool) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	entries, err := uc.entries.List(ctx, EntryFilter{AccountID: accountID})
	if err != nil {
		return decimal.Zero, err
	}

	return domain.ComputeBalance(account, entries, settledOnly), nil
}

// AccountSummary returns the display summary for one account.
func (uc *BalanceUseCase) AccountSummary(ctx context.Context, accountID string) (*domain.BalanceSummary, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entries.List(ctx, EntryFilter{AccountID: accountID})
	if err != nil {
		return nil, err
	}

	summary := domain.Summarize(account, entries)

	return &summary, nil
}

const summariesCacheKey = "balance:summaries"

// ListSummaries returns the display summary for every account. Results are
// cached briefly; cache failures fall through to recomputation.
func (uc *BalanceUseCase) ListSummaries(ctx context.Context) ([]domain.BalanceSummary, error) {
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, summariesCacheKey); err == nil && raw != nil {
			var cached []domain.BalanceSummary
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	accounts, err := uc.accountRepo.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entries.List(ctx, EntryFilter{})
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.BalanceSummary, 0, len(accounts))
	for _, account := range accounts {
		summaries = append(summaries, domain.Summarize(account, entries))
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(summaries); err == nil {
			if err := uc.cache.Set(ctx, summariesCacheKey, raw, uc.cacheTTL); err != nil {
				uc.logger.Warn().Err(err).Msg("failed to cache balance summaries")
			}
		}
	}

	return summaries, nil
}

// InvalidateSummaries drops the cached summaries after a write.
func (uc *BalanceUseCase) InvalidateSummaries(ctx context.Context) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.Delete(ctx, summariesCacheKey); err != nil {
		uc.logger.Warn().Err(err).Msg("failed to invalidate balance summary cache")
	}
}

// PreviewInput is a draft entry to project against a current balance.
type PreviewInput struct {
	AccountID   string
	Kind        domain.EntryKind
	Amount      decimal.Decimal
	Settled     bool
	SettledOnly bool
}

// Preview projects the account balance after the draft without persisting it.
func (uc *BalanceUseCase) Preview(ctx context.Context, input PreviewInput) (decimal.Decimal, error) {
	current, err := uc.AccountBalance(ctx, input.AccountID, input.SettledOnly)
	if err != nil {
		return decimal.Zero, err
	}

	draft := &domain.Entry{Kind: input.Kind, Amount: input.Amount}
	if input.Settled {
		now := time.Now().UTC()
		draft.SettledDate = &now
	}

	return domain.PreviewBalance(current, draft, input.SettledOnly), nil
}
