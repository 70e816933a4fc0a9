package usecase

import (
	"context"
	"time"

	"github.com/gestorhub/caixa/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// EntryStore defines the record store the engine writes through. The store
// offers independent single-record inserts and deletes only; there is no
// multi-record transaction, which is what forces the compensation protocol in
// TransferUseCase.
type EntryStore interface {
	Insert(ctx context.Context, entry *domain.Entry) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	Update(ctx context.Context, entry *domain.Entry) error
	// List returns already-normalized entries from every source table.
	List(ctx context.Context, filter EntryFilter) ([]*domain.Entry, error)
}

// EntryFilter narrows an entry listing. Zero value lists everything.
type EntryFilter struct {
	AccountID   string
	SettledOnly bool
	Category    string
	Limit       int
	Offset      int
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// UTCClock is the production Clock.
type UTCClock struct{}

// Now returns the current UTC time.
func (UTCClock) Now() time.Time {
	return time.Now().UTC()
}
