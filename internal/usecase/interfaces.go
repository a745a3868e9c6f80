package usecase

import (
	"context"
	"time"

	"github.com/iho/cashflow/internal/domain"
)

// ConsolidationRepository defines data access for daily consolidations.
//
// Insert returns domain.ErrConflict when another writer created the row for
// the same date first; Update returns domain.ErrConflict when the row
// changed since it was read (version check).
type ConsolidationRepository interface {
	FindByDate(ctx context.Context, date time.Time) (*domain.DailyConsolidation, error)
	FindByRange(ctx context.Context, start, end time.Time) ([]*domain.DailyConsolidation, error)
	Insert(ctx context.Context, c *domain.DailyConsolidation) error
	Update(ctx context.Context, c *domain.DailyConsolidation) error
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	ListByPeriod(ctx context.Context, start, end time.Time, limit, offset int) ([]*domain.Entry, error)
	Update(ctx context.Context, entry *domain.Entry) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher publishes domain events to the message broker.
type EventPublisher interface {
	PublishEntryCreated(ctx context.Context, event domain.EntryCreatedEvent) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
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
