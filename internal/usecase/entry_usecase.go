package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/infrastructure/metrics"
)

// EntryUseCase handles ledger entry authoring.
type EntryUseCase struct {
	entryRepo EntryRepository
	publisher EventPublisher
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewEntryUseCase creates a new EntryUseCase. metrics may be nil.
func NewEntryUseCase(entryRepo EntryRepository, publisher EventPublisher, m *metrics.Metrics, logger zerolog.Logger) *EntryUseCase {
	return &EntryUseCase{
		entryRepo: entryRepo,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// CreateEntryInput represents input for recording an entry.
type CreateEntryInput struct {
	Date        time.Time
	Kind        domain.EntryKind
	Amount      decimal.Decimal
	Description string
	Note        string
}

// CreateEntry records a new ledger entry and notifies the consolidation
// service. A publish failure does not fail the request: the entry is already
// durable and the broker redelivery path catches up on the next event.
func (uc *EntryUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.Entry, error) {
	entry, err := domain.NewEntry(input.Date, input.Kind, input.Amount, input.Description, input.Note)
	if err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.Inc()
		amount, _ := entry.Amount.Float64()
		uc.metrics.EntryAmount.Observe(amount)
	}

	if err := uc.publisher.PublishEntryCreated(ctx, domain.NewEntryCreatedEvent(entry)); err != nil {
		uc.logger.Error().
			Err(err).
			Str("entry_id", entry.ID).
			Msg("failed to publish entry created event")
	}

	return entry, nil
}

// UpdateEntryInput represents input for updating an entry.
type UpdateEntryInput struct {
	ID          string
	Date        time.Time
	Kind        domain.EntryKind
	Amount      decimal.Decimal
	Description string
	Note        string
}

// UpdateEntry replaces the attributes of an existing entry.
func (uc *EntryUseCase) UpdateEntry(ctx context.Context, input UpdateEntryInput) (*domain.Entry, error) {
	entry, err := uc.entryRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := entry.Update(input.Date, input.Kind, input.Amount, input.Description, input.Note); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// GetEntry retrieves an entry by ID.
func (uc *EntryUseCase) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// DeleteEntry removes an entry.
func (uc *EntryUseCase) DeleteEntry(ctx context.Context, id string) error {
	if _, err := uc.entryRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return uc.entryRepo.Delete(ctx, id)
}

// ListEntriesInput represents input for listing entries over a period.
type ListEntriesInput struct {
	Start  time.Time
	End    time.Time
	Limit  int
	Offset int
}

// ListEntries lists entries within an inclusive period.
func (uc *EntryUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.Entry, error) {
	if err := domain.ValidatePeriod(input.Start, input.End); err != nil {
		return nil, err
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.entryRepo.ListByPeriod(ctx,
		domain.NormalizeDate(input.Start), domain.NormalizeDate(input.End), limit, offset)
}
