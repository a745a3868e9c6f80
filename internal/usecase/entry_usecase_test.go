package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/infrastructure/metrics"
	"github.com/iho/cashflow/internal/usecase"
	"github.com/iho/cashflow/internal/usecase/mocks"
)

func TestEntryUseCase_CreateEntry(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	publisher := mocks.NewMockEventPublisher()
	uc := usecase.NewEntryUseCase(entryRepo, publisher, nil, zerolog.Nop())

	entry, err := uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Kind:        domain.EntryKindCredit,
		Amount:      decimal.NewFromInt(150),
		Description: "consulting fee",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.ID == "" {
		t.Error("expected a generated ID")
	}

	events := publisher.Published()
	if len(events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(events))
	}
	if events[0].EntryID != entry.ID {
		t.Errorf("event carries wrong entry id: %s", events[0].EntryID)
	}
	if events[0].Kind != int(domain.EntryKindCredit) {
		t.Errorf("event carries wrong kind: %d", events[0].Kind)
	}
	if !events[0].Amount.Equal(entry.Amount) {
		t.Errorf("event carries wrong amount: %s", events[0].Amount)
	}
}

func TestEntryUseCase_CreateEntry_CountsCreatedEntries(t *testing.T) {
	registry := prometheus.NewRegistry()

	// Replace global default registry to allow test inspection.
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := metrics.New()
	uc := usecase.NewEntryUseCase(mocks.NewMockEntryRepository(), mocks.NewMockEventPublisher(), m, zerolog.Nop())

	if _, err := uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Kind:        domain.EntryKindDebit,
		Amount:      decimal.NewFromInt(42),
		Description: "office supplies",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	var created, observed bool
	for _, mf := range families {
		switch mf.GetName() {
		case "cashflow_entries_created_total":
			if v := mf.GetMetric()[0].GetCounter().GetValue(); v != 1 {
				t.Fatalf("expected 1 created entry counted, got %v", v)
			}
			created = true
		case "cashflow_entry_amount":
			if n := mf.GetMetric()[0].GetHistogram().GetSampleCount(); n != 1 {
				t.Fatalf("expected 1 amount observation, got %d", n)
			}
			observed = true
		}
	}

	if !created || !observed {
		t.Fatalf("expected entry metrics to be recorded, got created=%v observed=%v", created, observed)
	}
}

func TestEntryUseCase_CreateEntry_PublishFailureDoesNotFail(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	publisher := mocks.NewMockEventPublisher()
	publisher.PublishEntryCreatedFunc = func(ctx context.Context, event domain.EntryCreatedEvent) error {
		return errors.New("broker unavailable")
	}

	uc := usecase.NewEntryUseCase(entryRepo, publisher, nil, zerolog.Nop())

	entry, err := uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Kind:        domain.EntryKindDebit,
		Amount:      decimal.NewFromInt(20),
		Description: "office supplies",
	})
	if err != nil {
		t.Fatalf("publish failure must not fail the request: %v", err)
	}

	// The entry is durable regardless
	if _, err := uc.GetEntry(context.Background(), entry.ID); err != nil {
		t.Fatalf("entry not persisted: %v", err)
	}
}

func TestEntryUseCase_CreateEntry_ValidationFailure(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	publisher := mocks.NewMockEventPublisher()
	uc := usecase.NewEntryUseCase(entryRepo, publisher, nil, zerolog.Nop())

	_, err := uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Kind:        domain.EntryKindCredit,
		Amount:      decimal.NewFromInt(-5),
		Description: "bad amount",
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	if len(publisher.Published()) != 0 {
		t.Error("rejected entry must not publish an event")
	}
}

func TestEntryUseCase_UpdateEntry(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	publisher := mocks.NewMockEventPublisher()
	uc := usecase.NewEntryUseCase(entryRepo, publisher, nil, zerolog.Nop())
	ctx := context.Background()

	entry, err := uc.CreateEntry(ctx, usecase.CreateEntryInput{
		Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Kind:        domain.EntryKindCredit,
		Amount:      decimal.NewFromInt(150),
		Description: "consulting fee",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := uc.UpdateEntry(ctx, usecase.UpdateEntryInput{
		ID:          entry.ID,
		Date:        entry.Date,
		Kind:        domain.EntryKindDebit,
		Amount:      decimal.NewFromInt(75),
		Description: "refund issued",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Kind != domain.EntryKindDebit || !updated.Amount.Equal(decimal.NewFromInt(75)) {
		t.Errorf("update not applied: %+v", updated)
	}
}

func TestEntryUseCase_UpdateEntry_NotFound(t *testing.T) {
	uc := usecase.NewEntryUseCase(mocks.NewMockEntryRepository(), mocks.NewMockEventPublisher(), nil, zerolog.Nop())

	_, err := uc.UpdateEntry(context.Background(), usecase.UpdateEntryInput{
		ID:          "missing",
		Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Kind:        domain.EntryKindCredit,
		Amount:      decimal.NewFromInt(10),
		Description: "whatever",
	})
	if !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestEntryUseCase_DeleteEntry(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo, mocks.NewMockEventPublisher(), nil, zerolog.Nop())
	ctx := context.Background()

	entry, err := uc.CreateEntry(ctx, usecase.CreateEntryInput{
		Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Kind:        domain.EntryKindCredit,
		Amount:      decimal.NewFromInt(150),
		Description: "consulting fee",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := uc.DeleteEntry(ctx, entry.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if err := uc.DeleteEntry(ctx, entry.ID); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestEntryUseCase_ListEntries(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewEntryUseCase(entryRepo, mocks.NewMockEventPublisher(), nil, zerolog.Nop())
	ctx := context.Background()

	for _, day := range []int{10, 12, 20} {
		if _, err := uc.CreateEntry(ctx, usecase.CreateEntryInput{
			Date:        time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC),
			Kind:        domain.EntryKindCredit,
			Amount:      decimal.NewFromInt(10),
			Description: "test entry",
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	entries, err := uc.ListEntries(ctx, usecase.ListEntriesInput{
		Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	_, err = uc.ListEntries(ctx, usecase.ListEntriesInput{
		Start: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestEntryUseCase_CreateEntry_PublishesAfterPersist(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entryRepo := mocks.NewMockEntryRepository()
	publisher := mocks.NewMockEventPublisherGM(ctrl)

	publisher.EXPECT().
		PublishEntryCreated(gomock.Any(), gomock.AssignableToTypeOf(domain.EntryCreatedEvent{})).
		DoAndReturn(func(_ context.Context, event domain.EntryCreatedEvent) error {
			// The entry must already be durable when the event goes out
			if _, err := entryRepo.GetByID(context.Background(), event.EntryID); err != nil {
				t.Errorf("entry not persisted before publish: %v", err)
			}
			return nil
		})

	uc := usecase.NewEntryUseCase(entryRepo, publisher, nil, zerolog.Nop())

	if _, err := uc.CreateEntry(context.Background(), usecase.CreateEntryInput{
		Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Kind:        domain.EntryKindCredit,
		Amount:      decimal.NewFromInt(150),
		Description: "consulting fee",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
