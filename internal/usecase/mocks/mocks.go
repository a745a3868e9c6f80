package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iho/cashflow/internal/domain"
)

// MockConsolidationRepository is a mock implementation of
// ConsolidationRepository. Its default behavior is an in-memory store with
// real optimistic-concurrency semantics: Insert fails on a duplicate date and
// Update fails when the stored version moved since the copy was read.
type MockConsolidationRepository struct {
	mu   sync.Mutex
	rows map[time.Time]*domain.DailyConsolidation

	FindByDateFunc  func(ctx context.Context, date time.Time) (*domain.DailyConsolidation, error)
	FindByRangeFunc func(ctx context.Context, start, end time.Time) ([]*domain.DailyConsolidation, error)
	InsertFunc      func(ctx context.Context, c *domain.DailyConsolidation) error
	UpdateFunc      func(ctx context.Context, c *domain.DailyConsolidation) error
}

func NewMockConsolidationRepository() *MockConsolidationRepository {
	return &MockConsolidationRepository{
		rows: make(map[time.Time]*domain.DailyConsolidation),
	}
}

func (m *MockConsolidationRepository) FindByDate(ctx context.Context, date time.Time) (*domain.DailyConsolidation, error) {
	if m.FindByDateFunc != nil {
		return m.FindByDateFunc(ctx, date)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[domain.NormalizeDate(date)]
	if !ok {
		return nil, domain.ErrConsolidationNotFound
	}
	clone := *row
	return &clone, nil
}

func (m *MockConsolidationRepository) FindByRange(ctx context.Context, start, end time.Time) ([]*domain.DailyConsolidation, error) {
	if m.FindByRangeFunc != nil {
		return m.FindByRangeFunc(ctx, start, end)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.DailyConsolidation
	for date, row := range m.rows {
		if date.Before(domain.NormalizeDate(start)) || date.After(domain.NormalizeDate(end)) {
			continue
		}
		clone := *row
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *MockConsolidationRepository) Insert(ctx context.Context, c *domain.DailyConsolidation) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, c)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	date := domain.NormalizeDate(c.Date)
	if _, exists := m.rows[date]; exists {
		return domain.ErrConflict
	}
	clone := *c
	clone.Version = 1
	m.rows[date] = &clone
	c.Version = 1
	return nil
}

func (m *MockConsolidationRepository) Update(ctx context.Context, c *domain.DailyConsolidation) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	date := domain.NormalizeDate(c.Date)
	stored, ok := m.rows[date]
	if !ok {
		return domain.ErrConsolidationNotFound
	}
	if stored.Version != c.Version {
		return domain.ErrConflict
	}
	clone := *c
	clone.Version = c.Version + 1
	m.rows[date] = &clone
	c.Version = clone.Version
	return nil
}

// Stored returns a copy of the row held for date, if any.
func (m *MockConsolidationRepository) Stored(date time.Time) (*domain.DailyConsolidation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[domain.NormalizeDate(date)]
	if !ok {
		return nil, false
	}
	clone := *row
	return &clone, true
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.Mutex
	entries map[string]*domain.Entry

	CreateFunc       func(ctx context.Context, entry *domain.Entry) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Entry, error)
	ListByPeriodFunc func(ctx context.Context, start, end time.Time, limit, offset int) ([]*domain.Entry, error)
	UpdateFunc       func(ctx context.Context, entry *domain.Entry) error
	DeleteFunc       func(ctx context.Context, id string) error
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.Entry),
	}
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) ListByPeriod(ctx context.Context, start, end time.Time, limit, offset int) ([]*domain.Entry, error) {
	if m.ListByPeriodFunc != nil {
		return m.ListByPeriodFunc(ctx, start, end, limit, offset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Entry
	for _, e := range m.entries {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *MockEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockEntryRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(m.entries, id)
	return nil
}

// MockEventPublisher is a mock implementation of EventPublisher.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []domain.EntryCreatedEvent

	PublishEntryCreatedFunc func(ctx context.Context, event domain.EntryCreatedEvent) error
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) PublishEntryCreated(ctx context.Context, event domain.EntryCreatedEvent) error {
	if m.PublishEntryCreatedFunc != nil {
		return m.PublishEntryCreatedFunc(ctx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Published returns the events recorded so far.
func (m *MockEventPublisher) Published() []domain.EntryCreatedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.EntryCreatedEvent(nil), m.events...)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu     sync.Mutex
	values map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
