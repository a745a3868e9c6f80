package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
)

// Statistics aggregates a dense daily series over an inclusive period.
type Statistics struct {
	Start               time.Time       `json:"start"`
	End                 time.Time       `json:"end"`
	TotalDays           int             `json:"total_days"`
	DaysWithMovement    int             `json:"days_with_movement"`
	DaysWithoutMovement int             `json:"days_without_movement"`
	TotalCredits        decimal.Decimal `json:"total_credits"`
	TotalDebits         decimal.Decimal `json:"total_debits"`
	PeriodBalance       decimal.Decimal `json:"period_balance"`
	TotalEntries        int             `json:"total_entries"`
	AverageDailyBalance decimal.Decimal `json:"average_daily_balance"`
	HighestBalance      decimal.Decimal `json:"highest_balance"`
	LowestBalance       decimal.Decimal `json:"lowest_balance"`
	PositiveDays        int             `json:"positive_days"`
	NegativeDays        int             `json:"negative_days"`
	ZeroDays            int             `json:"zero_days"`
}

// ReportUseCase serves consolidation read queries: single date, dense
// gap-filled ranges and derived statistics.
type ReportUseCase struct {
	repo     ConsolidationRepository
	cache    Cache
	cacheTTL time.Duration
}

// NewReportUseCase creates a new ReportUseCase. cache may be nil.
func NewReportUseCase(repo ConsolidationRepository, cache Cache, cacheTTL time.Duration) *ReportUseCase {
	return &ReportUseCase{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// GetByDate returns the consolidation for a single date, or
// domain.ErrConsolidationNotFound when no entry was ever recorded for it.
func (uc *ReportUseCase) GetByDate(ctx context.Context, date time.Time) (*domain.DailyConsolidation, error) {
	return uc.repo.FindByDate(ctx, domain.NormalizeDate(date))
}

// GetByRange returns one consolidation per calendar day in [start, end],
// ordered ascending. Days without movement are filled with zero-valued
// placeholders carrying no identifier.
func (uc *ReportUseCase) GetByRange(ctx context.Context, start, end time.Time) ([]*domain.DailyConsolidation, error) {
	if err := domain.ValidatePeriod(start, end); err != nil {
		return nil, err
	}

	start = domain.NormalizeDate(start)
	end = domain.NormalizeDate(end)

	existing, err := uc.repo.FindByRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byDate := make(map[time.Time]*domain.DailyConsolidation, len(existing))
	for _, c := range existing {
		byDate[domain.NormalizeDate(c.Date)] = c
	}

	var series []*domain.DailyConsolidation
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if c, ok := byDate[day]; ok {
			series = append(series, c)
			continue
		}

		series = append(series, &domain.DailyConsolidation{
			Date:         day,
			TotalCredits: decimal.Zero,
			TotalDebits:  decimal.Zero,
			Balance:      decimal.Zero,
		})
	}

	return series, nil
}

// GetStatistics computes statistics over the dense series for [start, end].
// Results are pure functions of the stored consolidations, so they are
// cached briefly when a cache is configured.
func (uc *ReportUseCase) GetStatistics(ctx context.Context, start, end time.Time) (*Statistics, error) {
	if err := domain.ValidatePeriod(start, end); err != nil {
		return nil, err
	}

	start = domain.NormalizeDate(start)
	end = domain.NormalizeDate(end)

	key := statisticsCacheKey(start, end)
	if cached, ok := uc.cachedStatistics(ctx, key); ok {
		return cached, nil
	}

	series, err := uc.GetByRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	stats := computeStatistics(start, end, series)
	uc.storeStatistics(ctx, key, stats)

	return stats, nil
}

func computeStatistics(start, end time.Time, series []*domain.DailyConsolidation) *Statistics {
	stats := &Statistics{
		Start:               start,
		End:                 end,
		TotalDays:           len(series),
		TotalCredits:        decimal.Zero,
		TotalDebits:         decimal.Zero,
		PeriodBalance:       decimal.Zero,
		AverageDailyBalance: decimal.Zero,
		HighestBalance:      decimal.Zero,
		LowestBalance:       decimal.Zero,
	}

	for i, day := range series {
		if day.ID != "" {
			stats.DaysWithMovement++
		}

		stats.TotalCredits = stats.TotalCredits.Add(day.TotalCredits)
		stats.TotalDebits = stats.TotalDebits.Add(day.TotalDebits)
		stats.PeriodBalance = stats.PeriodBalance.Add(day.Balance)
		stats.TotalEntries += day.EntryCount

		if i == 0 || day.Balance.GreaterThan(stats.HighestBalance) {
			stats.HighestBalance = day.Balance
		}
		if i == 0 || day.Balance.LessThan(stats.LowestBalance) {
			stats.LowestBalance = day.Balance
		}

		switch {
		case day.IsPositive():
			stats.PositiveDays++
		case day.IsNegative():
			stats.NegativeDays++
		default:
			stats.ZeroDays++
		}
	}

	stats.DaysWithoutMovement = stats.TotalDays - stats.DaysWithMovement
	if stats.TotalDays > 0 {
		stats.AverageDailyBalance = stats.PeriodBalance.Div(decimal.NewFromInt(int64(stats.TotalDays)))
	}

	return stats
}

func statisticsCacheKey(start, end time.Time) string {
	return fmt.Sprintf("stats:%s:%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func (uc *ReportUseCase) cachedStatistics(ctx context.Context, key string) (*Statistics, bool) {
	if uc.cache == nil {
		return nil, false
	}

	raw, err := uc.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return nil, false
	}

	var stats Statistics
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, false
	}

	return &stats, true
}

func (uc *ReportUseCase) storeStatistics(ctx context.Context, key string, stats *Statistics) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}

	// Cache errors only cost us the shortcut.
	_ = uc.cache.Set(ctx, key, string(raw), uc.cacheTTL)
}
