package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/usecase"
)

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Note        string          `json:"note,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		Date:        e.Date.Format(DateLayout),
		Kind:        e.Kind.String(),
		Amount:      e.Amount,
		Description: e.Description,
		Note:        e.Note,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ConsolidationResponse represents a daily consolidation in API responses.
type ConsolidationResponse struct {
	ID           string          `json:"id,omitempty"`
	Date         string          `json:"date"`
	TotalCredits decimal.Decimal `json:"total_credits"`
	TotalDebits  decimal.Decimal `json:"total_debits"`
	Balance      decimal.Decimal `json:"balance"`
	EntryCount   int             `json:"entry_count"`
	CreatedAt    time.Time       `json:"created_at,omitzero"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

// ConsolidationFromDomain converts a domain consolidation to a response.
// Gap-filled placeholder days carry no identifier or timestamps.
func ConsolidationFromDomain(c *domain.DailyConsolidation) *ConsolidationResponse {
	return &ConsolidationResponse{
		ID:           c.ID,
		Date:         c.Date.Format(DateLayout),
		TotalCredits: c.TotalCredits,
		TotalDebits:  c.TotalDebits,
		Balance:      c.Balance,
		EntryCount:   c.EntryCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ConsolidationsFromDomain converts domain consolidations to responses.
func ConsolidationsFromDomain(consolidations []*domain.DailyConsolidation) []*ConsolidationResponse {
	result := make([]*ConsolidationResponse, len(consolidations))
	for i, c := range consolidations {
		result[i] = ConsolidationFromDomain(c)
	}
	return result
}

// StatisticsResponse represents period statistics in API responses.
type StatisticsResponse struct {
	Start               string          `json:"start"`
	End                 string          `json:"end"`
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

// StatisticsFromUseCase converts use case statistics to a response.
func StatisticsFromUseCase(s *usecase.Statistics) *StatisticsResponse {
	return &StatisticsResponse{
		Start:               s.Start.Format(DateLayout),
		End:                 s.End.Format(DateLayout),
		TotalDays:           s.TotalDays,
		DaysWithMovement:    s.DaysWithMovement,
		DaysWithoutMovement: s.DaysWithoutMovement,
		TotalCredits:        s.TotalCredits,
		TotalDebits:         s.TotalDebits,
		PeriodBalance:       s.PeriodBalance,
		TotalEntries:        s.TotalEntries,
		AverageDailyBalance: s.AverageDailyBalance,
		HighestBalance:      s.HighestBalance,
		LowestBalance:       s.LowestBalance,
		PositiveDays:        s.PositiveDays,
		NegativeDays:        s.NegativeDays,
		ZeroDays:            s.ZeroDays,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
