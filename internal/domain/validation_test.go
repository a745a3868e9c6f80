package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name        string
		amount      decimal.Decimal
		expectError bool
	}{
		{"positive", decimal.NewFromInt(100), false},
		{"small fraction", decimal.RequireFromString("0.01"), false},
		{"zero", decimal.Zero, true},
		{"negative", decimal.NewFromInt(-1), true},
		{"above cap", decimal.RequireFromString(MaxEntryAmount).Add(decimal.NewFromInt(1)), true},
		{"at cap", decimal.RequireFromString(MaxEntryAmount), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expectError bool
	}{
		{"valid", "groceries", false},
		{"minimum length", "abc", false},
		{"too short", "ab", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("x", MaxDescriptionLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDescription(tt.description)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePeriod(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	if err := ValidatePeriod(day, day); err != nil {
		t.Errorf("single-day period should be valid: %v", err)
	}

	if err := ValidatePeriod(day, day.AddDate(0, 0, 7)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidatePeriod(day, day.AddDate(0, 0, -1)); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}

	// Same calendar day in different zones is still a valid period
	loc := time.FixedZone("UTC-3", -3*60*60)
	if err := ValidatePeriod(day, time.Date(2025, 1, 15, 22, 0, 0, 0, loc)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, 50, 0},
		{"negative values", -5, -10, 50, 0},
		{"capped limit", 5000, 10, 1000, 10},
		{"passthrough", 25, 100, 25, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := ValidatePagination(tt.limit, tt.offset)

			if limit != tt.wantLimit {
				t.Errorf("expected limit %d, got %d", tt.wantLimit, limit)
			}
			if offset != tt.wantOffset {
				t.Errorf("expected offset %d, got %d", tt.wantOffset, offset)
			}
		})
	}
}
