package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MinDescriptionLength = 3
	MaxDescriptionLength = 200
	MaxEntryAmount       = "1000000000000" // 1 trillion
)

// ValidateAmount validates an entry amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxEntryAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxEntryAmount)
	}

	return nil
}

// ValidateDescription validates an entry description.
func ValidateDescription(description string) error {
	description = strings.TrimSpace(description)

	if len(description) < MinDescriptionLength {
		return fmt.Errorf("description must have at least %d characters", MinDescriptionLength)
	}

	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("description must have at most %d characters", MaxDescriptionLength)
	}

	return nil
}

// ValidatePeriod validates an inclusive date range.
func ValidatePeriod(start, end time.Time) error {
	if NormalizeDate(start).After(NormalizeDate(end)) {
		return ErrInvalidPeriod
	}

	return nil
}

// ValidatePagination normalizes pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
