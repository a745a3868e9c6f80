package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/cashflow/internal/domain"
)

// pgErrUniqueViolation is the PostgreSQL error code for a unique constraint
// violation, raised when two writers race on the same date.
const pgErrUniqueViolation = "23505"

// ConsolidationRepository implements usecase.ConsolidationRepository.
// Concurrency control is optimistic: every row carries a version counter
// that Update compares and bumps in a single statement.
type ConsolidationRepository struct {
	pool *pgxpool.Pool
}

// NewConsolidationRepository creates a new ConsolidationRepository.
func NewConsolidationRepository(pool *pgxpool.Pool) *ConsolidationRepository {
	return &ConsolidationRepository{pool: pool}
}

const consolidationColumns = `id, date, total_credits, total_debits, balance, entry_count, version, created_at, updated_at`

// FindByDate retrieves the consolidation for a calendar date.
func (r *ConsolidationRepository) FindByDate(ctx context.Context, date time.Time) (*domain.DailyConsolidation, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+consolidationColumns+` FROM daily_consolidations WHERE date = $1`,
		dateToPgDate(date))

	c, err := scanConsolidation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConsolidationNotFound
		}

		return nil, err
	}

	return c, nil
}

// FindByRange retrieves existing consolidations in [start, end], ascending
// by date. Dates with no row are simply absent from the result.
func (r *ConsolidationRepository) FindByRange(ctx context.Context, start, end time.Time) ([]*domain.DailyConsolidation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+consolidationColumns+` FROM daily_consolidations
		 WHERE date >= $1 AND date <= $2
		 ORDER BY date ASC`,
		dateToPgDate(start), dateToPgDate(end))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var consolidations []*domain.DailyConsolidation
	for rows.Next() {
		c, err := scanConsolidation(rows)
		if err != nil {
			return nil, err
		}

		consolidations = append(consolidations, c)
	}

	return consolidations, rows.Err()
}

// Insert creates the row for a new date. Returns domain.ErrConflict when a
// concurrent insert for the same date won the race.
func (r *ConsolidationRepository) Insert(ctx context.Context, c *domain.DailyConsolidation) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO daily_consolidations
		 (id, date, total_credits, total_debits, balance, entry_count, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, 1, $7, $8)`,
		c.ID,
		dateToPgDate(c.Date),
		decimalToNumeric(c.TotalCredits),
		decimalToNumeric(c.TotalDebits),
		decimalToNumeric(c.Balance),
		c.EntryCount,
		timeToPgTimestamptz(c.CreatedAt),
		timePtrToPgTimestamptz(c.UpdatedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrConflict
		}

		return err
	}

	c.Version = 1

	return nil
}

// Update writes the totals back, guarded by the version read earlier.
// Returns domain.ErrConflict when the row changed since it was read.
func (r *ConsolidationRepository) Update(ctx context.Context, c *domain.DailyConsolidation) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE daily_consolidations
		 SET total_credits = $1, total_debits = $2, balance = $3,
		     entry_count = $4, version = version + 1, updated_at = $5
		 WHERE id = $6 AND version = $7`,
		decimalToNumeric(c.TotalCredits),
		decimalToNumeric(c.TotalDebits),
		decimalToNumeric(c.Balance),
		c.EntryCount,
		timePtrToPgTimestamptz(c.UpdatedAt),
		c.ID,
		c.Version,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}

	c.Version++

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConsolidation(row rowScanner) (*domain.DailyConsolidation, error) {
	var (
		c            domain.DailyConsolidation
		date         pgtype.Date
		totalCredits pgtype.Numeric
		totalDebits  pgtype.Numeric
		balance      pgtype.Numeric
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)

	err := row.Scan(&c.ID, &date, &totalCredits, &totalDebits, &balance,
		&c.EntryCount, &c.Version, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	c.Date = domain.NormalizeDate(date.Time)
	c.TotalCredits = numericToDecimal(totalCredits)
	c.TotalDebits = numericToDecimal(totalDebits)
	c.Balance = numericToDecimal(balance)
	c.CreatedAt = createdAt.Time
	if updatedAt.Valid {
		t := updatedAt.Time
		c.UpdatedAt = &t
	}

	return &c, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func timePtrToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}

	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func dateToPgDate(t time.Time) pgtype.Date {
	return pgtype.Date{Time: domain.NormalizeDate(t), Valid: true}
}
