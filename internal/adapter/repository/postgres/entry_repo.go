package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/cashflow/internal/domain"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const entryColumns = `id, date, kind, amount, description, note, created_at, updated_at`

// Create persists a new entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO entries (id, date, kind, amount, description, note, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID,
		dateToPgDate(entry.Date),
		int(entry.Kind),
		decimalToNumeric(entry.Amount),
		entry.Description,
		entry.Note,
		timeToPgTimestamptz(entry.CreatedAt),
		timePtrToPgTimestamptz(entry.UpdatedAt),
	)

	return err
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE id = $1`, id)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return entry, nil
}

// ListByPeriod lists entries with dates in [start, end], ascending by date.
func (r *EntryRepository) ListByPeriod(ctx context.Context, start, end time.Time, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM entries
		 WHERE date >= $1 AND date <= $2
		 ORDER BY date ASC, created_at ASC
		 LIMIT $3 OFFSET $4`,
		dateToPgDate(start), dateToPgDate(end), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Update writes back a modified entry.
func (r *EntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE entries
		 SET date = $1, kind = $2, amount = $3, description = $4, note = $5, updated_at = $6
		 WHERE id = $7`,
		dateToPgDate(entry.Date),
		int(entry.Kind),
		decimalToNumeric(entry.Amount),
		entry.Description,
		entry.Note,
		timePtrToPgTimestamptz(entry.UpdatedAt),
		entry.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// Delete removes an entry.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

func scanEntry(row rowScanner) (*domain.Entry, error) {
	var (
		entry     domain.Entry
		date      pgtype.Date
		kind      int
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&entry.ID, &date, &kind, &amount,
		&entry.Description, &entry.Note, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	entry.Date = domain.NormalizeDate(date.Time)
	entry.Kind = domain.EntryKind(kind)
	entry.Amount = numericToDecimal(amount)
	entry.CreatedAt = createdAt.Time
	if updatedAt.Valid {
		t := updatedAt.Time
		entry.UpdatedAt = &t
	}

	return &entry, nil
}
