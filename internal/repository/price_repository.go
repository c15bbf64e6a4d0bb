package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/safespace/risk-dashboard/internal/model"
)

// PriceRepository provides data access methods for the price table.
// It backs the price service when the dataset lives in SQLite instead of a CSV file.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// GetPrices retrieves every stored observation ordered by ticker and date.
// Returns an empty series if the table is empty.
func (r *PriceRepository) GetPrices(ctx context.Context) (model.PriceSeries, error) {
	query := `
        SELECT date, ticker, close_price
        FROM price
        ORDER BY ticker ASC, date ASC
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query price table: %w", err)
	}
	defer rows.Close()

	series := model.PriceSeries{}

	for rows.Next() {
		var dateStr string
		var p model.PricePoint

		if err := rows.Scan(&dateStr, &p.Ticker, &p.ClosePrice); err != nil {
			return nil, fmt.Errorf("failed to scan price table results: %w", err)
		}

		p.Date, err = parseStoredDate(dateStr)
		if err != nil {
			return nil, err
		}

		series = append(series, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price table: %w", err)
	}

	return series, nil
}

// UpsertPrices stores the observations in a single transaction.
// An existing row for the same ticker and date has its close price replaced.
// Returns the number of rows written.
func (r *PriceRepository) UpsertPrices(ctx context.Context, series model.PriceSeries) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		//nolint:errcheck // Rollback after commit is a no-op
		tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO price (id, date, ticker, close_price)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(ticker, date) DO UPDATE SET close_price = excluded.close_price
    `)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare price insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range series {
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), p.Date.Format("2006-01-02"), p.Ticker, p.ClosePrice); err != nil {
			return 0, fmt.Errorf("failed to insert price for %s on %s: %w", p.Ticker, p.Date.Format("2006-01-02"), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit prices: %w", err)
	}

	return len(series), nil
}

// CountPrices returns the number of stored observations.
func (r *PriceRepository) CountPrices(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM price`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count prices: %w", err)
	}
	return count, nil
}
