package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/repository"
)

// PriceSeriesBuilder provides a fluent interface for creating test price series.
//
// Example usage:
//
//	// Three monthly closes starting 2024-01-01
//	series := testutil.NewPriceSeries("AAPL").WithPrices(100, 110, 121).Series()
//
//	// Stored in the test database
//	series := testutil.NewPriceSeries("MSFT").
//	    WithStart(testutil.Date(2020, time.January, 1)).
//	    Daily().
//	    WithPrices(50, 45).
//	    Build(t, db)
type PriceSeriesBuilder struct {
	Ticker string
	Start  time.Time
	Prices []float64
	daily  bool
}

// NewPriceSeries creates a PriceSeriesBuilder with sensible defaults.
func NewPriceSeries(ticker string) *PriceSeriesBuilder {
	return &PriceSeriesBuilder{
		Ticker: ticker,
		Start:  Date(2024, time.January, 1),
		Prices: []float64{100, 105, 110},
	}
}

// WithStart sets the date of the first observation.
func (b *PriceSeriesBuilder) WithStart(start time.Time) *PriceSeriesBuilder {
	b.Start = start
	return b
}

// WithPrices sets the closing prices in date order.
func (b *PriceSeriesBuilder) WithPrices(prices ...float64) *PriceSeriesBuilder {
	b.Prices = prices
	return b
}

// Daily spaces observations one day apart instead of one month.
func (b *PriceSeriesBuilder) Daily() *PriceSeriesBuilder {
	b.daily = true
	return b
}

// Series returns the observations without storing them.
func (b *PriceSeriesBuilder) Series() model.PriceSeries {
	series := make(model.PriceSeries, len(b.Prices))
	for i, p := range b.Prices {
		date := b.Start.AddDate(0, i, 0)
		if b.daily {
			date = b.Start.AddDate(0, 0, i)
		}
		series[i] = model.PricePoint{Date: date, Ticker: b.Ticker, ClosePrice: p}
	}
	return series
}

// Build stores the observations in the database and returns them.
func (b *PriceSeriesBuilder) Build(t *testing.T, db *sql.DB) model.PriceSeries {
	t.Helper()

	series := b.Series()
	InsertPrices(t, db, series)
	return series
}

// InsertPrices stores series in the price table.
func InsertPrices(t *testing.T, db *sql.DB, series model.PriceSeries) {
	t.Helper()

	repo := repository.NewPriceRepository(db)
	if _, err := repo.UpsertPrices(t.Context(), series); err != nil {
		t.Fatalf("Failed to insert prices: %v", err)
	}
}

// CombineSeries concatenates several series into one dataset.
func CombineSeries(series ...model.PriceSeries) model.PriceSeries {
	out := model.PriceSeries{}
	for _, s := range series {
		out = append(out, s...)
	}
	return out
}

// TwoAssetSeries returns the A/B dataset where A goes 100 to 120 and B goes 50 to 45.
func TwoAssetSeries() model.PriceSeries {
	return CombineSeries(
		NewPriceSeries("A").WithPrices(100, 110, 120).Series(),
		NewPriceSeries("B").WithPrices(50, 48, 45).Series(),
	)
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MakeID generates a unique ID for tests.
func MakeID() string {
	return uuid.New().String()
}
