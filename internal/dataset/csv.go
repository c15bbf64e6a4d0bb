// Package dataset reads, writes and synthesizes tabular price datasets.
//
// A dataset is a CSV file with the columns date, ticker and close_price, one row
// per observation. Dates are ISO formatted ("2006-01-02", optionally with a time).
package dataset

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/model"
)

// DateLayout is the layout dates are written in.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Record is one CSV row.
type Record struct {
	Date       string  `csv:"date"`
	Ticker     string  `csv:"ticker"`
	ClosePrice float64 `csv:"close_price"`
}

// ReadFile loads a dataset from the CSV file at path.
func ReadFile(path string) (model.PriceSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrDataLoad, err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a CSV dataset. Rows with an unparsable date, an empty ticker or a
// non-finite close price fail the whole read.
func Read(r io.Reader) (model.PriceSeries, error) {
	var records []Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrDataLoad, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrDataLoad, apperrors.ErrEmptyDataset)
	}

	series := make(model.PriceSeries, 0, len(records))
	for i, rec := range records {
		date, err := ParseDate(rec.Date)
		if err != nil {
			// Row numbers are 1-based and skip the header line.
			return nil, fmt.Errorf("%w: row %d: %w", apperrors.ErrDataLoad, i+2, err)
		}
		ticker := strings.TrimSpace(rec.Ticker)
		if ticker == "" {
			return nil, fmt.Errorf("%w: row %d: empty ticker", apperrors.ErrDataLoad, i+2)
		}
		if math.IsNaN(rec.ClosePrice) || math.IsInf(rec.ClosePrice, 0) {
			return nil, fmt.Errorf("%w: row %d: non-finite close price", apperrors.ErrDataLoad, i+2)
		}
		series = append(series, model.PricePoint{
			Date:       date,
			Ticker:     ticker,
			ClosePrice: rec.ClosePrice,
		})
	}

	return series, nil
}

// WriteFile writes series as a CSV dataset to path, replacing any existing file.
func WriteFile(path string, series model.PriceSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}

	if err := Write(f, series); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write encodes series as CSV with a header row.
func Write(w io.Writer, series model.PriceSeries) error {
	records := make([]Record, len(series))
	for i, p := range series {
		records[i] = Record{
			Date:       p.Date.Format(DateLayout),
			Ticker:     p.Ticker,
			ClosePrice: p.ClosePrice,
		}
	}

	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	return nil
}

// ParseDate parses a date in "2006-01-02", "2006-01-02 15:04:05" or RFC3339 format.
func ParseDate(str string) (time.Time, error) {
	str = strings.TrimSpace(str)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date %q", str)
}
