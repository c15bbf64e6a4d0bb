package dataset

import (
	"math"
	"sort"

	"github.com/safespace/risk-dashboard/internal/model"
)

// Validate flags observations that break the dataset invariants: close prices must be
// finite and positive, dates strictly increasing per ticker. Violations are reported, not fixed.
func Validate(series model.PriceSeries) []model.PriceViolation {
	violations := []model.PriceViolation{}
	byTicker := make(map[string][]model.PricePoint)

	for _, p := range series {
		switch {
		case math.IsNaN(p.ClosePrice) || math.IsInf(p.ClosePrice, 0):
			violations = append(violations, model.PriceViolation{
				Ticker: p.Ticker,
				Date:   p.Date,
				Reason: "non-finite close price",
			})
		case p.ClosePrice <= 0:
			violations = append(violations, model.PriceViolation{
				Ticker: p.Ticker,
				Date:   p.Date,
				Reason: "non-positive close price",
			})
		}
		byTicker[p.Ticker] = append(byTicker[p.Ticker], p)
	}

	tickers := make([]string, 0, len(byTicker))
	for ticker := range byTicker {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	for _, ticker := range tickers {
		points := byTicker[ticker]
		for i := 1; i < len(points); i++ {
			if !points[i].Date.After(points[i-1].Date) {
				violations = append(violations, model.PriceViolation{
					Ticker: ticker,
					Date:   points[i].Date,
					Reason: "date not strictly increasing",
				})
			}
		}
	}

	return violations
}
