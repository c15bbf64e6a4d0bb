package dataset

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/safespace/risk-dashboard/internal/formulas"
	"github.com/safespace/risk-dashboard/internal/model"
)

// DefaultTickers are the tickers produced by the synthetic generator.
var DefaultTickers = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "META", "TSLA", "NFLX", "NVDA", "JPM", "DIS"}

// GeneratorConfig parameterizes the synthetic random walk.
type GeneratorConfig struct {
	Tickers    []string
	Start      time.Time // first month; the first point is the last day of this month
	End        time.Time // last point is the last month end on or before End
	BasePrice  float64
	MeanReturn float64
	Volatility float64
	Seed       uint64 // 0 seeds from the clock
}

// DefaultGeneratorConfig covers monthly points from 1975 through 2024.
func DefaultGeneratorConfig(seed uint64) GeneratorConfig {
	return GeneratorConfig{
		Tickers:    DefaultTickers,
		Start:      time.Date(1975, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		BasePrice:  100,
		MeanReturn: 0.01,
		Volatility: 0.05,
		Seed:       seed,
	}
}

// Generate produces a multiplicative random walk per ticker:
//
//	price(t) = BasePrice × cumprod(1 + N(MeanReturn, Volatility))
//
// sampled at every month end between cfg.Start and cfg.End.
func Generate(cfg GeneratorConfig) model.PriceSeries {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	dist := distuv.Normal{
		Mu:    cfg.MeanReturn,
		Sigma: cfg.Volatility,
		Src:   rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}

	dates := MonthEnds(cfg.Start, cfg.End)
	series := make(model.PriceSeries, 0, len(dates)*len(cfg.Tickers))
	growth := make([]float64, len(dates))

	for _, ticker := range cfg.Tickers {
		for i := range growth {
			growth[i] = 1 + dist.Rand()
		}
		for i, factor := range formulas.CumulativeProduct(growth) {
			series = append(series, model.PricePoint{
				Date:       dates[i],
				Ticker:     ticker,
				ClosePrice: factor * cfg.BasePrice,
			})
		}
	}

	return series
}

// MonthEnds returns the last day of every month whose month end lies in [start, end].
func MonthEnds(start, end time.Time) []time.Time {
	dates := []time.Time{}
	month := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for {
		last := month.AddDate(0, 1, -1)
		if last.After(end) {
			break
		}
		if !last.Before(start) {
			dates = append(dates, last)
		}
		month = month.AddDate(0, 1, 0)
	}
	return dates
}
