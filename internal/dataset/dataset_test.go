package dataset

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRead(t *testing.T) {
	t.Run("parses rows", func(t *testing.T) {
		csv := "date,ticker,close_price\n2024-01-31,AAPL,100.5\n2024-02-29 00:00:00,AAPL,101\n"

		series, err := Read(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, series, 2)

		assert.Equal(t, day(2024, time.January, 31), series[0].Date)
		assert.Equal(t, "AAPL", series[0].Ticker)
		assert.Equal(t, 100.5, series[0].ClosePrice)
		assert.Equal(t, day(2024, time.February, 29), series[1].Date)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		inputs := map[string]string{
			"bad date":    "date,ticker,close_price\nyesterday,AAPL,1\n",
			"bad price":   "date,ticker,close_price\n2024-01-31,AAPL,abc\n",
			"no ticker":   "date,ticker,close_price\n2024-01-31,,1\n",
			"header only": "date,ticker,close_price\n",
			"nan price":   "date,ticker,close_price\n2024-01-31,AAPL,NaN\n",
			"inf price":   "date,ticker,close_price\n2024-01-31,AAPL,Inf\n",
			"-inf price":  "date,ticker,close_price\n2024-01-31,AAPL,-Inf\n",
		}
		for name, input := range inputs {
			t.Run(name, func(t *testing.T) {
				_, err := Read(strings.NewReader(input))
				assert.True(t, errors.Is(err, apperrors.ErrDataLoad), "got %v", err)
			})
		}
	})

	t.Run("missing file is a load error", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
		assert.ErrorIs(t, err, apperrors.ErrDataLoad)
	})
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	series := model.PriceSeries{
		{Date: day(2020, time.March, 31), Ticker: "MSFT", ClosePrice: 42.25},
		{Date: day(2020, time.April, 30), Ticker: "MSFT", ClosePrice: 43},
	}

	require.NoError(t, WriteFile(path, series))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("date,ticker,close_price")))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, series, got)
}

func TestMonthEnds(t *testing.T) {
	dates := MonthEnds(day(1975, time.January, 1), day(2025, time.January, 1))

	require.Len(t, dates, 600)
	assert.Equal(t, day(1975, time.January, 31), dates[0])
	assert.Equal(t, day(1976, time.February, 29), dates[13])
	assert.Equal(t, day(2024, time.December, 31), dates[len(dates)-1])
}

func TestGenerate(t *testing.T) {
	cfg := DefaultGeneratorConfig(7)

	series := Generate(cfg)

	require.Len(t, series, 600*len(DefaultTickers))
	assert.Equal(t, DefaultTickers, sortedCopy(series.Tickers()))
	assert.Empty(t, Validate(series), "random walk around +1% should stay positive")

	t.Run("deterministic for a seed", func(t *testing.T) {
		assert.Equal(t, series, Generate(cfg))
	})

	t.Run("seeds differ", func(t *testing.T) {
		assert.NotEqual(t, series[0].ClosePrice, Generate(DefaultGeneratorConfig(8))[0].ClosePrice)
	})

	t.Run("zero volatility compounds the mean", func(t *testing.T) {
		flat := cfg
		flat.Volatility = 0
		flat.Tickers = []string{"X"}
		flat.End = day(1975, time.March, 31)

		got := Generate(flat)
		require.Len(t, got, 3)
		assert.InDelta(t, 101, got[0].ClosePrice, 1e-9)
		assert.InDelta(t, 102.01, got[1].ClosePrice, 1e-9)
		assert.InDelta(t, 103.0301, got[2].ClosePrice, 1e-9)
	})
}

func TestValidate(t *testing.T) {
	series := model.PriceSeries{
		{Date: day(2024, time.January, 31), Ticker: "A", ClosePrice: 10},
		{Date: day(2024, time.January, 31), Ticker: "A", ClosePrice: 11},
		{Date: day(2024, time.February, 29), Ticker: "B", ClosePrice: 0},
	}

	violations := Validate(series)

	require.Len(t, violations, 2)
	assert.Equal(t, "B", violations[0].Ticker)
	assert.Equal(t, "non-positive close price", violations[0].Reason)
	assert.Equal(t, "A", violations[1].Ticker)
	assert.Equal(t, "date not strictly increasing", violations[1].Reason)

	t.Run("flags non-finite prices", func(t *testing.T) {
		got := Validate(model.PriceSeries{
			{Date: day(2024, time.January, 31), Ticker: "C", ClosePrice: math.NaN()},
			{Date: day(2024, time.February, 29), Ticker: "C", ClosePrice: math.Inf(1)},
			{Date: day(2024, time.March, 31), Ticker: "C", ClosePrice: math.Inf(-1)},
		})

		require.Len(t, got, 3)
		for _, v := range got {
			assert.Equal(t, "non-finite close price", v.Reason)
		}
	})
}

// sortedCopy returns tickers in generator order for comparison.
func sortedCopy(tickers []string) []string {
	order := make(map[string]int, len(DefaultTickers))
	for i, t := range DefaultTickers {
		order[t] = i
	}
	out := make([]string, len(tickers))
	for _, t := range tickers {
		out[order[t]] = t
	}
	return out
}
