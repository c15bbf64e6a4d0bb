package chart

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/model"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestCumulativeReturns(t *testing.T) {
	t.Run("renders a PNG", func(t *testing.T) {
		start := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
		run := model.SimulationRun{
			Request: model.SimulationRequest{Tickers: []string{"A", "B"}},
			Result: model.SimulationResult{Portfolio: &model.PortfolioSummary{
				Dates:             []time.Time{start, start.AddDate(0, 1, 0), start.AddDate(0, 2, 0)},
				CumulativeReturns: []float64{0.01, 0.03, 0.02},
			}},
			Risk: &model.RiskScore{Score: 4, Level: model.RiskModerate},
		}

		img, err := CumulativeReturns(run)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(img, pngMagic))
	})

	t.Run("fails without a portfolio", func(t *testing.T) {
		_, err := CumulativeReturns(model.SimulationRun{})
		assert.ErrorIs(t, err, apperrors.ErrInsufficientData)
	})
}

func TestPriceHistory(t *testing.T) {
	t.Run("renders a PNG", func(t *testing.T) {
		series := model.PriceSeries{
			{Date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), Ticker: "A", ClosePrice: 100},
			{Date: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), Ticker: "A", ClosePrice: 100},
		}

		img, err := PriceHistory("A", series)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(img, pngMagic))
	})

	t.Run("fails on an empty series", func(t *testing.T) {
		_, err := PriceHistory("A", nil)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientData)
	})
}

func TestLabels(t *testing.T) {
	d := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2024-03-05"}, labels([]time.Time{d}))

	yearEnd := []time.Time{
		time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, []string{"2024-12-31", "2025-01-31"}, labels(yearEnd))

	many := make([]time.Time, 61)
	for i := range many {
		many[i] = d.AddDate(0, i, 0)
	}
	assert.Equal(t, "Mar '24", labels(many)[0])
}
