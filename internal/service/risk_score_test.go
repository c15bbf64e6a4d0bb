package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/service"
)

func TestScoreRisk(t *testing.T) {
	t.Run("averages the three sub-scores and weights by allocation", func(t *testing.T) {
		assets := []model.AssetMetrics{
			{Ticker: "A", Volatility: 0.05, MaxDrawdown: 0.2, SharpeRatio: 1},
		}

		score := service.ScoreRisk(assets, model.AllocationSet{"A": 100})

		require.Len(t, score.Assets, 1)
		assert.InDelta(t, 5, score.Assets[0].VolatilityScore, 1e-9)
		assert.InDelta(t, 2, score.Assets[0].DrawdownScore, 1e-9)
		assert.InDelta(t, 9, score.Assets[0].SharpeScore, 1e-9)
		assert.InDelta(t, 16.0/3, score.Assets[0].Score, 1e-9)
		assert.InDelta(t, 16.0/3, score.Score, 1e-9)
		assert.Equal(t, model.RiskModerate, score.Level)
		assert.InDelta(t, 1.0, score.Coverage, 1e-12)
	})

	t.Run("caps every sub-score at 10", func(t *testing.T) {
		assets := []model.AssetMetrics{
			{Ticker: "A", Volatility: 3, MaxDrawdown: 0.99, SharpeRatio: -25},
		}

		score := service.ScoreRisk(assets, model.AllocationSet{"A": 100})

		ar := score.Assets[0]
		assert.Equal(t, 10.0, ar.VolatilityScore)
		assert.InDelta(t, 9.9, ar.DrawdownScore, 1e-9)
		assert.Equal(t, 10.0, ar.SharpeScore)
		assert.LessOrEqual(t, ar.Score, 10.0)
		assert.LessOrEqual(t, score.Score, 10.0)
		assert.Equal(t, model.RiskHigh, score.Level)
	})

	t.Run("floors the Sharpe sub-score at 0", func(t *testing.T) {
		assets := []model.AssetMetrics{
			{Ticker: "A", Volatility: 0, MaxDrawdown: 0, SharpeRatio: 14},
		}

		score := service.ScoreRisk(assets, model.AllocationSet{"A": 100})

		assert.Equal(t, 0.0, score.Assets[0].SharpeScore)
		assert.Equal(t, 0.0, score.Score)
		assert.Equal(t, model.RiskLow, score.Level)
	})

	t.Run("does not renormalize when assets are missing", func(t *testing.T) {
		assets := []model.AssetMetrics{
			{Ticker: "A", Volatility: 1, MaxDrawdown: 1, SharpeRatio: -10},
		}

		score := service.ScoreRisk(assets, model.AllocationSet{"A": 50, "B": 50})

		assert.InDelta(t, 5, score.Score, 1e-9)
		assert.InDelta(t, 0.5, score.Coverage, 1e-12)
		assert.Equal(t, model.RiskModerate, score.Level)
	})

	t.Run("scores an empty portfolio as low risk", func(t *testing.T) {
		score := service.ScoreRisk(nil, model.AllocationSet{"A": 100})

		assert.Equal(t, 0.0, score.Score)
		assert.Equal(t, model.RiskLow, score.Level)
		assert.Empty(t, score.Assets)
	})
}

func TestRiskLevelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  model.RiskLevel
	}{
		{0, model.RiskLow},
		{3.49, model.RiskLow},
		{3.5, model.RiskModerate},
		{6.49, model.RiskModerate},
		{6.5, model.RiskHigh},
		{10, model.RiskHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, service.RiskLevelFor(tt.score), "score %.2f", tt.score)
	}
}
