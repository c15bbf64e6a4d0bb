package service

import (
	"math"

	"github.com/safespace/risk-dashboard/internal/model"
)

// Risk level thresholds on the 0-10 composite score.
const (
	ModerateRiskThreshold = 3.5
	HighRiskThreshold     = 6.5
)

const maxSubScore = 10.0

// ScoreRisk combines the volatility, drawdown and Sharpe ratio of every scored
// asset into one portfolio score in [0, 10].
//
// Each sub-score is capped at 10 and the per-asset average is weighted by the
// asset's allocation. The sum is not renormalized when assets were skipped;
// Coverage reports the allocation share that was actually scored.
func ScoreRisk(assets []model.AssetMetrics, allocations model.AllocationSet) model.RiskScore {
	score := model.RiskScore{Assets: make([]model.AssetRiskScore, 0, len(assets))}

	for _, a := range assets {
		weight := allocations.Weight(a.Ticker)

		ar := model.AssetRiskScore{
			Ticker:          a.Ticker,
			VolatilityScore: clampScore(a.Volatility * 100),
			DrawdownScore:   clampScore(a.MaxDrawdown * 10),
			SharpeScore:     clampScore(maxSubScore - a.SharpeRatio),
		}
		ar.Score = (ar.VolatilityScore + ar.DrawdownScore + ar.SharpeScore) / 3
		ar.WeightedScore = ar.Score * weight

		score.Score += ar.WeightedScore
		score.Coverage += weight
		score.Assets = append(score.Assets, ar)
	}

	score.Score = clampScore(score.Score)
	score.Level = RiskLevelFor(score.Score)

	return score
}

// RiskLevelFor maps a composite score to its label.
func RiskLevelFor(score float64) model.RiskLevel {
	switch {
	case score < ModerateRiskThreshold:
		return model.RiskLow
	case score < HighRiskThreshold:
		return model.RiskModerate
	default:
		return model.RiskHigh
	}
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(v, maxSubScore))
}
