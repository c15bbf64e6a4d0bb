package model

import "time"

// AllocationSet maps a ticker to its percentage weight (0-100).
type AllocationSet map[string]int

// Total returns the sum of all weights.
func (a AllocationSet) Total() int {
	total := 0
	for _, w := range a {
		total += w
	}
	return total
}

// Weight returns the allocation of ticker as a fraction of one.
func (a AllocationSet) Weight(ticker string) float64 {
	return float64(a[ticker]) / 100
}

// Alignment selects how weighted return series are combined into the portfolio series.
type Alignment string

const (
	// AlignByDate sums weighted returns that share an observation date.
	AlignByDate Alignment = "date"
	// AlignByPosition sums weighted returns by period index, ignoring dates.
	AlignByPosition Alignment = "position"
)

// SimulationRequest carries the user-selected simulation parameters.
type SimulationRequest struct {
	Tickers     []string      `json:"tickers"`
	Allocations AllocationSet `json:"allocations"`
	Amount      float64       `json:"amount"`
	Range       DateRange     `json:"range"`
	Alignment   Alignment     `json:"alignment"`
}

// WeightedReturn is one period return scaled by the ticker's allocation.
type WeightedReturn struct {
	Date   time.Time `json:"date"`
	Return float64   `json:"return"`
}

// AssetMetrics holds the performance and risk metrics for one ticker.
type AssetMetrics struct {
	Ticker          string           `json:"ticker"`
	Weight          int              `json:"weight"`
	Observations    int              `json:"observations"`
	StartPrice      float64          `json:"startPrice"`
	EndPrice        float64          `json:"endPrice"`
	Invested        float64          `json:"invested"`
	ResultAmount    float64          `json:"resultAmount"`
	PercentChange   float64          `json:"percentChange"` // fraction, 0.1 is +10%
	Volatility      float64          `json:"volatility"`
	SharpeRatio     float64          `json:"sharpeRatio"`
	MaxDrawdown     float64          `json:"maxDrawdown"`
	WeightedReturns []WeightedReturn `json:"-"`
}

// PortfolioSummary aggregates all assets that produced metrics.
type PortfolioSummary struct {
	InitialInvestment  float64     `json:"initialInvestment"`
	FinalValue         float64     `json:"finalValue"`
	TotalPercentChange float64     `json:"totalPercentChange"`
	Volatility         float64     `json:"volatility"`
	SharpeRatio        float64     `json:"sharpeRatio"`
	Periods            int         `json:"periods"`
	Dates              []time.Time `json:"dates"`
	CumulativeReturns  []float64   `json:"cumulativeReturns"`
}

// SkippedAsset reports a ticker excluded from the simulation.
type SkippedAsset struct {
	Ticker       string `json:"ticker"`
	Observations int    `json:"observations"`
	Reason       string `json:"reason"`
}

// SimulationResult is the engine output for one request.
type SimulationResult struct {
	Assets    []AssetMetrics    `json:"assets"`
	Portfolio *PortfolioSummary `json:"portfolio"`
	Skipped   []SkippedAsset    `json:"skipped"`
}

// RiskLevel is the three-tier label of a composite risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low Risk"
	RiskModerate RiskLevel = "Moderate Risk"
	RiskHigh     RiskLevel = "High Risk"
)

// AssetRiskScore is the per-ticker breakdown of the composite score.
type AssetRiskScore struct {
	Ticker          string  `json:"ticker"`
	VolatilityScore float64 `json:"volatilityScore"`
	DrawdownScore   float64 `json:"drawdownScore"`
	SharpeScore     float64 `json:"sharpeScore"`
	Score           float64 `json:"score"`
	WeightedScore   float64 `json:"weightedScore"`
}

// RiskScore is the bounded composite portfolio risk score.
type RiskScore struct {
	Score    float64          `json:"score"`
	Level    RiskLevel        `json:"level"`
	Coverage float64          `json:"coverage"`
	Assets   []AssetRiskScore `json:"assets"`
}

// SimulationRun is a complete simulation as served to the presentation layer.
type SimulationRun struct {
	ID         string            `json:"id"`
	Source     DataSource        `json:"source"`
	Request    SimulationRequest `json:"request"`
	Result     SimulationResult  `json:"result"`
	Risk       *RiskScore        `json:"risk"`
	ComputedAt time.Time         `json:"computedAt"`
}
