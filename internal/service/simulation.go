package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/formulas"
	"github.com/safespace/risk-dashboard/internal/model"
)

// DefaultAmount is the investment amount used when a request omits one.
const DefaultAmount = 10000.0

// SimulationService runs portfolio simulations against the memoized price dataset.
type SimulationService struct {
	prices    *PriceService
	alignment model.Alignment
	log       zerolog.Logger
}

// NewSimulationService creates a new SimulationService.
// alignment is applied to requests that do not choose one.
func NewSimulationService(prices *PriceService, alignment model.Alignment, log zerolog.Logger) *SimulationService {
	if alignment == "" {
		alignment = model.AlignByDate
	}
	return &SimulationService{
		prices:    prices,
		alignment: alignment,
		log:       log.With().Str("component", "simulation").Logger(),
	}
}

// Run simulates req and scores the resulting portfolio.
// A zero start or end date is replaced by the corresponding dataset bound.
// A filled bound never crosses the supplied one.
func (s *SimulationService) Run(ctx context.Context, req model.SimulationRequest) (model.SimulationRun, error) {
	snap := s.prices.Snapshot(ctx)

	bounds, _ := snap.Series.Bounds()
	req.Range = fillRange(req.Range, bounds)
	if req.Alignment == "" {
		req.Alignment = s.alignment
	}

	result, err := Simulate(snap.Series, req)
	if err != nil {
		return model.SimulationRun{}, err
	}

	risk := ScoreRisk(result.Assets, req.Allocations)

	run := model.SimulationRun{
		ID:         uuid.New().String(),
		Source:     snap.Source,
		Request:    req,
		Result:     result,
		Risk:       &risk,
		ComputedAt: time.Now().UTC(),
	}

	s.log.Debug().
		Str("run_id", run.ID).
		Strs("tickers", req.Tickers).
		Int("assets", len(result.Assets)).
		Int("skipped", len(result.Skipped)).
		Str("risk", string(risk.Level)).
		Msg("Simulation completed")

	return run, nil
}

// fillRange replaces the zero bounds of r with those of the dataset. A supplied
// start after the dataset end, or a supplied end before its start, yields an
// empty window on that date instead of an inverted range.
func fillRange(r, bounds model.DateRange) model.DateRange {
	switch {
	case r.Start.IsZero() && r.End.IsZero():
		return bounds
	case r.Start.IsZero():
		r.Start = bounds.Start
		if r.End.Before(r.Start) {
			r.Start = r.End
		}
	case r.End.IsZero():
		r.End = bounds.End
		if r.Start.After(r.End) {
			r.End = r.Start
		}
	}
	return r
}

// DefaultAllocations splits 100 percent evenly across tickers.
// The remainder of the integer division goes to the first ticker.
func DefaultAllocations(tickers []string) model.AllocationSet {
	allocations := make(model.AllocationSet, len(tickers))
	if len(tickers) == 0 {
		return allocations
	}

	share := 100 / len(tickers)
	for _, t := range tickers {
		allocations[t] = share
	}
	allocations[tickers[0]] += 100 - share*len(tickers)

	return allocations
}

// Simulate computes per-asset and portfolio metrics for req over prices.
//
// Tickers with fewer than two observations inside the window are reported in
// Skipped and contribute nothing. When every ticker is skipped the result has no
// Portfolio. The request is rejected outright when its allocations are invalid.
func Simulate(prices model.PriceSeries, req model.SimulationRequest) (model.SimulationResult, error) {
	alignment, err := checkRequest(req)
	if err != nil {
		return model.SimulationResult{}, err
	}

	result := model.SimulationResult{
		Assets:  []model.AssetMetrics{},
		Skipped: []model.SkippedAsset{},
	}

	for _, ticker := range req.Tickers {
		window := prices.Filter(ticker, req.Range)
		if len(window) < 2 {
			result.Skipped = append(result.Skipped, model.SkippedAsset{
				Ticker:       ticker,
				Observations: len(window),
				Reason:       apperrors.ErrInsufficientData.Error(),
			})
			continue
		}
		result.Assets = append(result.Assets, assetMetrics(ticker, window, req))
	}

	if len(result.Assets) > 0 {
		summary := summarize(result.Assets, req.Amount, alignment)
		result.Portfolio = &summary
	}

	return result, nil
}

func checkRequest(req model.SimulationRequest) (model.Alignment, error) {
	if len(req.Tickers) == 0 {
		return "", apperrors.ErrNoTickers
	}

	seen := make(map[string]bool, len(req.Tickers))
	for _, t := range req.Tickers {
		if seen[t] {
			return "", fmt.Errorf("%w: duplicate ticker %s", apperrors.ErrInvalidAllocation, t)
		}
		seen[t] = true

		w, ok := req.Allocations[t]
		if !ok {
			return "", fmt.Errorf("%w: %s", apperrors.ErrMissingAllocation, t)
		}
		if w < 0 || w > 100 {
			return "", fmt.Errorf("%w: %s has %d", apperrors.ErrInvalidAllocation, t, w)
		}
	}
	for t := range req.Allocations {
		if !seen[t] {
			return "", fmt.Errorf("%w: %s is not selected", apperrors.ErrInvalidAllocation, t)
		}
	}

	if total := req.Allocations.Total(); total != 100 {
		return "", fmt.Errorf("%w: got %d%%", apperrors.ErrAllocationTotal, total)
	}
	if req.Amount < 0 {
		return "", apperrors.ErrNegativeAmount
	}
	if !req.Range.Start.IsZero() && !req.Range.End.IsZero() && req.Range.Start.After(req.Range.End) {
		return "", fmt.Errorf("%w: start %s is after end %s", apperrors.ErrInvalidDateRange,
			req.Range.Start.Format("2006-01-02"), req.Range.End.Format("2006-01-02"))
	}

	switch req.Alignment {
	case "":
		return model.AlignByDate, nil
	case model.AlignByDate, model.AlignByPosition:
		return req.Alignment, nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidAlignment, req.Alignment)
	}
}

func assetMetrics(ticker string, window model.PriceSeries, req model.SimulationRequest) model.AssetMetrics {
	closes := window.Closes()
	returns := formulas.CalculateReturns(closes)
	weight := req.Allocations.Weight(ticker)

	initial, final := closes[0], closes[len(closes)-1]
	change := formulas.PercentChange(initial, final)
	invested := req.Amount * weight

	weighted := make([]model.WeightedReturn, len(returns))
	for i, r := range returns {
		weighted[i] = model.WeightedReturn{Date: window[i+1].Date, Return: r * weight}
	}

	return model.AssetMetrics{
		Ticker:          ticker,
		Weight:          req.Allocations[ticker],
		Observations:    len(window),
		StartPrice:      initial,
		EndPrice:        final,
		Invested:        invested,
		ResultAmount:    invested * (1 + change),
		PercentChange:   change,
		Volatility:      formulas.PopStdDev(returns),
		SharpeRatio:     formulas.CalculateSharpeRatio(returns),
		MaxDrawdown:     formulas.CalculateMaxDrawdown(closes),
		WeightedReturns: weighted,
	}
}

func summarize(assets []model.AssetMetrics, amount float64, alignment model.Alignment) model.PortfolioSummary {
	total := 0.0
	for _, a := range assets {
		total += a.ResultAmount
	}

	var dates []time.Time
	var combined []float64
	if alignment == model.AlignByPosition {
		dates, combined = combineByPosition(assets)
	} else {
		dates, combined = combineByDate(assets)
	}

	summary := model.PortfolioSummary{
		InitialInvestment: amount,
		FinalValue:        total,
		Volatility:        formulas.PopStdDev(combined),
		SharpeRatio:       formulas.CalculateSharpeRatio(combined),
		Periods:           len(combined),
		Dates:             dates,
		CumulativeReturns: formulas.CumulativeSum(combined),
	}
	if amount != 0 {
		summary.TotalPercentChange = (total - amount) / amount * 100
	}

	return summary
}

// combineByPosition sums the i-th weighted return of every asset. Shorter
// series contribute zero past their end. Dates are taken from the longest series.
func combineByPosition(assets []model.AssetMetrics) ([]time.Time, []float64) {
	var longest []model.WeightedReturn
	for _, a := range assets {
		if len(a.WeightedReturns) > len(longest) {
			longest = a.WeightedReturns
		}
	}

	dates := make([]time.Time, len(longest))
	for i, wr := range longest {
		dates[i] = wr.Date
	}

	combined := make([]float64, len(longest))
	for _, a := range assets {
		for i, wr := range a.WeightedReturns {
			combined[i] += wr.Return
		}
	}
	return dates, combined
}

// combineByDate sums weighted returns sharing a date, in date order.
func combineByDate(assets []model.AssetMetrics) ([]time.Time, []float64) {
	byDate := make(map[int64]float64)
	for _, a := range assets {
		for _, wr := range a.WeightedReturns {
			byDate[wr.Date.Unix()] += wr.Return
		}
	}

	keys := make([]int64, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	dates := make([]time.Time, len(keys))
	combined := make([]float64, len(keys))
	for i, k := range keys {
		dates[i] = time.Unix(k, 0).UTC()
		combined[i] = byDate[k]
	}
	return dates, combined
}
