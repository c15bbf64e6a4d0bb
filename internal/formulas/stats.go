// Package formulas holds the closed-form return and risk statistics used by the simulation engine.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TradingPeriodsPerYear annualizes period statistics.
const TradingPeriodsPerYear = 252

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// PopStdDev calculates the population standard deviation (divides by N).
// Returns 0 for an empty slice.
func PopStdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.PopStdDev(data, nil)
}

// CalculateReturns converts prices to simple period returns.
// Returns[i] = (Price[i+1] - Price[i]) / Price[i]
func CalculateReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] != 0 {
			returns[i-1] = (prices[i] - prices[i-1]) / prices[i-1]
		}
	}

	return returns
}

// PercentChange returns (final - initial) / initial as a fraction.
// A zero initial price yields 0.
func PercentChange(initial, final float64) float64 {
	if initial == 0 {
		return 0
	}
	return (final - initial) / initial
}

// CumulativeSum returns the running sum of data.
func CumulativeSum(data []float64) []float64 {
	if len(data) == 0 {
		return []float64{}
	}
	return floats.CumSum(make([]float64, len(data)), data)
}

// CumulativeProduct returns the running product of data.
func CumulativeProduct(data []float64) []float64 {
	if len(data) == 0 {
		return []float64{}
	}
	return floats.CumProd(make([]float64, len(data)), data)
}

// annualize scales a per-period ratio by the square root of the periods per year.
func annualize(ratio float64) float64 {
	return ratio * math.Sqrt(TradingPeriodsPerYear)
}
