package formulas

// CalculateSharpeRatio calculates the annualized Sharpe ratio of a return series
// without a risk-free rate:
//
//	Sharpe = mean(returns) / popstd(returns) × sqrt(252)
//
// The ratio is defined as 0 when the series is empty or has zero volatility.
func CalculateSharpeRatio(returns []float64) float64 {
	stdDev := PopStdDev(returns)
	if stdDev == 0 {
		return 0
	}
	return annualize(Mean(returns) / stdDev)
}
