package report

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/safespace/risk-dashboard/internal/model"
)

func TestFormatter_Money(t *testing.T) {
	f := NewFormatter("USD")

	assert.Equal(t, "$1,234.56", f.Money(1234.56))
	assert.Equal(t, "$10,800.00", f.Money(10800))
	assert.Equal(t, "$0.00", f.Money(0))
	assert.Equal(t, "-$3.50", f.Money(-3.5))
	assert.Equal(t, "$0.10", f.Money(0.1))

	assert.Equal(t, "$1.00", NewFormatter("not-a-currency").Money(1))
}

func TestPercentFormats(t *testing.T) {
	assert.Equal(t, "+20.00%", SignedPercent(0.2))
	assert.Equal(t, "-10.00%", SignedPercent(-0.1))
	assert.Equal(t, "+0.00%", SignedPercent(0))
	assert.Equal(t, "12.34%", Percent(0.1234))
	assert.Equal(t, "0.0123", Fixed(0.012345, 4))
	assert.Equal(t, "1.50", Fixed(1.5, 2))

	t.Run("non-finite values display as n/a", func(t *testing.T) {
		assert.Equal(t, "n/a", Fixed(math.NaN(), 4))
		assert.Equal(t, "n/a", Percent(math.Inf(1)))
		assert.Equal(t, "n/a", SignedPercent(math.Inf(-1)))
		assert.Equal(t, "n/a", NewFormatter("USD").Money(math.NaN()))
	})
}

func TestHeadline(t *testing.T) {
	assert.Equal(t, "Positive Return! Your investment grew by 8.00%!", Headline(8))
	assert.Equal(t, "Negative Return! Your investment shrunk by -28.00%.", Headline(-28))
}

func TestFormatter_Simulation(t *testing.T) {
	f := NewFormatter("USD")
	run := model.SimulationRun{
		Source: model.SourceDataset,
		Request: model.SimulationRequest{
			Range: model.DateRange{
				Start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		Result: model.SimulationResult{
			Assets: []model.AssetMetrics{{
				Ticker: "A", StartPrice: 100, EndPrice: 120, Invested: 6000, ResultAmount: 7200,
				PercentChange: 0.2, Volatility: 0.0123, SharpeRatio: 1.234, MaxDrawdown: 0.05,
			}},
			Skipped:   []model.SkippedAsset{{Ticker: "B", Observations: 1, Reason: "not enough data"}},
			Portfolio: &model.PortfolioSummary{InitialInvestment: 10000, FinalValue: 7200, TotalPercentChange: -28},
		},
		Risk: &model.RiskScore{Score: 4.567, Level: model.RiskModerate, Coverage: 0.6},
	}

	display := f.Simulation(run)

	assert.Len(t, display.Assets, 1)
	assert.Equal(t, "$100.00", display.Assets[0].StartPrice)
	assert.Equal(t, "$7,200.00", display.Assets[0].FinalValue)
	assert.Equal(t, "+20.00%", display.Assets[0].Return)
	assert.Equal(t, "0.0123", display.Assets[0].Volatility)
	assert.Equal(t, "1.23", display.Assets[0].SharpeRatio)
	assert.Equal(t, "5.00%", display.Assets[0].MaxDrawdown)
	assert.Equal(t, []string{"Not enough data for B."}, display.Warnings)
	assert.False(t, display.Portfolio.Positive)
	assert.Equal(t, "4.57", display.RiskScore)

	md := f.SimulationMarkdown(run)
	assert.Contains(t, md, "## A Summary")
	assert.Contains(t, md, "| Final Value | $7,200.00 |")
	assert.Contains(t, md, "> Not enough data for B.")
	assert.Contains(t, md, "Negative Return!")
	assert.Contains(t, md, "`4.57` (Moderate Risk)")
	assert.Contains(t, md, "60.00% of the allocation")
}

func TestFormatter_LoanMarkdown(t *testing.T) {
	f := NewFormatter("USD")
	md := f.LoanMarkdown(model.LoanAssessment{
		Application:  model.LoanApplication{LoanAmount: 50000, TermYears: 5, InterestRate: 5, CreditScore: 650, AnnualIncome: 60000, MonthlyDebt: 500},
		DebtToIncome: 0.1,
		Risk:         model.LoanRiskMedium,
	})

	assert.Contains(t, md, "| Loan Amount | $50,000.00 |")
	assert.Contains(t, md, "**Debt-to-Income Ratio:** 0.10")
	assert.Contains(t, md, "**Loan Risk Level:** Medium Risk")
}
