package report

import (
	"fmt"
	"strings"

	"github.com/safespace/risk-dashboard/internal/model"
)

// SimulationMarkdown renders a run as a markdown document.
func (f *Formatter) SimulationMarkdown(run model.SimulationRun) string {
	display := f.Simulation(run)

	var b strings.Builder
	fmt.Fprintf(&b, "# Investment Simulation\n\n")
	fmt.Fprintf(&b, "%s to %s, %s prices\n\n",
		run.Request.Range.Start.Format("2006-01-02"),
		run.Request.Range.End.Format("2006-01-02"),
		run.Source)

	for _, a := range display.Assets {
		fmt.Fprintf(&b, "## %s Summary\n\n", a.Ticker)
		b.WriteString("| Performance Metrics | Values |\n|---|---|\n")
		fmt.Fprintf(&b, "| Start Price | %s |\n", a.StartPrice)
		fmt.Fprintf(&b, "| End Price | %s |\n", a.EndPrice)
		fmt.Fprintf(&b, "| Initial Investment | %s |\n", a.Invested)
		fmt.Fprintf(&b, "| Final Value | %s |\n", a.FinalValue)
		fmt.Fprintf(&b, "| Portfolio Return | %s |\n\n", a.Return)

		b.WriteString("| Risk Metrics | Values |\n|---|---|\n")
		fmt.Fprintf(&b, "| Volatility (Std Dev) | %s |\n", a.Volatility)
		fmt.Fprintf(&b, "| Sharpe Ratio | %s |\n", a.SharpeRatio)
		fmt.Fprintf(&b, "| Max Drawdown | %s |\n\n", a.MaxDrawdown)
	}

	for _, w := range display.Warnings {
		fmt.Fprintf(&b, "> %s\n\n", w)
	}

	if p := display.Portfolio; p != nil {
		b.WriteString("## Portfolio Summary\n\n")
		fmt.Fprintf(&b, "**%s**\n\n", p.Headline)
		fmt.Fprintf(&b, "- **Initial Investment:** %s\n", p.InitialInvestment)
		fmt.Fprintf(&b, "- **Final Value:** %s\n", p.FinalValue)
		fmt.Fprintf(&b, "- **Portfolio Volatility:** %s\n", p.Volatility)
		fmt.Fprintf(&b, "- **Portfolio Sharpe Ratio:** %s\n\n", p.SharpeRatio)
	}

	if run.Risk != nil {
		b.WriteString("## Portfolio Risk Score\n\n")
		fmt.Fprintf(&b, "**Overall Risk Score:** `%s` (%s)\n", display.RiskScore, display.RiskLevel)
		if run.Risk.Coverage < 1 {
			fmt.Fprintf(&b, "\nScored assets cover %s of the allocation.\n", Percent(run.Risk.Coverage))
		}
	}

	return b.String()
}

// LoanMarkdown renders a loan assessment as a markdown document.
func (f *Formatter) LoanMarkdown(a model.LoanAssessment) string {
	var b strings.Builder
	b.WriteString("# Loan Risk Assessment\n\n")
	b.WriteString("| Input | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Loan Amount | %s |\n", f.Money(a.Application.LoanAmount))
	fmt.Fprintf(&b, "| Term | %d years |\n", a.Application.TermYears)
	fmt.Fprintf(&b, "| Interest Rate | %s%% |\n", Fixed(a.Application.InterestRate, 2))
	fmt.Fprintf(&b, "| Credit Score | %d |\n", a.Application.CreditScore)
	fmt.Fprintf(&b, "| Annual Income | %s |\n", f.Money(a.Application.AnnualIncome))
	fmt.Fprintf(&b, "| Monthly Debt | %s |\n\n", f.Money(a.Application.MonthlyDebt))

	fmt.Fprintf(&b, "**Debt-to-Income Ratio:** %s\n\n", Fixed(a.DebtToIncome, 2))
	fmt.Fprintf(&b, "**Monthly Payment:** %s\n\n", f.Money(a.MonthlyPayment))
	fmt.Fprintf(&b, "**Total Interest:** %s\n\n", f.Money(a.TotalInterest))
	fmt.Fprintf(&b, "**Loan Risk Level:** %s\n", a.Risk)

	return b.String()
}

// TickersMarkdown renders the available tickers and the dataset date bounds.
func TickersMarkdown(tickers []string, bounds model.DateRange, source model.DataSource) string {
	var b strings.Builder
	b.WriteString("# Available Tickers\n\n")
	fmt.Fprintf(&b, "%s prices from %s to %s\n\n", source,
		bounds.Start.Format("2006-01-02"), bounds.End.Format("2006-01-02"))
	for _, t := range tickers {
		fmt.Fprintf(&b, "- %s\n", t)
	}
	return b.String()
}
