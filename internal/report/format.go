// Package report formats simulation and loan results for display.
package report

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/safespace/risk-dashboard/internal/model"
)

var hundred = decimal.NewFromInt(100)

// notAvailable is displayed for NaN and infinite values.
const notAvailable = "n/a"

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Formatter renders values in one display currency.
type Formatter struct {
	currency *money.Currency
}

// NewFormatter creates a Formatter for the ISO 4217 currency code.
// Unknown codes fall back to USD.
func NewFormatter(code string) *Formatter {
	currency := money.GetCurrency(code)
	if currency == nil {
		currency = money.GetCurrency(money.USD)
	}
	return &Formatter{currency: currency}
}

// Money formats an amount with the currency symbol and thousands separators, e.g. $1,234.56.
// The amount is rounded half away from zero to the currency's minor unit.
func (f *Formatter) Money(amount float64) string {
	if !finite(amount) {
		return notAvailable
	}
	minor := decimal.NewFromFloat(amount).Shift(int32(f.currency.Fraction)).Round(0).IntPart()
	return money.New(minor, f.currency.Code).Display()
}

// SignedPercent formats a fraction as a percentage with an explicit sign, e.g. +20.00%.
func SignedPercent(fraction float64) string {
	if !finite(fraction) {
		return notAvailable
	}
	d := decimal.NewFromFloat(fraction).Mul(hundred)
	if d.Sign() >= 0 {
		return "+" + d.StringFixed(2) + "%"
	}
	return d.StringFixed(2) + "%"
}

// Percent formats a fraction as a percentage, e.g. 12.34%.
func Percent(fraction float64) string {
	if !finite(fraction) {
		return notAvailable
	}
	return decimal.NewFromFloat(fraction).Mul(hundred).StringFixed(2) + "%"
}

// Fixed formats v with the given number of decimal places.
// NaN and infinite values, here and in the other helpers, display as n/a.
func Fixed(v float64, places int32) string {
	if !finite(v) {
		return notAvailable
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// AssetDisplay holds the formatted performance and risk values of one asset.
type AssetDisplay struct {
	Ticker      string `json:"ticker"`
	StartPrice  string `json:"startPrice"`
	EndPrice    string `json:"endPrice"`
	Invested    string `json:"invested"`
	FinalValue  string `json:"finalValue"`
	Return      string `json:"return"`
	Volatility  string `json:"volatility"`
	SharpeRatio string `json:"sharpeRatio"`
	MaxDrawdown string `json:"maxDrawdown"`
}

// PortfolioDisplay holds the formatted portfolio summary.
type PortfolioDisplay struct {
	Positive          bool   `json:"positive"`
	Headline          string `json:"headline"`
	InitialInvestment string `json:"initialInvestment"`
	FinalValue        string `json:"finalValue"`
	Volatility        string `json:"volatility"`
	SharpeRatio       string `json:"sharpeRatio"`
}

// SimulationDisplay is the display form of a simulation run.
type SimulationDisplay struct {
	Assets    []AssetDisplay    `json:"assets"`
	Portfolio *PortfolioDisplay `json:"portfolio,omitempty"`
	Warnings  []string          `json:"warnings"`
	RiskScore string            `json:"riskScore"`
	RiskLevel model.RiskLevel   `json:"riskLevel"`
}

// Asset formats the metrics of one asset.
func (f *Formatter) Asset(a model.AssetMetrics) AssetDisplay {
	return AssetDisplay{
		Ticker:      a.Ticker,
		StartPrice:  f.Money(a.StartPrice),
		EndPrice:    f.Money(a.EndPrice),
		Invested:    f.Money(a.Invested),
		FinalValue:  f.Money(a.ResultAmount),
		Return:      SignedPercent(a.PercentChange),
		Volatility:  Fixed(a.Volatility, 4),
		SharpeRatio: Fixed(a.SharpeRatio, 2),
		MaxDrawdown: Percent(a.MaxDrawdown),
	}
}

// Portfolio formats the portfolio summary.
func (f *Formatter) Portfolio(p model.PortfolioSummary) PortfolioDisplay {
	return PortfolioDisplay{
		Positive:          p.TotalPercentChange >= 0,
		Headline:          Headline(p.TotalPercentChange),
		InitialInvestment: f.Money(p.InitialInvestment),
		FinalValue:        f.Money(p.FinalValue),
		Volatility:        Fixed(p.Volatility, 4),
		SharpeRatio:       Fixed(p.SharpeRatio, 2),
	}
}

// Simulation formats a complete run.
func (f *Formatter) Simulation(run model.SimulationRun) SimulationDisplay {
	display := SimulationDisplay{
		Assets:   make([]AssetDisplay, 0, len(run.Result.Assets)),
		Warnings: make([]string, 0, len(run.Result.Skipped)),
	}

	for _, a := range run.Result.Assets {
		display.Assets = append(display.Assets, f.Asset(a))
	}
	for _, s := range run.Result.Skipped {
		display.Warnings = append(display.Warnings, SkipWarning(s))
	}
	if run.Result.Portfolio != nil {
		p := f.Portfolio(*run.Result.Portfolio)
		display.Portfolio = &p
	}
	if run.Risk != nil {
		display.RiskScore = Fixed(run.Risk.Score, 2)
		display.RiskLevel = run.Risk.Level
	}

	return display
}

// Headline summarizes the total percent change of a portfolio.
func Headline(totalPercentChange float64) string {
	pct := Fixed(totalPercentChange, 2)
	if totalPercentChange >= 0 {
		return fmt.Sprintf("Positive Return! Your investment grew by %s%%!", pct)
	}
	return fmt.Sprintf("Negative Return! Your investment shrunk by %s%%.", pct)
}

// SkipWarning describes a skipped asset.
func SkipWarning(s model.SkippedAsset) string {
	return fmt.Sprintf("Not enough data for %s.", s.Ticker)
}
