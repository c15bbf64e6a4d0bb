package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/safespace/risk-dashboard/internal/api/request"
	"github.com/safespace/risk-dashboard/internal/config"
	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/report"
	"github.com/safespace/risk-dashboard/internal/service"
	"github.com/safespace/risk-dashboard/internal/validation"
)

type loanCmd struct {
	req request.LoanAssessmentRequest
}

func (*loanCmd) Name() string     { return "loan" }
func (*loanCmd) Synopsis() string { return "classify the risk of a loan application" }
func (*loanCmd) Usage() string {
	return `riskctl loan [-amount <usd>] [-term <years>] [-rate <pct>] [-score <credit>] [-income <usd>] [-debt <usd>]

  Classifies a loan application by credit score and debt-to-income ratio.
`
}

func (c *loanCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.req.LoanAmount, "amount", 5000, "loan amount")
	f.IntVar(&c.req.TermYears, "term", 10, "loan term in years")
	f.Float64Var(&c.req.InterestRate, "rate", 5, "annual interest rate in percent")
	f.IntVar(&c.req.CreditScore, "score", 700, "credit score")
	f.Float64Var(&c.req.AnnualIncome, "income", 50000, "annual income")
	f.Float64Var(&c.req.MonthlyDebt, "debt", 500, "monthly debt payments")
}

func (c *loanCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := validation.ValidateLoanAssessment(c.req); err != nil {
		return usageError(err)
	}

	// Loan assessment needs no price data, so only the display currency is read.
	currency := "USD"
	if cfg, err := config.Load(); err == nil {
		currency = cfg.Engine.Currency
	}

	assessment, err := service.NewLoanService(zerolog.Nop()).Assess(model.LoanApplication(c.req))
	if err != nil {
		return usageError(err)
	}

	printMarkdown(report.NewFormatter(currency).LoanMarkdown(assessment))
	return subcommands.ExitSuccess
}
