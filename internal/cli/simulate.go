package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"

	"github.com/safespace/risk-dashboard/internal/api/request"
	"github.com/safespace/risk-dashboard/internal/chart"
	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/service"
	"github.com/safespace/risk-dashboard/internal/validation"
)

type simulateCmd struct {
	allocations string
	amount      float64
	start       string
	end         string
	alignment   string
	chart       string
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "simulate a portfolio and score its risk" }
func (*simulateCmd) Usage() string {
	return `riskctl simulate [-a <ticker=pct,...>] [-amount <usd>] [-start <date>] [-end <date>] [-align date|position] [-chart <file.png>] <ticker>...

  Simulates investing in the given tickers and prints per-asset metrics, the
  portfolio summary and the composite risk score.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.allocations, "a", "", "allocations as ticker=percent pairs, e.g. AAPL=60,MSFT=40 (default even split)")
	f.Float64Var(&c.amount, "amount", service.DefaultAmount, "total investment amount")
	f.StringVar(&c.start, "start", "", "first date of the window (default dataset start)")
	f.StringVar(&c.end, "end", "", "last date of the window (default dataset end)")
	f.StringVar(&c.alignment, "align", "", "return alignment: date or position (default from RETURN_ALIGNMENT)")
	f.StringVar(&c.chart, "chart", "", "write the cumulative returns chart to this PNG file")
}

func (c *simulateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req, err := c.request(f.Args())
	if err != nil {
		return usageError(err)
	}
	if err := validation.ValidateSimulationRequest(req); err != nil {
		return usageError(err)
	}
	simReq, err := req.ToModel()
	if err != nil {
		return usageError(err)
	}

	e, err := newEnv()
	if err != nil {
		return fail(err)
	}
	defer e.Close()

	svc := service.NewSimulationService(e.prices, model.Alignment(e.cfg.Engine.Alignment), e.log)
	run, err := svc.Run(ctx, simReq)
	if err != nil {
		return fail(err)
	}

	printMarkdown(e.formatter.SimulationMarkdown(run))

	if c.chart != "" {
		png, err := chart.CumulativeReturns(run)
		if err != nil {
			return fail(err)
		}
		if err := os.WriteFile(c.chart, png, 0o644); err != nil {
			return fail(fmt.Errorf("failed to write chart: %w", err))
		}
	}

	return subcommands.ExitSuccess
}

func (c *simulateCmd) request(tickers []string) (request.SimulationRequest, error) {
	amount := c.amount
	req := request.SimulationRequest{
		Tickers:   tickers,
		Amount:    &amount,
		StartDate: c.start,
		EndDate:   c.end,
		Alignment: c.alignment,
	}

	if c.allocations != "" {
		allocations, err := parseAllocations(c.allocations)
		if err != nil {
			return request.SimulationRequest{}, err
		}
		req.Allocations = allocations
	}

	return req, nil
}

// parseAllocations reads "AAPL=60,MSFT=40".
func parseAllocations(s string) (map[string]int, error) {
	out := make(map[string]int)
	for _, pair := range strings.Split(s, ",") {
		ticker, pct, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("invalid allocation %q: want ticker=percent", pair)
		}
		w, err := strconv.Atoi(pct)
		if err != nil {
			return nil, fmt.Errorf("invalid allocation %q: %w", pair, err)
		}
		if _, dup := out[ticker]; dup {
			return nil, fmt.Errorf("duplicate allocation for ticker %s", ticker)
		}
		out[ticker] = w
	}
	return out, nil
}
