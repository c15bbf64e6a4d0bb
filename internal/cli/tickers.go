package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/safespace/risk-dashboard/internal/report"
)

type tickersCmd struct{}

func (*tickersCmd) Name() string     { return "tickers" }
func (*tickersCmd) Synopsis() string { return "list the tickers available for simulation" }
func (*tickersCmd) Usage() string {
	return `riskctl tickers

  Lists the tickers of the price dataset with its date bounds.
`
}

func (*tickersCmd) SetFlags(*flag.FlagSet) {}

func (*tickersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := newEnv()
	if err != nil {
		return fail(err)
	}
	defer e.Close()

	snap := e.prices.Snapshot(ctx)
	bounds, _ := snap.Series.Bounds()
	printMarkdown(report.TickersMarkdown(snap.Series.Tickers(), bounds, snap.Source))

	return subcommands.ExitSuccess
}
