package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/safespace/risk-dashboard/internal/service"
)

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "load a CSV dataset into the SQLite price store" }
func (*importCmd) Usage() string {
	return `riskctl import <file.csv>

  Upserts the rows of a CSV dataset into the store at PRICE_DB_PATH.
`
}

func (*importCmd) SetFlags(*flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError(errors.New("expected exactly one CSV file"))
	}

	e, err := newEnv()
	if err != nil {
		return fail(err)
	}
	defer e.Close()

	if e.repo == nil {
		return usageError(errors.New("PRICE_DB_PATH is not set"))
	}

	file, err := os.Open(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	defer file.Close()

	result, err := service.NewImportService(e.repo, nil, e.log).ImportCSV(ctx, file)
	if err != nil {
		return fail(err)
	}

	fmt.Fprintf(stdout, "Imported %d rows for %d tickers\n", result.Rows, len(result.Tickers))
	return subcommands.ExitSuccess
}
