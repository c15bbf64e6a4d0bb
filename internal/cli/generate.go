package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/safespace/risk-dashboard/internal/dataset"
)

type generateCmd struct {
	seed uint64
	out  string
}

func (*generateCmd) Name() string     { return "generate" }
func (*generateCmd) Synopsis() string { return "write a synthetic price dataset" }
func (*generateCmd) Usage() string {
	return `riskctl generate [-seed n] [-o file.csv]

  Writes the synthetic dataset served when no real one is available.
  Output goes to stdout unless -o is given.
`
}

func (c *generateCmd) SetFlags(f *flag.FlagSet) {
	f.Uint64Var(&c.seed, "seed", 42, "random seed")
	f.StringVar(&c.out, "o", "", "output file")
}

func (c *generateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series := dataset.Generate(dataset.DefaultGeneratorConfig(c.seed))

	if c.out == "" {
		if err := dataset.Write(stdout, series); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}

	if err := dataset.WriteFile(c.out, series); err != nil {
		return fail(err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d observations to %s\n", len(series), c.out)
	return subcommands.ExitSuccess
}
