// Package cli implements the riskctl subcommands.
package cli

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/safespace/risk-dashboard/internal/config"
	"github.com/safespace/risk-dashboard/internal/database"
	"github.com/safespace/risk-dashboard/internal/logger"
	"github.com/safespace/risk-dashboard/internal/report"
	"github.com/safespace/risk-dashboard/internal/repository"
	"github.com/safespace/risk-dashboard/internal/service"
)

// Commands lists every riskctl subcommand.
var Commands = []subcommands.Command{
	&tickersCmd{},
	&simulateCmd{},
	&loanCmd{},
	&generateCmd{},
	&importCmd{},
}

// stdout receives rendered reports.
var stdout io.Writer = os.Stdout

// env is the configuration and services shared by the subcommands.
type env struct {
	cfg       *config.Config
	log       zerolog.Logger
	db        *sql.DB
	repo      *repository.PriceRepository
	prices    *service.PriceService
	formatter *report.Formatter
}

// newEnv loads configuration and opens the price source.
// Log output goes to stderr so reports can be piped.
func newEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	e := &env{
		cfg:       cfg,
		log:       logger.NewWithWriter(logger.Config{Level: cfg.Log.Level, Pretty: true}, os.Stderr),
		formatter: report.NewFormatter(cfg.Engine.Currency),
	}

	if cfg.Prices.DBPath != "" {
		db, err := database.Open(cfg.Prices.DBPath)
		if err != nil {
			return nil, err
		}
		e.db = db
		e.repo = repository.NewPriceRepository(db)
	}

	source := service.NewSource(cfg.Prices.DataPath, e.repo)
	e.prices = service.NewPriceService(source, service.SyntheticGenerator(cfg.Prices.Seed()), e.log)

	return e, nil
}

func (e *env) Close() {
	if e.db != nil {
		if err := e.db.Close(); err != nil {
			e.log.Warn().Err(err).Msg("Failed to close database")
		}
	}
}

// printMarkdown renders md for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		out = md
	}
	fmt.Fprint(stdout, out)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

func usageError(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitUsageError
}
