package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/safespace/risk-dashboard/internal/service"
)

// PriceReloadJob drops the memoized price dataset and loads it again, so that
// dataset changes on disk or in the database are picked up without a restart.
type PriceReloadJob struct {
	prices  *service.PriceService
	timeout time.Duration
	log     zerolog.Logger
}

// NewPriceReloadJob creates a new price reload job
func NewPriceReloadJob(prices *service.PriceService, log zerolog.Logger) *PriceReloadJob {
	return &PriceReloadJob{
		prices:  prices,
		timeout: time.Minute,
		log:     log.With().Str("job", "price_reload").Logger(),
	}
}

// Name returns the job name
func (j *PriceReloadJob) Name() string {
	return "price_reload"
}

// Run reloads the dataset. A failing source is not an error: the service falls
// back to synthetic prices, which is reported in the log.
func (j *PriceReloadJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	snap := j.prices.Reload(ctx)

	j.log.Info().
		Str("source", string(snap.Source)).
		Int("observations", len(snap.Series)).
		Msg("Price dataset reloaded")

	return nil
}
