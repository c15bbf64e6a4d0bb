package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/dataset"
	"github.com/safespace/risk-dashboard/internal/model"
)

// loadTimeout bounds a shared dataset load.
const loadTimeout = 30 * time.Second

// PriceSnapshot is one memoized load of the price dataset.
type PriceSnapshot struct {
	Series     model.PriceSeries
	Source     model.DataSource
	Violations []model.PriceViolation
	LoadedAt   time.Time
}

// PriceService supplies the price series used by simulations.
//
// The first call loads the configured source; when that fails for any reason the
// synthetic generator's output is substituted. Either result is memoized until
// Invalidate is called, after which the next call retries the real source.
type PriceService struct {
	source    PriceSource
	generator func() model.PriceSeries
	log       zerolog.Logger

	mu         sync.RWMutex
	snapshot   *PriceSnapshot
	generation uint64
	group      singleflight.Group
}

// NewPriceService creates a PriceService reading from source and falling back to generator.
func NewPriceService(source PriceSource, generator func() model.PriceSeries, log zerolog.Logger) *PriceService {
	return &PriceService{
		source:    source,
		generator: generator,
		log:       log.With().Str("component", "prices").Logger(),
	}
}

// SyntheticGenerator returns a generator producing the default synthetic dataset for seed.
func SyntheticGenerator(seed uint64) func() model.PriceSeries {
	return func() model.PriceSeries {
		return dataset.Generate(dataset.DefaultGeneratorConfig(seed))
	}
}

// Snapshot returns the memoized dataset, loading it on a cache miss.
// Concurrent callers during a load share the same load.
func (s *PriceService) Snapshot(ctx context.Context) *PriceSnapshot {
	s.mu.RLock()
	snap, gen := s.snapshot, s.generation
	s.mu.RUnlock()
	if snap != nil {
		return snap
	}

	v, _, _ := s.group.Do(fmt.Sprintf("prices-%d", gen), func() (interface{}, error) {
		s.mu.RLock()
		cached := s.snapshot
		s.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		// The load is shared and memoized, so it must not inherit the caller's cancellation.
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		loaded := s.load(loadCtx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.generation == gen {
			s.snapshot = loaded
		}
		return loaded, nil
	})

	return v.(*PriceSnapshot)
}

// Prices returns the memoized price series.
func (s *PriceService) Prices(ctx context.Context) model.PriceSeries {
	return s.Snapshot(ctx).Series
}

// Source reports whether the memoized dataset is real or synthetic.
func (s *PriceService) Source(ctx context.Context) model.DataSource {
	return s.Snapshot(ctx).Source
}

// Invalidate clears the memoized dataset so the next call reloads the real source.
func (s *PriceService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = nil
	s.generation++
	s.log.Info().Msg("Price cache invalidated")
}

// Reload invalidates the cache and loads the dataset again.
func (s *PriceService) Reload(ctx context.Context) *PriceSnapshot {
	s.Invalidate()
	return s.Snapshot(ctx)
}

// Tickers returns the distinct tickers of the dataset, sorted.
func (s *PriceService) Tickers(ctx context.Context) []string {
	return s.Prices(ctx).Tickers()
}

// DateBounds returns the earliest and latest observation dates of the dataset.
func (s *PriceService) DateBounds(ctx context.Context) model.DateRange {
	bounds, _ := s.Prices(ctx).Bounds()
	return bounds
}

// Series returns the observations of ticker inside r, sorted by date.
// Returns ErrTickerNotFound when the dataset has no observation for ticker at all.
func (s *PriceService) Series(ctx context.Context, ticker string, r model.DateRange) (model.PriceSeries, error) {
	prices := s.Prices(ctx)

	found := false
	for _, p := range prices {
		if p.Ticker == ticker {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrTickerNotFound, ticker)
	}

	return prices.Filter(ticker, r), nil
}

func (s *PriceService) load(ctx context.Context) *PriceSnapshot {
	snap := &PriceSnapshot{Source: model.SourceDataset, LoadedAt: time.Now().UTC()}

	series, err := s.source.Load(ctx)
	if err != nil {
		s.log.Warn().
			Err(err).
			Str("source", s.source.Name()).
			Msg("Price dataset unavailable, using synthetic prices")
		series = s.generator()
		snap.Source = model.SourceSynthetic
	}

	snap.Series = series
	snap.Violations = dataset.Validate(series)
	if len(snap.Violations) > 0 {
		s.log.Warn().
			Int("violations", len(snap.Violations)).
			Str("first_ticker", snap.Violations[0].Ticker).
			Str("first_reason", snap.Violations[0].Reason).
			Msg("Price dataset breaks invariants")
	}

	s.log.Info().
		Str("source", string(snap.Source)).
		Int("observations", len(series)).
		Int("tickers", len(series.Tickers())).
		Msg("Price dataset loaded")

	return snap
}
