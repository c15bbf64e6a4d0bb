package service

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog"

	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/dataset"
	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/repository"
)

// ImportService loads CSV datasets into the SQLite price store.
type ImportService struct {
	repo   *repository.PriceRepository
	prices *PriceService
	log    zerolog.Logger
}

// NewImportService creates a new ImportService.
// prices may be nil when no cache needs invalidating, as in the CLI.
func NewImportService(repo *repository.PriceRepository, prices *PriceService, log zerolog.Logger) *ImportService {
	return &ImportService{
		repo:   repo,
		prices: prices,
		log:    log.With().Str("component", "import").Logger(),
	}
}

// ImportCSV parses a CSV dataset from r and upserts it into the price store.
// The import is rejected when any row breaks a dataset invariant.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader) (model.PriceImport, error) {
	series, err := dataset.Read(r)
	if err != nil {
		return model.PriceImport{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToImportPrices, err)
	}
	return s.Import(ctx, series)
}

// Import upserts series into the price store and invalidates the price cache.
func (s *ImportService) Import(ctx context.Context, series model.PriceSeries) (model.PriceImport, error) {
	sorted := make(model.PriceSeries, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Ticker != sorted[j].Ticker {
			return sorted[i].Ticker < sorted[j].Ticker
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})

	if violations := dataset.Validate(sorted); len(violations) > 0 {
		v := violations[0]
		return model.PriceImport{}, fmt.Errorf("%w: %d invalid rows, first %s on %s: %s",
			apperrors.ErrFailedToImportPrices, len(violations), v.Ticker, v.Date.Format("2006-01-02"), v.Reason)
	}

	rows, err := s.repo.UpsertPrices(ctx, sorted)
	if err != nil {
		return model.PriceImport{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToImportPrices, err)
	}

	if s.prices != nil {
		s.prices.Invalidate()
	}

	result := model.PriceImport{Rows: rows, Tickers: sorted.Tickers()}
	s.log.Info().
		Int("rows", result.Rows).
		Strs("tickers", result.Tickers).
		Msg("Prices imported")

	return result, nil
}
