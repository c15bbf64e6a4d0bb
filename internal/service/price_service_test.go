package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/dataset"
	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/service"
	"github.com/safespace/risk-dashboard/internal/testutil"
)

func TestPriceService_Prices(t *testing.T) {
	t.Run("memoizes the first load", func(t *testing.T) {
		source := testutil.NewMockPriceSource(testutil.TwoAssetSeries())
		svc := service.NewPriceService(source, service.SyntheticGenerator(1), testutil.NewTestLogger(t))

		first := svc.Prices(t.Context())
		second := svc.Prices(t.Context())

		assert.Len(t, first, 6)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, source.Loads())
		assert.Equal(t, model.SourceDataset, svc.Source(t.Context()))
	})

	t.Run("falls back to synthetic prices when the source fails", func(t *testing.T) {
		source := testutil.NewMockPriceSource(nil).WithError(errors.New("file not found"))
		svc := service.NewPriceService(source, service.SyntheticGenerator(1), testutil.NewTestLogger(t))

		snap := svc.Snapshot(t.Context())

		assert.Equal(t, model.SourceSynthetic, snap.Source)
		assert.Len(t, snap.Series, len(dataset.DefaultTickers)*600)
		assert.ElementsMatch(t, dataset.DefaultTickers, snap.Series.Tickers())
		assert.Empty(t, snap.Violations)
	})

	t.Run("memoizes the fallback until invalidated", func(t *testing.T) {
		source := testutil.NewMockPriceSource(nil).WithError(errors.New("file not found"))
		svc := service.NewPriceService(source, service.SyntheticGenerator(1), testutil.NewTestLogger(t))

		svc.Prices(t.Context())
		source.WithError(nil).WithSeries(testutil.TwoAssetSeries())
		assert.Equal(t, model.SourceSynthetic, svc.Snapshot(t.Context()).Source)
		assert.Equal(t, 1, source.Loads())

		svc.Invalidate()

		assert.Equal(t, model.SourceDataset, svc.Snapshot(t.Context()).Source)
		assert.Len(t, svc.Prices(t.Context()), 6)
		assert.Equal(t, 2, source.Loads())
	})

	t.Run("reload picks up new data", func(t *testing.T) {
		source := testutil.NewMockPriceSource(testutil.TwoAssetSeries())
		svc := service.NewPriceService(source, service.SyntheticGenerator(1), testutil.NewTestLogger(t))
		svc.Prices(t.Context())

		source.WithSeries(testutil.NewPriceSeries("C").Series())
		snap := svc.Reload(t.Context())

		assert.Equal(t, []string{"C"}, snap.Series.Tickers())
	})

	t.Run("concurrent callers share one load", func(t *testing.T) {
		source := testutil.NewMockPriceSource(testutil.TwoAssetSeries())
		svc := service.NewPriceService(source, service.SyntheticGenerator(1), testutil.NewTestLogger(t))

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				svc.Prices(t.Context())
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, source.Loads())
	})

	t.Run("reports invariant violations", func(t *testing.T) {
		series := testutil.NewPriceSeries("A").WithPrices(100, -1, 120).Series()
		svc := testutil.NewTestPriceService(t, series)

		snap := svc.Snapshot(t.Context())

		require.Len(t, snap.Violations, 1)
		assert.Equal(t, "A", snap.Violations[0].Ticker)
		assert.Equal(t, model.SourceDataset, snap.Source)
	})
}

func TestPriceService_Lookups(t *testing.T) {
	svc := testutil.NewTestPriceService(t, testutil.TwoAssetSeries())

	t.Run("lists tickers", func(t *testing.T) {
		assert.Equal(t, []string{"A", "B"}, svc.Tickers(t.Context()))
	})

	t.Run("reports date bounds", func(t *testing.T) {
		bounds := svc.DateBounds(t.Context())
		assert.Equal(t, testutil.Date(2024, time.January, 1), bounds.Start)
		assert.Equal(t, testutil.Date(2024, time.March, 1), bounds.End)
	})

	t.Run("returns the series of one ticker", func(t *testing.T) {
		series, err := svc.Series(t.Context(), "B", model.DateRange{
			Start: testutil.Date(2024, time.February, 1),
			End:   testutil.Date(2024, time.December, 31),
		})
		require.NoError(t, err)
		assert.Equal(t, []float64{48, 45}, series.Closes())
	})

	t.Run("returns ErrTickerNotFound for an unknown ticker", func(t *testing.T) {
		_, err := svc.Series(t.Context(), "ZZZ", fullRange())
		assert.ErrorIs(t, err, apperrors.ErrTickerNotFound)
	})
}

func TestPriceSources(t *testing.T) {
	t.Run("csv source reads the dataset file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prices.csv")
		require.NoError(t, dataset.WriteFile(path, testutil.TwoAssetSeries()))

		svc := service.NewPriceService(service.NewCSVSource(path), service.SyntheticGenerator(1), testutil.NewTestLogger(t))
		snap := svc.Snapshot(t.Context())

		assert.Equal(t, model.SourceDataset, snap.Source)
		assert.Equal(t, []string{"A", "B"}, snap.Series.Tickers())
	})

	t.Run("csv source falls back when the file is missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.csv")

		svc := service.NewPriceService(service.NewCSVSource(path), service.SyntheticGenerator(1), testutil.NewTestLogger(t))

		assert.Equal(t, model.SourceSynthetic, svc.Snapshot(t.Context()).Source)
	})

	t.Run("csv source falls back on a non-finite price", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prices.csv")
		require.NoError(t, os.WriteFile(path, []byte("date,ticker,close_price\n2024-01-31,A,100\n2024-02-29,A,NaN\n"), 0o600))

		svc := service.NewPriceService(service.NewCSVSource(path), service.SyntheticGenerator(1), testutil.NewTestLogger(t))
		snap := svc.Snapshot(t.Context())

		assert.Equal(t, model.SourceSynthetic, snap.Source)
		assert.Empty(t, snap.Violations)
	})

	t.Run("database source reads the price table", func(t *testing.T) {
		db := testutil.SetupTestDBWithPrices(t, testutil.TwoAssetSeries())

		svc := testutil.NewTestDatabasePriceService(t, db)
		snap := svc.Snapshot(t.Context())

		assert.Equal(t, model.SourceDataset, snap.Source)
		assert.Len(t, snap.Series, 6)
		assert.Equal(t, testutil.Date(2024, time.January, 1), snap.Series[0].Date)
	})

	t.Run("a cancelled first caller still loads the database", func(t *testing.T) {
		db := testutil.SetupTestDBWithPrices(t, testutil.TwoAssetSeries())
		svc := testutil.NewTestDatabasePriceService(t, db)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		first := svc.Snapshot(ctx)
		later := svc.Snapshot(t.Context())

		assert.Equal(t, model.SourceDataset, first.Source)
		assert.Equal(t, model.SourceDataset, later.Source)
		assert.Len(t, later.Series, 6)
	})

	t.Run("database source falls back on an empty table", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		source := service.NewDatabaseSource(testutil.NewTestPriceRepository(t, db))
		_, err := source.Load(t.Context())
		assert.ErrorIs(t, err, apperrors.ErrEmptyDataset)

		svc := testutil.NewTestDatabasePriceService(t, db)
		assert.Equal(t, model.SourceSynthetic, svc.Snapshot(t.Context()).Source)
	})

	t.Run("selects the database source when a repository is given", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		assert.Equal(t, "sqlite", service.NewSource("prices.csv", testutil.NewTestPriceRepository(t, db)).Name())
		assert.Equal(t, "csv:prices.csv", service.NewSource("prices.csv", nil).Name())
	})
}
