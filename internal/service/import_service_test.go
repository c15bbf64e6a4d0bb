package service_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safespace/risk-dashboard/internal/apperrors"
	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/service"
	"github.com/safespace/risk-dashboard/internal/testutil"
)

func TestImportService_ImportCSV(t *testing.T) {
	const csvData = `date,ticker,close_price
2024-02-01,A,110
2024-01-01,A,100
2024-01-01,B,50
`

	t.Run("stores rows and invalidates the price cache", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		prices := testutil.NewTestDatabasePriceService(t, db)
		assert.Equal(t, model.SourceSynthetic, prices.Snapshot(t.Context()).Source)

		svc := service.NewImportService(testutil.NewTestPriceRepository(t, db), prices, testutil.NewTestLogger(t))

		result, err := svc.ImportCSV(t.Context(), strings.NewReader(csvData))
		require.NoError(t, err)

		assert.Equal(t, 3, result.Rows)
		assert.Equal(t, []string{"A", "B"}, result.Tickers)
		testutil.AssertRowCount(t, db, "price", 3)

		snap := prices.Snapshot(t.Context())
		assert.Equal(t, model.SourceDataset, snap.Source)
		assert.Equal(t, []string{"A", "B"}, snap.Series.Tickers())
	})

	t.Run("upserts existing observations", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewImportService(testutil.NewTestPriceRepository(t, db), nil, testutil.NewTestLogger(t))

		_, err := svc.ImportCSV(t.Context(), strings.NewReader(csvData))
		require.NoError(t, err)
		_, err = svc.ImportCSV(t.Context(), strings.NewReader("date,ticker,close_price\n2024-01-01,A,105\n"))
		require.NoError(t, err)

		testutil.AssertRowCount(t, db, "price", 3)

		series, err := testutil.NewTestPriceRepository(t, db).GetPrices(t.Context())
		require.NoError(t, err)
		assert.Equal(t, testutil.Date(2024, time.January, 1), series[0].Date)
		assert.Equal(t, 105.0, series[0].ClosePrice)
	})

	t.Run("rejects rows breaking dataset invariants", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewImportService(testutil.NewTestPriceRepository(t, db), nil, testutil.NewTestLogger(t))

		_, err := svc.ImportCSV(t.Context(), strings.NewReader("date,ticker,close_price\n2024-01-01,A,0\n"))
		assert.ErrorIs(t, err, apperrors.ErrFailedToImportPrices)

		_, err = svc.ImportCSV(t.Context(), strings.NewReader("date,ticker,close_price\n2024-01-01,A,10\n2024-01-01,A,11\n"))
		assert.ErrorIs(t, err, apperrors.ErrFailedToImportPrices)

		_, err = svc.Import(t.Context(), model.PriceSeries{
			{Date: testutil.Date(2024, time.January, 1), Ticker: "A", ClosePrice: math.NaN()},
		})
		assert.ErrorIs(t, err, apperrors.ErrFailedToImportPrices)

		_, err = svc.ImportCSV(t.Context(), strings.NewReader("date,ticker,close_price\n2024-01-01,A,NaN\n"))
		assert.ErrorIs(t, err, apperrors.ErrDataLoad)

		testutil.AssertRowCount(t, db, "price", 0)
	})

	t.Run("rejects malformed CSV", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := service.NewImportService(testutil.NewTestPriceRepository(t, db), nil, testutil.NewTestLogger(t))

		_, err := svc.ImportCSV(t.Context(), strings.NewReader("date,ticker,close_price\nyesterday,A,10\n"))
		assert.ErrorIs(t, err, apperrors.ErrFailedToImportPrices)
		assert.ErrorIs(t, err, apperrors.ErrDataLoad)
	})
}
