package testutil

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"

	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/repository"
	"github.com/safespace/risk-dashboard/internal/service"
)

// NewTestLogger returns a logger writing to the test log.
func NewTestLogger(t *testing.T) zerolog.Logger {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.WarnLevel)
}

// NewTestPriceService creates a PriceService serving series, with a seeded
// synthetic fallback.
func NewTestPriceService(t *testing.T, series model.PriceSeries) *service.PriceService {
	t.Helper()

	return NewTestPriceServiceWithSource(t, NewMockPriceSource(series))
}

// NewTestPriceServiceWithSource creates a PriceService reading source, with a
// seeded synthetic fallback.
func NewTestPriceServiceWithSource(t *testing.T, source service.PriceSource) *service.PriceService {
	t.Helper()

	return service.NewPriceService(source, service.SyntheticGenerator(42), NewTestLogger(t))
}

// NewTestDatabasePriceService creates a PriceService reading the price table of db.
func NewTestDatabasePriceService(t *testing.T, db *sql.DB) *service.PriceService {
	t.Helper()

	return service.NewPriceService(
		service.NewDatabaseSource(NewTestPriceRepository(t, db)),
		service.SyntheticGenerator(42),
		NewTestLogger(t),
	)
}

func NewTestSimulationService(t *testing.T, prices *service.PriceService) *service.SimulationService {
	t.Helper()

	return service.NewSimulationService(prices, model.AlignByDate, NewTestLogger(t))
}

func NewTestLoanService(t *testing.T) *service.LoanService {
	t.Helper()

	return service.NewLoanService(NewTestLogger(t))
}

func NewTestSystemService(t *testing.T, db *sql.DB, prices *service.PriceService) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, prices)
}

func NewTestPriceRepository(t *testing.T, db *sql.DB) *repository.PriceRepository {
	t.Helper()

	return repository.NewPriceRepository(db)
}

func NewTestImportService(t *testing.T, db *sql.DB, prices *service.PriceService) *service.ImportService {
	t.Helper()

	return service.NewImportService(NewTestPriceRepository(t, db), prices, NewTestLogger(t))
}
