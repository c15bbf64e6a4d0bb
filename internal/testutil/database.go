package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // Test Package

	"github.com/safespace/risk-dashboard/internal/database"
	"github.com/safespace/risk-dashboard/internal/model"
)

// SetupTestDB returns an in-memory price store with the production migrations
// applied. It is closed when the test completes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err, "open test database")
	t.Cleanup(func() { db.Close() })

	// Each connection to :memory: sees its own database.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY",
	} {
		_, err := db.Exec(pragma)
		require.NoError(t, err, pragma)
	}

	require.NoError(t, database.Migrate(db), "migrate test database")
	return db
}

// SetupTestDBWithPrices returns a test price store already holding series.
func SetupTestDBWithPrices(t *testing.T, series model.PriceSeries) *sql.DB {
	t.Helper()

	db := SetupTestDB(t)
	InsertPrices(t, db, series)
	return db
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	//nolint:gosec // G202: table names come from test code only
	err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
	require.NoError(t, err, "count rows in %s", table)
	return count
}

// AssertRowCount asserts that table holds expected rows.
//
//	testutil.AssertRowCount(t, db, "price", 2)
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	if actual := CountRows(t, db, table); actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
