package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/safespace/risk-dashboard/internal/database"
	"github.com/safespace/risk-dashboard/internal/model"
	"github.com/safespace/risk-dashboard/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db     *sql.DB
	prices *PriceService
}

// NewSystemService creates a new SystemService.
// db may be nil when prices are served from a CSV file only.
func NewSystemService(db *sql.DB, prices *PriceService) *SystemService {
	return &SystemService{
		db:     db,
		prices: prices,
	}
}

// DatabaseConfigured reports whether a SQLite price store is in use.
func (s *SystemService) DatabaseConfigured() bool {
	return s.db != nil
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	if s.db == nil {
		return nil
	}
	return database.HealthCheck(s.db)
}

// PriceCache reports the state of the memoized price dataset, loading it if needed.
func (s *SystemService) PriceCache(ctx context.Context) model.PriceCacheStatus {
	snap := s.prices.Snapshot(ctx)
	return model.PriceCacheStatus{
		Source:       snap.Source,
		Tickers:      len(snap.Series.Tickers()),
		Observations: len(snap.Series),
		Violations:   len(snap.Violations),
		LoadedAt:     snap.LoadedAt,
	}
}

// CheckVersion returns the application and schema versions and the enabled features.
func (s *SystemService) CheckVersion(ctx context.Context) (model.VersionInfo, error) {
	info := model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  "none",
		DataSource: s.prices.Source(ctx),
		Features: map[string]bool{
			"sqlite_store":     s.db != nil,
			"synthetic_prices": true,
			"date_alignment":   true,
			"loan_assessment":  true,
		},
	}

	if s.db != nil {
		v, err := database.SchemaVersion(s.db)
		if err != nil {
			return model.VersionInfo{}, fmt.Errorf("failed to read schema version: %w", err)
		}
		info.DbVersion = strconv.FormatInt(v, 10)
	}

	return info, nil
}
