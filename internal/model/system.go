package model

import "time"

// VersionInfo contains version and feature information for the application.
type VersionInfo struct {
	AppVersion string          `json:"app_version"`
	DbVersion  string          `json:"db_version"`
	DataSource DataSource      `json:"data_source"`
	Features   map[string]bool `json:"features"`
}

// PriceCacheStatus describes the memoized price dataset.
type PriceCacheStatus struct {
	Source       DataSource `json:"source"`
	Tickers      int        `json:"tickers"`
	Observations int        `json:"observations"`
	Violations   int        `json:"violations"`
	LoadedAt     time.Time  `json:"loaded_at"`
}
