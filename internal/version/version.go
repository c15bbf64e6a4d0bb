// Package version holds the build version, overridden at link time with
// -ldflags "-X github.com/safespace/risk-dashboard/internal/version.Version=...".
package version

// Version is the application version.
var Version = "dev"
