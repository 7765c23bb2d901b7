// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - HTTP API, GeoJSON export, SQL and S3 gazetteer sources
// 0.2.0 - Meeus ephemeris, city search, recommendation history in the TUI
// 0.1.0 - Initial release: linear ephemeris, ascendant/midheaven lines, TUI map
