// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Week view, twilight bands, IANA zones with per-date DST, JSON export
// 0.2.0 - Transit and moon phase, altitude sparklines in Day view
// 0.1.0 - Initial release: Sun/Moon rise and set, summary table, TUI day view
