package instrumentation

import "github.com/xpressai/gcalendar-mcp/internal/logging"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when recording metrics with calendar identifiers.

// ExtractCalendarDomain reduces a calendar identifier to a low-cardinality value.
// Google calendar IDs are usually email-like addresses; the domain part is kept
// so related calendars collapse into one label value. The special "primary"
// alias is passed through unchanged.
//
// Example:
//
//	ExtractCalendarDomain("primary")            // "primary"
//	ExtractCalendarDomain("jane@example.com")   // "example.com"
//	ExtractCalendarDomain("team@group.calendar.google.com")  // "group.calendar.google.com"
//	ExtractCalendarDomain("invalid")            // "unknown"
//	ExtractCalendarDomain("")                   // "unknown"
func ExtractCalendarDomain(calendarID string) string {
	if calendarID == "" {
		return "unknown"
	}
	if calendarID == "primary" {
		return "primary"
	}

	if domain := logging.ExtractDomain(calendarID); domain != "" {
		return domain
	}

	return "unknown"
}
