//go:build unit || e2e

package builder

import "time"

// Now is the fixed "current time" shared by domain and use case tests.
var Now = time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// April is shorthand for a 2025-04 date, the month most scenarios use.
func April(day int) time.Time {
	return Day(2025, time.April, day)
}
