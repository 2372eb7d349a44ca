// Package cache keeps fetched day schedules between queries. Schedules are
// keyed by facility and local calendar day, so a new day never reuses
// yesterday's windows.
package cache

import (
	"strings"
	"time"
)

const keyPrefix = "openhours:schedule:"

// Key returns the cache key for facilityID on day's calendar date in day's
// location, e.g. "openhours:schedule:1447:2024-03-12".
func Key(facilityID string, day time.Time) string {
	var b strings.Builder
	b.Grow(len(keyPrefix) + len(facilityID) + 11)
	b.WriteString(keyPrefix)
	b.WriteString(facilityID)
	b.WriteByte(':')
	b.WriteString(day.Format(time.DateOnly))
	return b.String()
}
