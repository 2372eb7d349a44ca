// internal/core/usecases/resolver.go
package usecases

import (
	"time"

	"openhours/internal/core/domain"
)

// Resolve decides whether the facility is open at now and when that changes.
//
// A closed daily status wins over any windows. Otherwise a window is open on
// [start, end]: now equal to start is open, and now equal to end is still
// open with nothing left. When no window contains now, the earliest window
// that has not started yet is the reopen boundary; when none remain the
// result has no boundary.
//
// Window instants are built on now's date and location. Resolve is pure and
// safe for concurrent use.
func Resolve(schedule domain.DaySchedule, now time.Time) domain.StatusResult {
	if schedule.ClosedAllDay() {
		return domain.ClosedForDay()
	}

	var next time.Time
	for _, w := range schedule.Windows {
		start, end := w.Bounds(now)

		if now.After(end) {
			continue
		}
		if !now.Before(start) {
			return domain.OpenUntil(end)
		}
		// Upcoming. Keep scanning: a later entry may still contain now if
		// the provider's list is out of order.
		if next.IsZero() || start.Before(next) {
			next = start
		}
	}

	if next.IsZero() {
		return domain.ClosedForDay()
	}
	return domain.ClosedUntil(next)
}
