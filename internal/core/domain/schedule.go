// internal/core/domain/schedule.go
package domain

import (
	"fmt"
	"time"
)

// TimeWindow is one contiguous open interval within a single day.
// Start <= End is assumed, not enforced; windows never wrap past midnight.
type TimeWindow struct {
	Start TimeOfDay
	End   TimeOfDay
	Label string // e.g. "Breakfast"; informational only
}

// NewTimeWindow parses provider strings into a window.
func NewTimeWindow(start, end, label string) (TimeWindow, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("window start: %w", err)
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("window end: %w", err)
	}
	return TimeWindow{Start: s, End: e, Label: label}, nil
}

// Bounds returns the window's start and end as instants on now's date.
func (w TimeWindow) Bounds(now time.Time) (start, end time.Time) {
	return w.Start.On(now), w.End.On(now)
}

func (w TimeWindow) String() string {
	if w.Label == "" {
		return fmt.Sprintf("%s-%s", w.Start, w.End)
	}
	return fmt.Sprintf("%s-%s (%s)", w.Start, w.End, w.Label)
}

// DaySchedule is one facility's published schedule for one day.
type DaySchedule struct {
	FacilityID string

	// FacilityName is the display name reported by the provider, if any.
	FacilityName string

	// Date is the day the provider says the schedule is for. Zero when the
	// provider does not say.
	Date time.Time

	Status  DailyStatus
	Windows []TimeWindow
}

// ClosedAllDay reports whether the daily status overrides the windows.
func (d DaySchedule) ClosedAllDay() bool {
	return d.Status.IsClosed()
}

// Clone returns a deep copy so cached schedules cannot be mutated by callers.
func (d DaySchedule) Clone() *DaySchedule {
	c := d
	if d.Windows != nil {
		c.Windows = append([]TimeWindow(nil), d.Windows...)
	}
	return &c
}
