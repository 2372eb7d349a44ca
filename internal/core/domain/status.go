// internal/core/domain/status.go
package domain

import "time"

// StatusResult is the resolver's decision. Boundary is the close time when
// open, the next reopen time when closed and another window remains today,
// and the zero time otherwise.
type StatusResult struct {
	IsOpen   bool
	Boundary time.Time
}

// OpenUntil builds an open result closing at end.
func OpenUntil(end time.Time) StatusResult {
	return StatusResult{IsOpen: true, Boundary: end}
}

// ClosedUntil builds a closed result reopening at start.
func ClosedUntil(start time.Time) StatusResult {
	return StatusResult{IsOpen: false, Boundary: start}
}

// ClosedForDay builds the closed-for-the-rest-of-the-day result.
func ClosedForDay() StatusResult {
	return StatusResult{}
}

// HasBoundary reports whether the state changes again today.
func (r StatusResult) HasBoundary() bool {
	return !r.Boundary.IsZero()
}

// StatusReport is everything produced for a single facility query.
type StatusReport struct {
	Facility  Facility
	CheckedAt time.Time
	Result    StatusResult

	// Duration is the formatted time until Result.Boundary. HasDuration is
	// false when no boundary applies.
	Duration    string
	HasDuration bool

	// Message is the sentence handed back to the conversational front-end.
	Message string

	// Schedule is nil when the provider could not be reached.
	Schedule *DaySchedule
}

// Available reports whether the report carries a real decision.
func (r StatusReport) Available() bool {
	return r.Schedule != nil
}
