// internal/core/domain/clock.go
package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock hour and minute with no date attached.
// 24:00 is accepted as the end of the day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "H:MM" or "HH:MM". Any failure wraps
// ErrMalformedWindow so callers can tell bad provider data from outages.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	raw := strings.TrimSpace(s)

	hh, mm, ok := strings.Cut(raw, ":")
	if !ok || hh == "" || len(hh) > 2 || len(mm) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q is not HH:MM", ErrMalformedWindow, s)
	}

	hour, err := parseClockField(hh)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: hour in %q: %v", ErrMalformedWindow, s, err)
	}
	minute, err := parseClockField(mm)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: minute in %q: %v", ErrMalformedWindow, s, err)
	}

	if hour > 24 || minute > 59 || (hour == 24 && minute != 0) {
		return TimeOfDay{}, fmt.Errorf("%w: %q out of range", ErrMalformedWindow, s)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseClockTime parses an instant of the day, e.g. an evaluation time.
// Unlike ParseTimeOfDay it rejects 24:00, which only marks a window end and
// would land on the next calendar day.
func ParseClockTime(s string) (TimeOfDay, error) {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		return TimeOfDay{}, err
	}
	if t.Hour == 24 {
		return TimeOfDay{}, fmt.Errorf("%w: %q is an end of day, not a time", ErrMalformedWindow, s)
	}
	return t, nil
}

// parseClockField only accepts ASCII digits; strconv alone would let "+7" through.
func parseClockField(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-numeric %q", s)
		}
	}
	return strconv.Atoi(s)
}

// MustParseTimeOfDay is ParseTimeOfDay for literals known to be valid.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// On places the time of day on day's calendar date, in day's location, with
// seconds and nanoseconds zeroed. Every call builds a new value.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, day.Location())
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is earlier in the day than o.
func (t TimeOfDay) Before(o TimeOfDay) bool {
	return t.Minutes() < o.Minutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
