// internal/core/usecases/duration.go
package usecases

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DurationStyle selects how minute counts are worded.
type DurationStyle int

const (
	// StyleCompat always says "hours" and "minutes", whatever the count.
	// This is the wording existing voice front-ends expect.
	StyleCompat DurationStyle = iota

	// StyleNatural pluralizes units and drops a zero minute part.
	StyleNatural
)

// ParseDurationStyle maps "compat" and "natural" to a style.
func ParseDurationStyle(s string) (DurationStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "compat":
		return StyleCompat, nil
	case "natural":
		return StyleNatural, nil
	default:
		return StyleCompat, fmt.Errorf("unknown duration style %q", s)
	}
}

func (s DurationStyle) String() string {
	if s == StyleNatural {
		return "natural"
	}
	return "compat"
}

// Formatter turns the distance between two instants into spoken text.
// The zero value uses StyleCompat.
type Formatter struct {
	Style DurationStyle
}

// Format returns the rounded absolute distance between from and to. ok is
// false when either instant is the zero time, meaning no duration applies.
func (f Formatter) Format(from, to time.Time) (text string, ok bool) {
	if from.IsZero() || to.IsZero() {
		return "", false
	}

	minutes := diffMinutes(from, to)
	if f.Style == StyleNatural {
		return naturalMinutes(minutes), true
	}
	return compatMinutes(minutes), true
}

// FormatDuration formats with StyleCompat.
func FormatDuration(from, to time.Time) (string, bool) {
	return Formatter{}.Format(from, to)
}

func diffMinutes(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		d = -d
	}
	return int(math.Round(d.Minutes()))
}

func compatMinutes(m int) string {
	if m > 60 {
		return fmt.Sprintf("%d hours and %d minutes", m/60, m%60)
	}
	return fmt.Sprintf("%d minutes", m)
}

func naturalMinutes(m int) string {
	h, rem := m/60, m%60

	var parts []string
	if h > 0 {
		parts = append(parts, plural(h, "hour"))
	}
	if rem > 0 || h == 0 {
		parts = append(parts, plural(rem, "minute"))
	}
	return strings.Join(parts, " and ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
