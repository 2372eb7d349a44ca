// internal/core/domain/clock_test.go
package domain

import (
	"testing"
	"time"

	"openhours/internal/testutil"
)

func TestParseTimeOfDay_Valid(t *testing.T) {
	tests := []struct {
		input  string
		hour   int
		minute int
	}{
		{"00:00", 0, 0},
		{"07:00", 7, 0},
		{"7:30", 7, 30},
		{" 11:45 ", 11, 45},
		{"23:59", 23, 59},
		{"24:00", 24, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			testutil.AssertNoError(t, err, "should parse")
			testutil.AssertEqual(t, got, TimeOfDay{Hour: tt.hour, Minute: tt.minute}, "parsed value")
		})
	}

	for _, s := range testutil.FixtureValidClock {
		_, err := ParseTimeOfDay(s)
		testutil.AssertNoError(t, err, "fixture "+s)
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	for _, s := range testutil.FixtureInvalidClock {
		t.Run(s, func(t *testing.T) {
			_, err := ParseTimeOfDay(s)
			testutil.AssertErrorIs(t, err, ErrMalformedWindow, "should be malformed")
		})
	}

	t.Run("sign prefix", func(t *testing.T) {
		_, err := ParseTimeOfDay("+7:00")
		testutil.AssertErrorIs(t, err, ErrMalformedWindow, "sign should be rejected")
	})
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"00:00", TimeOfDay{0, 0}, false},
		{"10:30", TimeOfDay{10, 30}, false},
		{"23:59", TimeOfDay{23, 59}, false},
		{"24:00", TimeOfDay{}, true},
		{"25:00", TimeOfDay{}, true},
		{"7pm", TimeOfDay{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClockTime(tt.input)
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, ErrMalformedWindow, "should be rejected")
				return
			}
			testutil.AssertNoError(t, err, "should parse")
			testutil.AssertEqual(t, got, tt.want, "parsed value")
		})
	}

	t.Run("stays on the same date", func(t *testing.T) {
		day := time.Date(2024, time.March, 12, 8, 0, 0, 0, time.UTC)
		got, err := ParseClockTime("23:59")
		testutil.AssertNoError(t, err, "parse")
		testutil.AssertEqual(t, got.On(day).Day(), 12, "same day")
	})
}

func TestTimeOfDay_On(t *testing.T) {
	loc := time.FixedZone("PT", -8*3600)
	day := time.Date(2024, time.March, 12, 8, 30, 45, 123, loc)

	got := MustParseTimeOfDay("10:15").On(day)

	testutil.AssertEqual(t, got, time.Date(2024, time.March, 12, 10, 15, 0, 0, loc), "same date, zero seconds")
	testutil.AssertEqual(t, got.Location(), loc, "keeps location")

	t.Run("24:00 is next midnight", func(t *testing.T) {
		end := MustParseTimeOfDay("24:00").On(day)
		testutil.AssertEqual(t, end, time.Date(2024, time.March, 13, 0, 0, 0, 0, loc), "midnight rollover")
	})

	t.Run("does not alias the input", func(t *testing.T) {
		before := day
		_ = MustParseTimeOfDay("01:00").On(day)
		testutil.AssertEqual(t, day, before, "input must be untouched")
	})
}

func TestTimeOfDay_TextRoundTrip(t *testing.T) {
	var tod TimeOfDay
	testutil.AssertNoError(t, tod.UnmarshalText([]byte("7:05")), "unmarshal")
	b, err := tod.MarshalText()
	testutil.AssertNoError(t, err, "marshal")
	testutil.AssertEqual(t, string(b), "07:05", "canonical form")

	testutil.AssertErrorIs(t, tod.UnmarshalText([]byte("nope")), ErrMalformedWindow, "bad text")
}

func TestTimeOfDay_Before(t *testing.T) {
	testutil.AssertTrue(t, MustParseTimeOfDay("07:00").Before(MustParseTimeOfDay("07:01")), "earlier")
	testutil.AssertFalse(t, MustParseTimeOfDay("07:00").Before(MustParseTimeOfDay("07:00")), "equal")
}
