// internal/testutil/fixtures.go
package testutil

import "time"

// Fixture data for tests. Primitive values only so that any package can
// import testutil without creating cycles with domain.

// FixtureDate is the calendar day every clock fixture lives on.
var FixtureDate = time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)

// At returns the fixture date at hh:mm in UTC.
func At(hour, minute int) time.Time {
	return FixtureDate.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// AtSec returns the fixture date at hh:mm:ss in UTC.
func AtSec(hour, minute, second int) time.Time {
	return At(hour, minute).Add(time.Duration(second) * time.Second)
}

// FixtureValidClock contains well formed "HH:MM" strings.
var FixtureValidClock = []string{
	"00:00",
	"07:00",
	"7:30",
	"11:45",
	"23:59",
	"24:00",
}

// FixtureInvalidClock contains strings that must not parse as a time of day.
var FixtureInvalidClock = []string{
	"",
	"7",
	"ab:cd",
	"07:",
	":30",
	"25:00",
	"24:01",
	"12:60",
	"-1:00",
	"07:00:00",
	"7h30",
}

// FixtureBonAppetitPayload mirrors the legacy cafes endpoint for cafe 1447
// with a breakfast and a lunch daypart.
const FixtureBonAppetitPayload = `{
  "cafes": {
    "1447": {
      "name": "Commons Cafe",
      "days": [
        {
          "date": "2024-03-12",
          "status": "open",
          "message": false,
          "dayparts": [
            {"id": "1", "starttime": "07:00", "endtime": "10:00", "label": "Breakfast"},
            {"id": "2", "starttime": "11:00", "endtime": "14:00", "label": "Lunch"}
          ]
        }
      ]
    }
  }
}`
