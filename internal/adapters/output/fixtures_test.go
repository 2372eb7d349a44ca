// internal/adapters/output/fixtures_test.go
package output

import (
	"fmt"

	"openhours/internal/core/domain"
	"openhours/internal/core/usecases"
	"openhours/internal/testutil"
)

func commonsSchedule() *domain.DaySchedule {
	return &domain.DaySchedule{
		FacilityID: "1447",
		Status:     domain.DailyStatusOpen,
		Windows: []domain.TimeWindow{
			{Start: domain.MustParseTimeOfDay("07:00"), End: domain.MustParseTimeOfDay("10:00"), Label: "Breakfast"},
			{Start: domain.MustParseTimeOfDay("11:00"), End: domain.MustParseTimeOfDay("14:00"), Label: "Lunch"},
		},
	}
}

// openReport: 08:30, abierto hasta las 10:00.
func openReport() *domain.StatusReport {
	return &domain.StatusReport{
		Facility:    domain.NewFacility("1447", "Commons Cafe"),
		CheckedAt:   testutil.At(8, 30),
		Result:      domain.OpenUntil(testutil.At(10, 0)),
		Duration:    "1 hours and 30 minutes",
		HasDuration: true,
		Message:     "Commons Cafe is currently open. However, it will close in 1 hours and 30 minutes.",
		Schedule:    commonsSchedule(),
	}
}

// closedReport: 15:00, cerrado el resto del día.
func closedReport() *domain.StatusReport {
	return &domain.StatusReport{
		Facility:  domain.NewFacility("1448", "Lakeside Grill"),
		CheckedAt: testutil.At(15, 0),
		Result:    domain.ClosedForDay(),
		Message:   "Lakeside Grill is currently closed. It will remain closed for the remainder of the day.",
		Schedule:  &domain.DaySchedule{FacilityID: "1448", Status: domain.DailyStatusClosed},
	}
}

func unavailableReport() (*domain.StatusReport, error) {
	return &domain.StatusReport{
		Facility:  domain.NewFacility("1449", "North Market"),
		CheckedAt: testutil.At(8, 30),
		Message:   usecases.AnnounceUnavailable("North Market"),
	}, fmt.Errorf("%w: upstream 503", domain.ErrScheduleUnavailable)
}

func sampleBoard() []usecases.BoardEntry {
	down, err := unavailableReport()
	return []usecases.BoardEntry{
		{Report: openReport()},
		{Report: closedReport()},
		{Report: down, Err: err},
	}
}

