// internal/core/usecases/status_service_test.go
package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"openhours/internal/core/domain"
	"openhours/internal/platform/logx"
	"openhours/internal/testutil"
)

func newTestService(p *mockProvider, now time.Time) *StatusService {
	return NewStatusService(StatusServiceOptions{
		Provider: p,
		Clock:    func() time.Time { return now },
		Location: time.UTC,
		Logger:   logx.Discard(),
	})
}

func TestStatusService_Check(t *testing.T) {
	commons := domain.NewFacility("1447", "Commons Cafe")

	tests := []struct {
		name        string
		now         time.Time
		wantOpen    bool
		wantMessage string
	}{
		{
			name:        "open during breakfast",
			now:         testutil.At(8, 30),
			wantOpen:    true,
			wantMessage: "Commons Cafe is currently open. However, it will close in 1 hours and 30 minutes.",
		},
		{
			name:        "closed between meals",
			now:         testutil.At(10, 30),
			wantMessage: "Commons Cafe is currently closed. However, it will reopen in 30 minutes.",
		},
		{
			name:        "closed after lunch",
			now:         testutil.At(15, 0),
			wantMessage: "Commons Cafe is currently closed. It will remain closed for the remainder of the day.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newMockProvider().with("1447", twoMealSchedule()), tt.now)

			report, err := svc.Check(context.Background(), commons)

			testutil.AssertNoError(t, err, "check")
			testutil.AssertEqual(t, report.Result.IsOpen, tt.wantOpen, "open flag")
			testutil.AssertEqual(t, report.Message, tt.wantMessage, "sentence")
			testutil.AssertTrue(t, report.Available(), "schedule attached")
			testutil.AssertTimeEqual(t, report.CheckedAt, tt.now, "checked at")
		})
	}
}

func TestStatusService_ClosedAllDay(t *testing.T) {
	schedule := twoMealSchedule()
	schedule.Status = domain.DailyStatusClosed
	svc := newTestService(newMockProvider().with("1447", schedule), testutil.At(8, 30))

	report, err := svc.Check(context.Background(), domain.NewFacility("1447", "Commons"))

	testutil.AssertNoError(t, err, "check")
	testutil.AssertFalse(t, report.Result.IsOpen, "closed")
	testutil.AssertFalse(t, report.HasDuration, "no duration")
	testutil.AssertContains(t, report.Message, "remainder of the day", "sentence")
}

func TestStatusService_NameFromProvider(t *testing.T) {
	schedule := twoMealSchedule()
	schedule.FacilityName = "Commons Cafe"
	svc := newTestService(newMockProvider().with("1447", schedule), testutil.At(8, 30))

	report, err := svc.Check(context.Background(), domain.NewFacility("1447", ""))

	testutil.AssertNoError(t, err, "check")
	testutil.AssertEqual(t, report.Facility.Name, "Commons Cafe", "name hint used")
	testutil.AssertContains(t, report.Message, "Commons Cafe is currently open", "sentence")
}

func TestStatusService_ProviderFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"unknown id", domain.ErrScheduleUnavailable, domain.ErrScheduleUnavailable},
		{"transport error", errors.New("dial tcp: connection refused"), domain.ErrScheduleUnavailable},
		{"malformed window", fmt.Errorf("daypart 0: %w", domain.ErrMalformedWindow), domain.ErrMalformedWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newMockProvider().failing("1447", tt.err), testutil.At(8, 30))

			report, err := svc.Check(context.Background(), domain.NewFacility("1447", "Commons"))

			testutil.AssertErrorIs(t, err, tt.wantErr, "classified error")
			testutil.AssertNotNil(t, report, "report still returned")
			testutil.AssertFalse(t, report.Available(), "no schedule")
			testutil.AssertEqual(t, report.Message, "Sorry, I can't check Commons right now. Please try again later.", "apology")
		})
	}
}

func TestStatusService_MalformedIsNotUnavailable(t *testing.T) {
	p := newMockProvider().failing("1447", fmt.Errorf("window end: %w", domain.ErrMalformedWindow))
	svc := newTestService(p, testutil.At(8, 30))

	_, err := svc.Check(context.Background(), domain.NewFacility("1447", "Commons"))

	testutil.AssertFalse(t, errors.Is(err, domain.ErrScheduleUnavailable), "malformed data is reported as such")
}

func TestStatusService_InvalidFacility(t *testing.T) {
	p := newMockProvider()
	svc := newTestService(p, testutil.At(8, 30))

	_, err := svc.Check(context.Background(), domain.NewFacility("", "Nowhere"))
	testutil.AssertErrorIs(t, err, domain.ErrEmptyFacilityID, "empty id")

	_, err = svc.Check(context.Background(), domain.NewFacility("../etc", "Nowhere"))
	testutil.AssertErrorIs(t, err, domain.ErrInvalidFacilityID, "bad id")

	testutil.AssertEqual(t, p.calls, 0, "provider never called")
}

func TestStatusService_NaturalStyle(t *testing.T) {
	svc := NewStatusService(StatusServiceOptions{
		Provider:  newMockProvider().with("1447", twoMealSchedule()),
		Formatter: Formatter{Style: StyleNatural},
		Clock:     func() time.Time { return testutil.At(9, 59) },
		Location:  time.UTC,
		Logger:    logx.Discard(),
	})

	report, err := svc.Check(context.Background(), domain.NewFacility("1447", "Commons"))

	testutil.AssertNoError(t, err, "check")
	testutil.AssertEqual(t, report.Duration, "1 minute", "singular unit")
}

func TestStatusService_NowUsesLocation(t *testing.T) {
	loc := time.FixedZone("PT", -7*3600)
	svc := NewStatusService(StatusServiceOptions{
		Provider: newMockProvider(),
		Clock:    func() time.Time { return testutil.At(15, 30) },
		Location: loc,
		Logger:   logx.Discard(),
	})

	now := svc.Now()
	testutil.AssertEqual(t, now.Location(), loc, "location applied")
	testutil.AssertEqual(t, now.Hour(), 8, "15:30 UTC is 08:30 local")
}
