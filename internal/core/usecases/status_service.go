// internal/core/usecases/status_service.go
package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"openhours/internal/core/domain"
	"openhours/internal/core/ports"
	"openhours/internal/platform/logx"
)

// StatusService answers "is this facility open right now?" for the
// conversational front-end: one provider fetch, then pure resolution.
type StatusService struct {
	provider  ports.ScheduleProvider
	formatter Formatter
	clock     func() time.Time
	location  *time.Location
	logger    logx.Logger
}

// StatusServiceOptions configura el StatusService.
type StatusServiceOptions struct {
	Provider  ports.ScheduleProvider
	Formatter Formatter

	// Clock returns the current instant. Defaults to time.Now.
	Clock func() time.Time

	// Location is the facility's local time zone. Defaults to time.Local.
	Location *time.Location

	Logger logx.Logger
}

// NewStatusService crea un nuevo StatusService.
func NewStatusService(opts StatusServiceOptions) *StatusService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}

	return &StatusService{
		provider:  opts.Provider,
		formatter: opts.Formatter,
		clock:     opts.Clock,
		location:  opts.Location,
		logger:    opts.Logger.With("component", "status-service"),
	}
}

// Now returns the service clock in the facility time zone.
func (s *StatusService) Now() time.Time {
	return s.clock().In(s.location)
}

// Check evaluates facility at the current instant.
func (s *StatusService) Check(ctx context.Context, facility domain.Facility) (*domain.StatusReport, error) {
	return s.CheckAt(ctx, facility, s.Now())
}

// CheckAt evaluates facility at now.
//
// When the schedule cannot be fetched the returned report still carries the
// "can't check right now" sentence, and the error matches
// domain.ErrScheduleUnavailable. Bad window data yields an error matching
// domain.ErrMalformedWindow; it is never treated as closed.
func (s *StatusService) CheckAt(ctx context.Context, facility domain.Facility, now time.Time) (*domain.StatusReport, error) {
	if err := facility.Validate(); err != nil {
		return nil, err
	}

	report := &domain.StatusReport{
		Facility:  facility,
		CheckedAt: now,
	}

	schedule, err := s.provider.FetchSchedule(ctx, facility.ID, now)
	if err != nil {
		report.Message = AnnounceUnavailable(facility.DisplayName())
		err = classifyFetchError(err)
		s.logger.Warn("schedule fetch failed",
			"facility", facility.ID,
			"provider", s.provider.Name(),
			"error", err.Error(),
		)
		return report, err
	}
	if schedule == nil {
		report.Message = AnnounceUnavailable(facility.DisplayName())
		return report, fmt.Errorf("%w: provider %s returned no schedule for %s",
			domain.ErrScheduleUnavailable, s.provider.Name(), facility.ID)
	}

	if report.Facility.Name == "" {
		report.Facility.Name = schedule.FacilityName
	}
	report.Schedule = schedule

	if !schedule.Date.IsZero() && !sameDay(schedule.Date, now) {
		s.logger.Warn("provider schedule is for a different day",
			"facility", facility.ID,
			"schedule_date", schedule.Date.Format(time.DateOnly),
			"now", now.Format(time.DateOnly),
		)
	}

	report.Result = Resolve(*schedule, now)
	report.Duration, report.HasDuration = s.formatter.Format(now, report.Result.Boundary)
	report.Message = Announce(report.Facility.DisplayName(), report.Result, report.Duration, report.HasDuration)

	s.logger.Debug("status resolved",
		"facility", facility.ID,
		"open", report.Result.IsOpen,
		"boundary", formatBoundary(report.Result),
		"windows", len(schedule.Windows),
		"daily_status", schedule.Status,
	)

	return report, nil
}

// classifyFetchError keeps malformed data distinguishable and folds every
// other provider failure into ErrScheduleUnavailable.
func classifyFetchError(err error) error {
	if errors.Is(err, domain.ErrMalformedWindow) || errors.Is(err, domain.ErrScheduleUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrScheduleUnavailable, err)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func formatBoundary(r domain.StatusResult) string {
	if !r.HasBoundary() {
		return "none"
	}
	return r.Boundary.Format("15:04")
}
