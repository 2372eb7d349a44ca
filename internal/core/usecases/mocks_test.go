// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"sync"
	"time"

	"openhours/internal/core/domain"
)

// mockProvider es un mock de ports.ScheduleProvider
type mockProvider struct {
	mu        sync.Mutex
	schedules map[string]*domain.DaySchedule
	errs      map[string]error
	calls     int
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		schedules: make(map[string]*domain.DaySchedule),
		errs:      make(map[string]error),
	}
}

func (m *mockProvider) with(id string, s *domain.DaySchedule) *mockProvider {
	m.schedules[id] = s
	return m
}

func (m *mockProvider) failing(id string, err error) *mockProvider {
	m.errs[id] = err
	return m
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) FetchSchedule(ctx context.Context, facilityID string, day time.Time) (*domain.DaySchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if err, ok := m.errs[facilityID]; ok {
		return nil, err
	}
	s, ok := m.schedules[facilityID]
	if !ok {
		return nil, domain.ErrScheduleUnavailable
	}
	return s.Clone(), nil
}

func (m *mockProvider) Close() error { return nil }

// twoMealSchedule is the breakfast + lunch schedule used across scenarios.
func twoMealSchedule() *domain.DaySchedule {
	return &domain.DaySchedule{
		FacilityID: "1447",
		Status:     domain.DailyStatusOpen,
		Windows: []domain.TimeWindow{
			window("07:00", "10:00"),
			window("11:00", "14:00"),
		},
	}
}

func window(start, end string) domain.TimeWindow {
	w, err := domain.NewTimeWindow(start, end, "")
	if err != nil {
		panic(err)
	}
	return w
}
