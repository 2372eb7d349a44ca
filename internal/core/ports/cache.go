// internal/core/ports/cache.go
package ports

import (
	"context"
	"time"

	"openhours/internal/core/domain"
)

// ScheduleCache stores fetched schedules between queries. Get returns
// errors.ErrCacheMiss (platform errors) when the key is absent or expired.
type ScheduleCache interface {
	Get(ctx context.Context, key string) (*domain.DaySchedule, error)
	Set(ctx context.Context, key string, schedule *domain.DaySchedule, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
