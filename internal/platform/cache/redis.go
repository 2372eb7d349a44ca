// internal/platform/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"openhours/internal/core/domain"
	"openhours/internal/core/ports"
	"openhours/internal/platform/errors"
)

// RedisConfig configura el backend redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache shares schedules between several openhours processes.
type RedisCache struct {
	client *redis.Client
}

var _ ports.ScheduleCache = (*RedisCache)(nil)

// NewRedisCache connects to redis and pings it once.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: redis %s: %w", errors.ErrConnectionFailed, cfg.Addr, err)
	}
	return &RedisCache{client: client}, nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*domain.DaySchedule, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errors.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return decodeSchedule(raw)
}

func (c *RedisCache) Set(ctx context.Context, key string, schedule *domain.DaySchedule, ttl time.Duration) error {
	raw, err := encodeSchedule(schedule)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// scheduleRecord es la forma serializada de un DaySchedule.
type scheduleRecord struct {
	FacilityID   string         `json:"facility_id"`
	FacilityName string         `json:"facility_name,omitempty"`
	Date         string         `json:"date,omitempty"`
	Location     string         `json:"location,omitempty"`
	Status       string         `json:"status"`
	Windows      []windowRecord `json:"windows"`
}

type windowRecord struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label,omitempty"`
}

func encodeSchedule(s *domain.DaySchedule) ([]byte, error) {
	if s == nil {
		return nil, errors.New("cannot cache nil schedule")
	}

	rec := scheduleRecord{
		FacilityID:   s.FacilityID,
		FacilityName: s.FacilityName,
		Status:       s.Status.String(),
		Windows:      make([]windowRecord, len(s.Windows)),
	}
	if !s.Date.IsZero() {
		rec.Date = s.Date.Format(time.DateOnly)
		rec.Location = s.Date.Location().String()
	}
	for i, w := range s.Windows {
		rec.Windows[i] = windowRecord{Start: w.Start.String(), End: w.End.String(), Label: w.Label}
	}
	return json.Marshal(rec)
}

func decodeSchedule(raw []byte) (*domain.DaySchedule, error) {
	var rec scheduleRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: cached schedule: %w", errors.ErrInvalidResponse, err)
	}

	s := &domain.DaySchedule{
		FacilityID:   rec.FacilityID,
		FacilityName: rec.FacilityName,
		Status:       domain.ParseDailyStatus(rec.Status),
		Windows:      make([]domain.TimeWindow, 0, len(rec.Windows)),
	}
	if rec.Date != "" {
		d, err := time.ParseInLocation(time.DateOnly, rec.Date, recordLocation(rec.Location))
		if err != nil {
			return nil, fmt.Errorf("%w: cached date %q", errors.ErrInvalidResponse, rec.Date)
		}
		s.Date = d
	}
	for _, w := range rec.Windows {
		tw, err := domain.NewTimeWindow(w.Start, w.End, w.Label)
		if err != nil {
			return nil, err
		}
		s.Windows = append(s.Windows, tw)
	}
	return s, nil
}

// recordLocation resuelve la zona guardada; una zona desconocida cae a UTC.
func recordLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
