// internal/platform/cache/provider.go
package cache

import (
	"context"
	"time"

	"openhours/internal/core/domain"
	"openhours/internal/core/ports"
	"openhours/internal/platform/errors"
	"openhours/internal/platform/logx"
)

// CachedProvider decora un ScheduleProvider con un ScheduleCache. Cache
// failures are logged and fall through to the provider; they never fail
// a query on their own.
type CachedProvider struct {
	provider ports.ScheduleProvider
	cache    ports.ScheduleCache
	ttl      time.Duration
	logger   logx.Logger
}

var _ ports.ScheduleProvider = (*CachedProvider)(nil)

// NewCachedProvider crea un CachedProvider.
func NewCachedProvider(provider ports.ScheduleProvider, cache ports.ScheduleCache, ttl time.Duration, logger logx.Logger) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		logger:   logger.With("component", "schedule-cache", "provider", provider.Name()),
	}
}

func (p *CachedProvider) Name() string {
	return p.provider.Name()
}

func (p *CachedProvider) FetchSchedule(ctx context.Context, facilityID string, day time.Time) (*domain.DaySchedule, error) {
	key := Key(facilityID, day)

	s, err := p.cache.Get(ctx, key)
	switch {
	case err == nil:
		p.logger.Debug("cache hit", "key", key)
		return s, nil
	case !errors.Is(err, errors.ErrCacheMiss):
		p.logger.Warn("cache read failed", "key", key, "error", err.Error())
	}

	s, err = p.provider.FetchSchedule(ctx, facilityID, day)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, s, p.ttl); err != nil {
		p.logger.Warn("cache write failed", "key", key, "error", err.Error())
	}
	return s, nil
}

// Refresh fetches from the provider and overwrites the cached entry.
// Used by the warmer.
func (p *CachedProvider) Refresh(ctx context.Context, facilityID string, day time.Time) error {
	s, err := p.provider.FetchSchedule(ctx, facilityID, day)
	if err != nil {
		return err
	}
	return p.cache.Set(ctx, Key(facilityID, day), s, p.ttl)
}

// Close cierra el proveedor y el cache.
func (p *CachedProvider) Close() error {
	return errors.Join(p.provider.Close(), p.cache.Close())
}
