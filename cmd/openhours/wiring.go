// cmd/openhours/wiring.go
package main

import (
	"context"
	"fmt"
	"strings"

	"openhours/internal/catalog"
	"openhours/internal/core/domain"
	"openhours/internal/core/ports"
	"openhours/internal/platform/cache"
	"openhours/internal/platform/config"
	"openhours/internal/platform/logx"
	"openhours/internal/platform/registry"
	"openhours/internal/platform/resilience"
)

// buildProvider builds the configured provider from the registry and wraps
// it: retry + circuit breaker first, cache outermost so hits skip both.
// cached is nil when caching is disabled.
func buildProvider(ctx context.Context, cfg config.Config, logger logx.Logger) (provider ports.ScheduleProvider, cached *cache.CachedProvider, err error) {
	base, err := registry.Global().Build(cfg.Provider.Name, cfg.ProviderConfig(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build provider: %w", err)
	}
	provider = base

	if cfg.Resilience.MaxRetries > 0 || cfg.Resilience.CircuitBreakerEnabled {
		var breaker *resilience.CircuitBreaker
		if cfg.Resilience.CircuitBreakerEnabled {
			breaker = resilience.NewCircuitBreaker(resilience.BreakerConfig{
				FailureThreshold: cfg.Resilience.CircuitBreakerThreshold,
				Cooldown:         cfg.Resilience.CircuitBreakerCooldown,
				OnStateChange: func(from, to resilience.State) {
					logger.Warn("circuit breaker state change",
						"provider", base.Name(),
						"from", from.String(),
						"to", to.String(),
					)
				},
			})
		}
		provider = resilience.NewRetryableProvider(provider, resilience.RetryConfig{
			MaxRetries:  cfg.Resilience.MaxRetries,
			BackoffBase: cfg.Resilience.BackoffBase,
		}, breaker, logger)

		logger.Debug("wrapped provider with resilience",
			"provider", base.Name(),
			"max_retries", cfg.Resilience.MaxRetries,
			"circuit_breaker", cfg.Resilience.CircuitBreakerEnabled,
		)
	}

	var store ports.ScheduleCache
	switch cfg.Cache.Backend {
	case "none":
		return provider, nil, nil
	case "redis":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			_ = provider.Close()
			return nil, nil, err
		}
		store = rc
	default:
		store = cache.NewMemoryCache(cfg.Cache.Capacity)
	}

	logger.Debug("schedule cache enabled", "backend", cfg.Cache.Backend, "ttl", cfg.Cache.TTL)
	cached = cache.NewCachedProvider(provider, store, cfg.Cache.TTL, logger)
	return cached, cached, nil
}

// resolveFacility turns --facility into a catalog entry: exact id, then
// spoken name, then a bare id not in the catalog. --name overrides the name.
func resolveFacility(cat *catalog.Catalog, input, name string) (domain.Facility, error) {
	input = strings.TrimSpace(input)

	f, ok := cat.Lookup(input)
	if !ok {
		f, ok = cat.Match(input)
	}
	if !ok {
		f = domain.NewFacility(input, "")
		if err := f.Validate(); err != nil {
			return domain.Facility{}, fmt.Errorf("%w: %q is neither a catalog name nor a facility id", domain.ErrUnknownFacility, input)
		}
	}
	if name != "" {
		f.Name = name
	}
	return f, nil
}
