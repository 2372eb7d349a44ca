// internal/platform/resilience/retryable_provider.go
package resilience

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"openhours/internal/core/domain"
	"openhours/internal/core/ports"
	"openhours/internal/platform/errors"
	"openhours/internal/platform/logx"
)

// RetryConfig configura RetryableProvider.
type RetryConfig struct {
	MaxRetries  int
	BackoffBase time.Duration
	BackoffMax  time.Duration
}

// RetryableProvider envuelve un ScheduleProvider con retry y circuit breaker.
// Solo se reintentan errores transitorios (timeouts, 5xx, conexión); un
// facility desconocido o datos mal formados fallan a la primera.
type RetryableProvider struct {
	provider ports.ScheduleProvider
	cfg      RetryConfig
	breaker  *CircuitBreaker
	logger   logx.Logger
}

var _ ports.ScheduleProvider = (*RetryableProvider)(nil)

// NewRetryableProvider crea un nuevo RetryableProvider. breaker puede ser nil.
func NewRetryableProvider(provider ports.ScheduleProvider, cfg RetryConfig, breaker *CircuitBreaker, logger logx.Logger) *RetryableProvider {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = 250 * time.Millisecond
	}
	if cfg.BackoffMax <= 0 {
		cfg.BackoffMax = 5 * time.Second
	}

	return &RetryableProvider{
		provider: provider,
		cfg:      cfg,
		breaker:  breaker,
		logger:   logger.With("component", "retryable-provider", "provider", provider.Name()),
	}
}

// Name retorna el nombre del proveedor subyacente.
func (r *RetryableProvider) Name() string {
	return r.provider.Name()
}

// FetchSchedule ejecuta el fetch con retry y circuit breaker.
func (r *RetryableProvider) FetchSchedule(ctx context.Context, facilityID string, day time.Time) (*domain.DaySchedule, error) {
	if r.breaker != nil && !r.breaker.Allow() {
		r.logger.Warn("circuit breaker open, skipping fetch", "facility", facilityID)
		return nil, fmt.Errorf("%w: provider %s: %w", domain.ErrScheduleUnavailable, r.provider.Name(), ErrCircuitOpen)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.cfg.BackoffBase
	policy.MaxInterval = r.cfg.BackoffMax
	policy.MaxElapsedTime = 0

	attempts := 0
	var schedule *domain.DaySchedule

	operation := func() error {
		attempts++
		s, err := r.provider.FetchSchedule(ctx, facilityID, day)
		if err == nil {
			schedule = s
			return nil
		}
		if !errors.IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		r.logger.Info("retrying fetch",
			"facility", facilityID,
			"attempt", attempts,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error(),
		)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.cfg.MaxRetries)), ctx)
	err := backoff.RetryNotify(operation, b, notify)

	if err != nil {
		if r.breaker != nil && countsAgainstBreaker(err) {
			r.breaker.RecordFailure()
		}
		r.logger.Warn("fetch failed", "facility", facilityID, "attempts", attempts, "error", err.Error())
		return nil, err
	}

	if r.breaker != nil {
		r.breaker.RecordSuccess()
	}
	if attempts > 1 {
		r.logger.Info("fetch succeeded after retry", "facility", facilityID, "attempts", attempts)
	}
	return schedule, nil
}

// countsAgainstBreaker: una facility desconocida no indica que el
// proveedor esté caído.
func countsAgainstBreaker(err error) bool {
	return !errors.Is(err, domain.ErrScheduleUnavailable) &&
		!errors.Is(err, domain.ErrMalformedWindow) &&
		!errors.Is(err, context.Canceled)
}

// Close cierra el proveedor subyacente.
func (r *RetryableProvider) Close() error {
	return r.provider.Close()
}

// Breaker retorna el circuit breaker (útil para testing/monitoring).
func (r *RetryableProvider) Breaker() *CircuitBreaker {
	return r.breaker
}
