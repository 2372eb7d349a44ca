// internal/platform/resilience/circuit_breaker.go
package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// State representa el estado del circuit breaker.
type State int

const (
	StateClosed   State = iota // operación normal
	StateOpen                  // rechazando peticiones
	StateHalfOpen              // probando si el proveedor se recuperó
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig configura un CircuitBreaker.
type BreakerConfig struct {
	// FailureThreshold consecutive failures open the circuit. Default 5.
	FailureThreshold int

	// Cooldown before an open circuit lets a probe through. Default 30s.
	Cooldown time.Duration

	// HalfOpenMax probes must succeed to close again. Default 1.
	HalfOpenMax int

	// OnStateChange se invoca fuera del lock en cada transición.
	OnStateChange func(from, to State)

	now func() time.Time
}

// CircuitBreaker stops hammering a provider that keeps failing. While open,
// Allow returns false until the cooldown elapses.
type CircuitBreaker struct {
	mu          sync.Mutex
	cfg         BreakerConfig
	state       State
	failures    int
	probes      int
	successes   int
	openedAt    time.Time
	lastFailure time.Time
	lastSuccess time.Time
}

// NewCircuitBreaker crea un nuevo circuit breaker.
func NewCircuitBreaker(cfg BreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	if cfg.HalfOpenMax <= 0 {
		cfg.HalfOpenMax = 1
	}
	if cfg.now == nil {
		cfg.now = time.Now
	}
	return &CircuitBreaker{cfg: cfg}
}

// Allow verifica si una petición puede pasar.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	from := cb.state

	allowed := false
	switch cb.state {
	case StateClosed:
		allowed = true
	case StateOpen:
		if cb.cfg.now().Sub(cb.openedAt) >= cb.cfg.Cooldown {
			cb.state = StateHalfOpen
			cb.probes, cb.successes = 1, 0
			allowed = true
		}
	case StateHalfOpen:
		if cb.probes < cb.cfg.HalfOpenMax {
			cb.probes++
			allowed = true
		}
	}

	to := cb.state
	cb.mu.Unlock()

	cb.notify(from, to)
	return allowed
}

// RecordSuccess registra una operación exitosa.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	from := cb.state
	cb.lastSuccess = cb.cfg.now()

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.cfg.HalfOpenMax {
			cb.state = StateClosed
			cb.failures, cb.probes, cb.successes = 0, 0, 0
		}
	}

	to := cb.state
	cb.mu.Unlock()
	cb.notify(from, to)
}

// RecordFailure registra una operación fallida.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	from := cb.state
	now := cb.cfg.now()
	cb.lastFailure = now

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.cfg.FailureThreshold {
			cb.state, cb.openedAt = StateOpen, now
		}
	case StateHalfOpen:
		// un fallo durante la prueba reabre inmediatamente
		cb.state, cb.openedAt = StateOpen, now
		cb.probes, cb.successes = 0, 0
	}

	to := cb.state
	cb.mu.Unlock()
	cb.notify(from, to)
}

func (cb *CircuitBreaker) notify(from, to State) {
	if from != to && cb.cfg.OnStateChange != nil {
		cb.cfg.OnStateChange(from, to)
	}
}

// State retorna el estado actual.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Reset vuelve al estado cerrado.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	from := cb.state
	cb.state = StateClosed
	cb.failures, cb.probes, cb.successes = 0, 0, 0
	cb.mu.Unlock()
	cb.notify(from, StateClosed)
}

// Stats retorna estadísticas del circuit breaker.
func (cb *CircuitBreaker) Stats() CircuitBreakerStats {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return CircuitBreakerStats{
		State:           cb.state,
		FailureCount:    cb.failures,
		SuccessCount:    cb.successes,
		LastFailureTime: cb.lastFailure,
		LastSuccessTime: cb.lastSuccess,
	}
}

// CircuitBreakerStats contiene estadísticas del circuit breaker.
type CircuitBreakerStats struct {
	State           State
	FailureCount    int
	SuccessCount    int
	LastFailureTime time.Time
	LastSuccessTime time.Time
}
