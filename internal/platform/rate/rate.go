// Package rate limits outbound provider requests. It keeps the small API the
// HTTP client needs on top of golang.org/x/time/rate.
package rate

import (
	"context"

	xrate "golang.org/x/time/rate"
)

// Limiter is a token bucket: rate tokens per second, up to burst at once.
type Limiter struct {
	lim *xrate.Limiter
}

// New creates a limiter. Non-positive values fall back to 1.
//
// Example:
//
//	limiter := rate.New(2, 1) // 2 req/s, one at a time
func New(rps float64, burst int) *Limiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{lim: xrate.NewLimiter(xrate.Limit(rps), burst)}
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.lim.Wait(ctx)
}

// Allow consumes a token if one is available right now.
func (l *Limiter) Allow() bool {
	return l.lim.Allow()
}

// SetRate changes the refill rate.
func (l *Limiter) SetRate(rps float64) {
	if rps <= 0 {
		rps = 1
	}
	l.lim.SetLimit(xrate.Limit(rps))
}

// SetBurst changes the bucket size.
func (l *Limiter) SetBurst(burst int) {
	if burst <= 0 {
		burst = 1
	}
	l.lim.SetBurst(burst)
}

// Rate returns tokens per second.
func (l *Limiter) Rate() float64 {
	return float64(l.lim.Limit())
}

// Burst returns the bucket size.
func (l *Limiter) Burst() int {
	return l.lim.Burst()
}

// Tokens returns the tokens currently available.
func (l *Limiter) Tokens() float64 {
	return l.lim.Tokens()
}
