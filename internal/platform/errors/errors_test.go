// internal/platform/errors/errors_test.go
package errors

import (
	"context"
	"fmt"
	"net"
	"testing"

	"openhours/internal/testutil"
)

func TestWrap(t *testing.T) {
	t.Run("wraps error with context", func(t *testing.T) {
		base := New("base error")
		wrapped := Wrap(base, "fetch 1447")

		testutil.AssertTrue(t, Is(wrapped, base), "unwraps to base")
		testutil.AssertEqual(t, wrapped.Error(), "fetch 1447: base error", "message")
	})

	t.Run("returns nil when wrapping nil", func(t *testing.T) {
		testutil.AssertNil(t, Wrap(nil, "context"), "nil in, nil out")
		testutil.AssertNil(t, Wrapf(nil, "context %d", 1), "nil in, nil out")
	})

	t.Run("multiple wraps preserve chain", func(t *testing.T) {
		wrapped := Wrap(Wrap(ErrNotFound, "layer 1"), "layer 2")

		testutil.AssertTrue(t, IsNotFound(wrapped), "sentinel reachable")
		testutil.AssertEqual(t, wrapped.Error(), "layer 2: layer 1: resource not found", "full chain")
	})
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrRateLimit, "cafe=%s", "1447")

	testutil.AssertErrorIs(t, wrapped, ErrRateLimit, "sentinel kept")
	testutil.AssertEqual(t, wrapped.Error(), "cafe=1447: rate limit exceeded", "formatted context")
}

type fakeNetErr struct{ timeout bool }

func (e fakeNetErr) Error() string   { return "net" }
func (e fakeNetErr) Timeout() bool   { return e.timeout }
func (e fakeNetErr) Temporary() bool { return false }

var _ net.Error = fakeNetErr{}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"timeout", ErrTimeout, true},
		{"rate limit", Wrap(ErrRateLimit, "upstream"), true},
		{"service unavailable", fmt.Errorf("HTTP 503: %w", ErrServiceUnavailable), true},
		{"connection failed", ErrConnectionFailed, true},
		{"deadline", context.DeadlineExceeded, true},
		{"net error", Wrap(fakeNetErr{}, "dial"), true},
		{"cancelled", context.Canceled, false},
		{"cancelled wins", Join(context.Canceled, ErrTimeout), false},
		{"not found", ErrNotFound, false},
		{"unauthorized", ErrUnauthorized, false},
		{"invalid response", ErrInvalidResponse, false},
		{"plain", New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsTransient(tt.err), tt.want, "transient")
		})
	}
}

func TestAs(t *testing.T) {
	var target fakeNetErr
	testutil.AssertTrue(t, As(Wrap(fakeNetErr{timeout: true}, "dial"), &target), "as finds net error")
	testutil.AssertTrue(t, target.timeout, "value copied")
}

func TestErrorf(t *testing.T) {
	err := Errorf("cafe %s: %w", "1447", ErrInvalidResponse)
	testutil.AssertErrorIs(t, err, ErrInvalidResponse, "wrapped with %w")
}
