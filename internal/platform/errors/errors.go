// Package errors provides the error sentinels shared by the platform layer
// (HTTP client, caches, provider decorators) plus thin wrapping helpers.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for transport-level failures.
var (
	// ErrTimeout indicates an operation exceeded its time limit
	ErrTimeout = errors.New("operation timed out")

	// ErrRateLimit indicates the upstream rejected the request for rate reasons
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrConnectionFailed indicates a connection could not be established
	ErrConnectionFailed = errors.New("connection failed")

	// ErrUnauthorized indicates authentication or authorization failed
	ErrUnauthorized = errors.New("unauthorized")

	// ErrServiceUnavailable indicates a service is temporarily unavailable
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrInvalidResponse indicates a response could not be parsed or was malformed
	ErrInvalidResponse = errors.New("invalid response")

	// ErrCacheMiss is returned by cache backends when a key is absent or expired
	ErrCacheMiss = errors.New("cache miss")
)

// wrappedError wraps an error with additional context
type wrappedError struct {
	msg   string
	cause error
}

func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: msg, cause: err}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: fmt.Sprintf(format, args...), cause: err}
}

// Is is errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New is errors.New.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf is fmt.Errorf.
func Errorf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Join is errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// IsNotFound reports whether the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, ErrNotFound)
}

// IsTransient reports whether retrying the same request could plausibly
// succeed. Context cancellation is never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if Is(err, context.Canceled) {
		return false
	}
	if Is(err, ErrTimeout) || Is(err, ErrRateLimit) ||
		Is(err, ErrServiceUnavailable) || Is(err, ErrConnectionFailed) ||
		Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if As(err, &netErr) {
		return true
	}
	return false
}
