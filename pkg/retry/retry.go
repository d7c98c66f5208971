// Package retry provides a small retry-with-backoff decorator for blocking calls.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrExhausted is wrapped around the last error once every attempt has failed.
var ErrExhausted = errors.New("max retries exceeded")

// Policy configures Do.
type Policy struct {
	// MaxAttempts is the total number of calls, including the first one.
	MaxAttempts int
	// Delay returns the wait before the given retry (1 for the first retry).
	Delay func(retry int) time.Duration
	// ShouldRetry reports whether err is transient. Nil retries nothing.
	ShouldRetry func(err error) bool
}

// Linear returns a delay schedule of base multiplied by the retry number.
func Linear(base time.Duration) func(int) time.Duration {
	return func(retry int) time.Duration {
		return base * time.Duration(retry)
	}
}

// Do calls fn until it succeeds, returns a non-retryable error, or the policy
// runs out of attempts.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	_, err := DoValue(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// DoValue is Do for calls that produce a value.
func DoValue[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var zero T
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, delay(p, attempt-1)); err != nil {
				return zero, err
			}
		}

		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if p.ShouldRetry == nil || !p.ShouldRetry(err) {
			return zero, err
		}
		lastErr = err
	}

	return zero, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempts, lastErr)
}

func delay(p Policy, retry int) time.Duration {
	if p.Delay == nil {
		return 0
	}
	return p.Delay(retry)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
