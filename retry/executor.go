package retry

import (
	"context"
	"errors"
	"time"
)

// ErrNoAttempt is returned when the loop exits without ever invoking the
// operation. Should be unreachable with a sane policy.
var ErrNoAttempt = errors.New("retry: operation was never attempted")

// Do executes fn under the given policy. The attempts of one call are
// strictly sequential; the only suspension points are the backoff waits,
// which abort early when ctx is cancelled.
//
// On success the result is returned immediately. When the policy declines
// a retry, the failing attempt's original error is propagated unwrapped.
// When attempts are exhausted, the last error is propagated.
func Do[T any](ctx context.Context, p Policy, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	maxAttempts := p.MaxAttempts()
	start := time.Now()
	lastBackoff := time.Duration(0)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		s := State{
			Attempt:       attempt,
			TotalAttempts: maxAttempts,
			LastErr:       err,
			Elapsed:       time.Since(start),
			LastBackoff:   lastBackoff,
		}
		if !p.ShouldRetry(s, err) {
			return zero, err
		}
		if attempt == maxAttempts {
			break
		}

		lastBackoff = p.Delay(s)
		timer := time.NewTimer(lastBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		return zero, ErrNoAttempt
	}
	return zero, lastErr
}

// DoFunc executes an operation that returns only an error.
func DoFunc(ctx context.Context, p Policy, fn func() error) error {
	_, err := Do(ctx, p, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}
