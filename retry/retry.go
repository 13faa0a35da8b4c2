// Package retry runs an operation a bounded number of times with a fixed, cancellable wait between attempts.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config holds retry configuration.
type Config struct {
	MaxAttempts int           // total attempts, values below 1 mean a single attempt
	Delay       time.Duration // wait between attempts

	// OnRetry, when set, is called before each wait with the attempt that just failed (1-based).
	OnRetry func(attempt int, err error, wait time.Duration)
}

// RetryableError wraps an error that should be retried.
type RetryableError struct {
	Err error
}

func (e RetryableError) Error() string {
	return e.Err.Error()
}

func (e RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error should be retried.
func IsRetryable(err error) bool {
	var retryable RetryableError
	return errors.As(err, &retryable)
}

// Retryable wraps an error to mark it as retryable.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return RetryableError{Err: err}
}

// Do executes fn until it succeeds, returns an error not marked Retryable, the attempts run out or ctx is done.
// The error of the last attempt is returned unwrapped from its RetryableError marker.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	_, err := DoWithResult(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult executes fn with retries and returns a result.
func DoWithResult[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(cfg.Delay), uint64(attempts-1)),
		ctx,
	)

	attempt := 0
	op := func() (T, error) {
		attempt++
		r, err := fn()
		if err != nil && !IsRetryable(err) {
			return r, backoff.Permanent(err)
		}
		return r, err
	}

	var notify backoff.Notify
	if cfg.OnRetry != nil {
		notify = func(err error, wait time.Duration) {
			cfg.OnRetry(attempt, unwrap(err), wait)
		}
	}

	r, err := backoff.RetryNotifyWithData(op, b, notify)
	return r, unwrap(err)
}

func unwrap(err error) error {
	var retryable RetryableError
	if errors.As(err, &retryable) {
		return retryable.Err
	}
	return err
}
