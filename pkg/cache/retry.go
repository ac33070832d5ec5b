package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports a key absent from the store. The Redis backend maps
// redis.Nil onto it so lookups can tell misses from failures.
var ErrNotFound = errors.New("cache: key not found")

const (
	retryAttempts = 3
	retryBaseWait = time.Second
)

// RetryableError marks a store failure as transient. A dropped Redis
// connection or a timed-out round trip is worth another attempt before the
// pipeline gives up and recomputes the figure.
type RetryableError struct{ Err error }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError anywhere in its
// chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs op, retrying transient failures with doubling
// waits. Permanent errors and context cancellation return immediately;
// after the last attempt the transient error is returned as is.
func RetryWithBackoff(ctx context.Context, op func() error) error {
	wait := retryBaseWait
	for attempt := 1; ; attempt++ {
		err := op()
		if err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == retryAttempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
}
