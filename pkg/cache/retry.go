package cache

import (
	"context"
	"errors"
	"time"
)

// ErrBackend marks failures of a remote backend such as Redis.
var ErrBackend = errors.New("cache backend error")

// RetryableError marks a failure worth another attempt, e.g. a Redis server
// that is still starting.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err for [RetryWithBackoff]. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err was marked with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

const retryAttempts = 3

// retryDelay is the first pause between attempts. It doubles each time.
var retryDelay = time.Second

// RetryWithBackoff calls fn until it succeeds, fails with an error not
// marked [Retryable], or has been tried three times. The last error is
// returned. Cancelling ctx aborts the wait between attempts.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
