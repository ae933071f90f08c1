package cache

import (
	"context"
	"errors"
	"time"
)

// transientError marks a backend failure that may succeed on a later attempt.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient marks err as worth retrying. It returns nil for a nil err.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether any error in err's chain was marked with
// [Transient].
func IsTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// Backoff retries an operation while it fails with transient errors,
// doubling the wait after every attempt up to Max.
type Backoff struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

// DefaultBackoff is used by the Redis cache.
var DefaultBackoff = Backoff{Attempts: 3, Initial: 250 * time.Millisecond, Max: 2 * time.Second}

// Do calls fn until it succeeds, fails with a non-transient error, runs out
// of attempts or ctx is done. The last error is returned.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	wait := b.Initial

	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsTransient(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		if wait *= 2; b.Max > 0 && wait > b.Max {
			wait = b.Max
		}
	}
	return err
}
