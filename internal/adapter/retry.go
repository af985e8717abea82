package adapter

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// DefaultMaxRetries bounds the retries of a generator request.
const DefaultMaxRetries = 3

const maxBackoff = 30 * time.Second

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *RetryableError

	return errors.As(err, &retryErr)
}

// maxBackoffShift is the first attempt whose doubled delay exceeds
// maxBackoff.
const maxBackoffShift = 5

// Backoff returns a duration for attempt n (0-indexed) with jitter. The base
// delay doubles per attempt up to maxBackoff.
func Backoff(attempt int) time.Duration {
	attempt = min(max(attempt, 0), maxBackoffShift)

	base := min(time.Duration(1<<uint(attempt))*time.Second, maxBackoff) //nolint:gosec // attempt is clamped above

	jitter := time.Duration(rand.Int64N(int64(base) / 2)) //nolint:gosec // jitter does not need a CSPRNG

	return base + jitter
}

// retrier runs a request until it succeeds, fails permanently or runs out
// of attempts.
type retrier struct {
	maxRetries int
	backoff    func(attempt int) time.Duration
}

func newRetrier(maxRetries int) retrier {
	if maxRetries < 0 {
		maxRetries = 0
	}

	return retrier{maxRetries: maxRetries, backoff: Backoff}
}

func (r retrier) do(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(r.backoff(attempt - 1))
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", ctx.Err()
			case <-timer.C:
			}
		}

		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}

		if !IsRetryable(err) {
			return "", err
		}

		lastErr = err
	}

	return "", fmt.Errorf("giving up after %d attempts: %w", r.maxRetries+1, lastErr)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n] + "..."
}
