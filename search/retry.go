package search

import (
	"context"
	"time"
)

// retryCall retries an external call with doubling delay. The cascade sits
// on the request path, so attempts stay small; heavier retry policy belongs
// to batch jobs.
func retryCall(ctx context.Context, attempts int, baseDelay time.Duration, call func() error) error {
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	delay := baseDelay
	for attempt := 1; attempt <= attempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = call()
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
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

	return lastErr
}
