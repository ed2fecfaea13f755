package store

import (
	"context"
	"time"
)

// Connection checks for remote backends. The server may still be starting
// when the CLI or the HTTP server comes up, so the first PING is retried.
const (
	pingAttempts = 3
	pingDelay    = 250 * time.Millisecond
)

// retry runs fn up to attempts times, doubling delay after each failure.
// It returns the last error, or ctx.Err() if ctx ends while waiting.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func(context.Context) error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if lastErr = fn(ctx); lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
