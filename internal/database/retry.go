package database

import (
	"context"
	"time"
)

var retryBackoff = 50 * time.Millisecond

// RetryTransient runs fn up to attempts times, backing off between tries while the error is transient.
func RetryTransient(ctx context.Context, attempts int, fn func() error) error {
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	delay := retryBackoff
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil || !IsTransient(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	return err
}
