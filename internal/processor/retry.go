package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "resume-extractor/internal/errors"
)

// retry calls fn up to attempts times with exponential backoff starting
// at wait. Permanent and not-found errors are returned immediately.
func retry[T any](ctx context.Context, attempts int, wait time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		if !isRetryable(err) {
			return zero, err
		}
		lastErr = err

		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(wait * time.Duration(1<<i)):
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

func isRetryable(err error) bool {
	return !apperrors.IsPermanent(err) && !errors.Is(err, apperrors.ErrNotFound)
}
