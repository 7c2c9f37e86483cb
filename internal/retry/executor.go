package retry

import (
	"context"
	"time"
)

// Executor runs operations and retries transient failures with backoff.
//
// An Executor is safe for concurrent use. WithOnRetry returns a new
// instance rather than mutating the receiver, so callers can derive
// per-operation configurations from a shared executor.
type Executor struct {
	classifier Classifier
	backoff    *Backoff
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates a retry executor. Panics if classifier or backoff
// is nil.
func NewExecutor(classifier Classifier, backoff *Backoff) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if backoff == nil {
		panic("backoff cannot be nil")
	}
	return &Executor{classifier: classifier, backoff: backoff}
}

// WithOnRetry returns a copy of the executor that invokes callback before
// each retry wait.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs operation, retrying transient failures until the backoff's
// attempt budget is exhausted or the context is canceled. The error of the
// last attempt is returned.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	lastErr := operation(ctx)
	if lastErr == nil {
		return nil
	}
	if !e.classifier.IsTransient(lastErr) {
		return lastErr
	}

	maxAttempts := e.backoff.MaxAttempts()
	for attempt := 0; maxAttempts < 0 || attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		delay := e.backoff.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, lastErr, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		lastErr = operation(ctx)
		if lastErr == nil {
			return nil
		}
		if !e.classifier.IsTransient(lastErr) {
			return lastErr
		}
	}

	return lastErr
}
