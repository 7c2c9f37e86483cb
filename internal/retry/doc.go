// Package retry provides automatic retry with exponential backoff for
// transient database failures.
//
// Classification is pluggable: the Classifier interface decides which
// errors are worth retrying, and the PostgreSQL implementation recognizes
// connection failures, serialization conflicts, deadlocks, and resource
// exhaustion. Fatal errors (constraint violations, syntax errors) are
// returned immediately.
//
// # Example Usage
//
//	executor := retry.NewExecutor(retry.NewPostgreSQLClassifier(),
//	    retry.NewBackoff(3, retry.WithInitialDelay(200*time.Millisecond)))
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return pool.Ping(ctx)
//	})
package retry
