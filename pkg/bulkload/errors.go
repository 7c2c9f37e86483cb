package bulkload

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	loader, err := bulkload.New(records, proc)
//	if errors.Is(err, bulkload.ErrEmptyInput) {
//	    // Nothing to load; not necessarily a bug
//	}
var (
	// ErrInvalidInput indicates the constructor input matches no supported
	// collection shape (slice, ResultSet, Collection, or Sliceable).
	ErrInvalidInput = errors.New("invalid input type")

	// ErrEmptyInput indicates the normalized input, or the accepted set
	// after validation filtering, has zero elements.
	ErrEmptyInput = errors.New("empty input")

	// ErrNilProcessor indicates no Processor was supplied at construction.
	ErrNilProcessor = errors.New("nil processor")

	// ErrInvalidLimit indicates the configured chunk limit is not positive.
	ErrInvalidLimit = errors.New("invalid chunk limit")

	// ErrNoExecutor indicates no Executor has been configured on the loader.
	ErrNoExecutor = errors.New("no executor configured")

	// ErrNoTable indicates no destination table has been configured.
	ErrNoTable = errors.New("no table configured")

	// ErrNoConflictColumns indicates BulkUpsert was called without any
	// conflict-key column.
	ErrNoConflictColumns = errors.New("no conflict columns")

	// ErrExecutionFailed indicates the database executor failed during
	// insert, upsert, or truncate. Matchable on any *ExecutionError.
	ErrExecutionFailed = errors.New("execution failed")
)

// ExecutionError wraps an executor failure with the operation and table it
// occurred on. It matches ErrExecutionFailed under errors.Is and unwraps to
// the underlying executor error.
type ExecutionError struct {
	Op    string // "insert", "upsert", or "truncate"
	Table Table
	Err   error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

// Unwrap returns the underlying executor error.
func (e *ExecutionError) Unwrap() error { return e.Err }

// Is reports whether target matches this error class.
func (e *ExecutionError) Is(target error) bool { return target == ErrExecutionFailed }

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrEmptyInput):
		return ExitInputError
	case errors.Is(err, ErrNilProcessor),
		errors.Is(err, ErrInvalidLimit),
		errors.Is(err, ErrNoExecutor),
		errors.Is(err, ErrNoTable),
		errors.Is(err, ErrNoConflictColumns):
		return ExitConfigError
	case errors.Is(err, ErrExecutionFailed):
		return ExitExecutionFailed
	}

	// Check for common connection error patterns
	errStr := err.Error()
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
