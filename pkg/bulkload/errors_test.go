package bulkload_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tablekit/bulkload/pkg/bulkload"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, bulkload.ExitSuccess},
		{"invalid input", bulkload.ErrInvalidInput, bulkload.ExitInputError},
		{"empty input", bulkload.ErrEmptyInput, bulkload.ExitInputError},
		{"wrapped empty input", fmt.Errorf("load users: %w", bulkload.ErrEmptyInput), bulkload.ExitInputError},
		{"nil processor", bulkload.ErrNilProcessor, bulkload.ExitConfigError},
		{"invalid limit", bulkload.ErrInvalidLimit, bulkload.ExitConfigError},
		{"no executor", bulkload.ErrNoExecutor, bulkload.ExitConfigError},
		{"no table", bulkload.ErrNoTable, bulkload.ExitConfigError},
		{"no conflict columns", bulkload.ErrNoConflictColumns, bulkload.ExitConfigError},
		{"execution failed", bulkload.ErrExecutionFailed, bulkload.ExitExecutionFailed},
		{
			"execution error value",
			&bulkload.ExecutionError{Op: "insert", Table: bulkload.Table{Name: "users"}, Err: errors.New("boom")},
			bulkload.ExitExecutionFailed,
		},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connection refused"), bulkload.ExitConnectionError},
		{"no such host", errors.New("lookup db.internal: no such host"), bulkload.ExitConnectionError},
		{"unclassified", errors.New("something else"), bulkload.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bulkload.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExecutionError_Unwrap(t *testing.T) {
	cause := errors.New("deadlock detected")
	err := &bulkload.ExecutionError{Op: "upsert", Table: bulkload.Table{Schema: "app", Name: "users"}, Err: cause}

	if !errors.Is(err, bulkload.ErrExecutionFailed) {
		t.Error("ExecutionError must match ErrExecutionFailed")
	}
	if !errors.Is(err, cause) {
		t.Error("ExecutionError must unwrap to its cause")
	}

	want := "upsert app.users: deadlock detected"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
