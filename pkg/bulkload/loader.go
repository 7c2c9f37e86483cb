package bulkload

import (
	"context"
	"fmt"
)

// Loader holds one validated and formatted record set and drives it into a
// destination table in chunks. Instances are single-use: construct one per
// batch job, run one bulk operation, discard.
//
// Not safe for concurrent use.
type Loader[T any] struct {
	records  []Row // formatted accepted records, input order
	rejected []T   // raw rejected items, input order

	limit  int
	table  Table
	exec   Executor
	logger Logger
}

// New builds a Loader from input, running the full validation and
// formatting pipeline synchronously.
//
// Input may be a []T, or any value implementing ResultSet[T],
// Collection[T], or Sliceable[T] (checked in that order). New fails with
// ErrInvalidInput for anything else, and with ErrEmptyInput when the
// normalized sequence is empty or when validation rejects every item.
// On failure no loader is returned and nothing is retained.
func New[T any](input any, proc Processor[T]) (*Loader[T], error) {
	if proc == nil {
		return nil, ErrNilProcessor
	}

	items, err := normalizeInput[T](input)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyInput
	}

	var accepted []T
	var rejected []T
	for _, item := range items {
		if proc.Validate(item) {
			accepted = append(accepted, item)
		} else {
			rejected = append(rejected, item)
		}
	}
	if len(accepted) == 0 {
		return nil, fmt.Errorf("%w: all %d records failed validation", ErrEmptyInput, len(items))
	}

	records := make([]Row, len(accepted))
	for i, item := range accepted {
		records[i] = proc.Format(item)
	}

	return &Loader[T]{
		records:  records,
		rejected: rejected,
		limit:    DefaultChunkLimit,
		logger:   nopLogger{},
	}, nil
}

// Data returns the formatted accepted records in input order. The returned
// slice is the loader's own; callers must not modify it.
func (l *Loader[T]) Data() []Row { return l.records }

// DataCount returns the number of accepted records.
func (l *Loader[T]) DataCount() int { return len(l.records) }

// FailureData returns the raw items rejected by validation, in input order.
// Rejected items are never formatted.
func (l *Loader[T]) FailureData() []T { return l.rejected }

// FailureDataCount returns the number of rejected items.
func (l *Loader[T]) FailureDataCount() int { return len(l.rejected) }

// Limit returns the configured chunk limit.
func (l *Loader[T]) Limit() int { return l.limit }

// SetLimit sets the maximum number of rows per execution batch and returns
// the loader for chaining. The value is not checked here; execution
// operations fail with ErrInvalidLimit when the limit is not positive.
func (l *Loader[T]) SetLimit(n int) *Loader[T] {
	l.limit = n
	return l
}

// Table returns the configured destination table descriptor.
func (l *Loader[T]) Table() Table { return l.table }

// SetTable sets the destination table and returns the loader for chaining.
func (l *Loader[T]) SetTable(t Table) *Loader[T] {
	l.table = t
	return l
}

// SetExecutor sets the database executor and returns the loader for chaining.
func (l *Loader[T]) SetExecutor(e Executor) *Loader[T] {
	l.exec = e
	return l
}

// SetLogger sets the logger and returns the loader for chaining. A nil
// logger restores the default no-op logger.
func (l *Loader[T]) SetLogger(logger Logger) *Loader[T] {
	if logger == nil {
		logger = nopLogger{}
	}
	l.logger = logger
	return l
}

// Query returns a fresh executor handle bound to the current table
// descriptor. The descriptor is snapshotted on every call, so handles
// obtained before SetTable keep their original destination.
func (l *Loader[T]) Query() (TableQuery, error) {
	if l.exec == nil {
		return TableQuery{}, ErrNoExecutor
	}
	if l.table.IsZero() {
		return TableQuery{}, ErrNoTable
	}
	return TableQuery{exec: l.exec, table: l.table}, nil
}

// TruncateTable removes all rows from the destination table.
func (l *Loader[T]) TruncateTable(ctx context.Context) error {
	q, err := l.Query()
	if err != nil {
		return err
	}
	l.logger.Verbose("truncating %s", q.Table())
	return q.Truncate(ctx)
}

// BulkProcess splits the formatted records into consecutive chunks of at
// most Limit rows (the last chunk may be smaller) and invokes fn once per
// chunk, in order, synchronously. Chunk i is fully processed before chunk
// i+1 begins. The first error — from fn or from ctx being done — aborts the
// remaining chunks.
//
// BulkProcess is the generic chunked-iteration primitive; it does not talk
// to the database itself.
func (l *Loader[T]) BulkProcess(ctx context.Context, fn func(ctx context.Context, chunk []Row) error) error {
	if l.limit < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, l.limit)
	}

	for start := 0; start < len(l.records); start += l.limit {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + l.limit
		if end > len(l.records) {
			end = len(l.records)
		}
		if err := fn(ctx, l.records[start:end:end]); err != nil {
			return err
		}
	}
	return nil
}

// BulkInsert loads every accepted record with chunked multi-row inserts,
// optionally truncating the table first. Chunks already committed before a
// failure are not rolled back.
func (l *Loader[T]) BulkInsert(ctx context.Context, truncateFirst bool) error {
	q, err := l.Query()
	if err != nil {
		return err
	}
	if l.limit < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, l.limit)
	}

	if truncateFirst {
		l.logger.Verbose("truncating %s before insert", q.Table())
		if err := q.Truncate(ctx); err != nil {
			return err
		}
	}

	inserted := 0
	err = l.BulkProcess(ctx, func(ctx context.Context, chunk []Row) error {
		if err := q.Insert(ctx, chunk); err != nil {
			return err
		}
		inserted += len(chunk)
		l.logger.Verbose("inserted %d/%d rows into %s", inserted, len(l.records), q.Table())
		return nil
	})
	if err != nil {
		return err
	}

	l.logger.Info("bulk insert complete: %d rows into %s", inserted, q.Table())
	return nil
}

// BulkUpsert loads every accepted record with chunked insert-or-update
// statements keyed on conflictColumns. At least one conflict column is
// required.
func (l *Loader[T]) BulkUpsert(ctx context.Context, conflictColumns ...string) error {
	if len(conflictColumns) == 0 {
		return ErrNoConflictColumns
	}
	q, err := l.Query()
	if err != nil {
		return err
	}

	upserted := 0
	err = l.BulkProcess(ctx, func(ctx context.Context, chunk []Row) error {
		if err := q.Upsert(ctx, chunk, conflictColumns); err != nil {
			return err
		}
		upserted += len(chunk)
		l.logger.Verbose("upserted %d/%d rows into %s", upserted, len(l.records), q.Table())
		return nil
	})
	if err != nil {
		return err
	}

	l.logger.Info("bulk upsert complete: %d rows into %s (conflict key %v)", upserted, q.Table(), conflictColumns)
	return nil
}

// Insert constructs a loader from input and immediately bulk-inserts it
// into table, discarding the loader afterward. Callers that need
// rejected-record introspection must use New directly.
func Insert[T any](ctx context.Context, exec Executor, table Table, proc Processor[T], input any, truncateFirst bool) error {
	l, err := New(input, proc)
	if err != nil {
		return err
	}
	return l.SetExecutor(exec).SetTable(table).BulkInsert(ctx, truncateFirst)
}

// Upsert constructs a loader from input and immediately bulk-upserts it
// into table keyed on conflictColumns, discarding the loader afterward.
func Upsert[T any](ctx context.Context, exec Executor, table Table, proc Processor[T], input any, conflictColumns ...string) error {
	l, err := New(input, proc)
	if err != nil {
		return err
	}
	return l.SetExecutor(exec).SetTable(table).BulkUpsert(ctx, conflictColumns...)
}
