package bulkload

import "context"

// Executor performs the actual database writes. The loader never builds SQL
// itself; it hands ordered row chunks to an Executor scoped by a Table
// descriptor.
//
// Implementations must be safe for sequential reuse across calls; the
// loader issues calls one at a time, never concurrently. A PostgreSQL
// implementation backed by pgx is provided in internal/pgexec.
type Executor interface {
	// Insert appends rows to the table with a multi-row INSERT.
	Insert(ctx context.Context, table Table, rows []Row) error

	// Upsert inserts rows, updating instead any row that conflicts on the
	// given columns.
	Upsert(ctx context.Context, table Table, rows []Row, conflictColumns []string) error

	// Truncate removes all rows from the table.
	Truncate(ctx context.Context, table Table) error
}

// TableQuery is an Executor handle bound to one table descriptor. It is the
// loader's query-builder analog: Loader.Query snapshots the loader's
// current table on every call, so a handle obtained before SetTable keeps
// pointing at the old destination while a fresh handle picks up the new one.
type TableQuery struct {
	exec  Executor
	table Table
}

// Table returns the descriptor this handle is bound to.
func (q TableQuery) Table() Table { return q.table }

// Insert issues a multi-row insert for rows.
func (q TableQuery) Insert(ctx context.Context, rows []Row) error {
	if err := q.exec.Insert(ctx, q.table, rows); err != nil {
		return &ExecutionError{Op: "insert", Table: q.table, Err: err}
	}
	return nil
}

// Upsert issues an insert-or-update for rows, keyed on conflictColumns.
func (q TableQuery) Upsert(ctx context.Context, rows []Row, conflictColumns []string) error {
	if err := q.exec.Upsert(ctx, q.table, rows, conflictColumns); err != nil {
		return &ExecutionError{Op: "upsert", Table: q.table, Err: err}
	}
	return nil
}

// Truncate removes all rows from the bound table.
func (q TableQuery) Truncate(ctx context.Context) error {
	if err := q.exec.Truncate(ctx, q.table); err != nil {
		return &ExecutionError{Op: "truncate", Table: q.table, Err: err}
	}
	return nil
}
