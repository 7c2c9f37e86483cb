package pgexec

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tablekit/bulkload/pkg/bulkload"
)

// Queryer is the slice of pgx the executor needs.
// Satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Executor implements bulkload.Executor against PostgreSQL.
type Executor struct {
	db     Queryer
	logger bulkload.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger attaches a logger for per-statement diagnostics.
func WithLogger(logger bulkload.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// New creates an Executor over db. Panics if db is nil.
func New(db Queryer, opts ...Option) *Executor {
	if db == nil {
		panic("db cannot be nil")
	}
	e := &Executor{db: db}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Insert appends rows to the table with one multi-row INSERT statement.
func (e *Executor) Insert(ctx context.Context, table bulkload.Table, rows []bulkload.Row) error {
	if len(rows) == 0 {
		return nil
	}
	columns := columnsFor(rows)
	if len(columns) == 0 {
		return fmt.Errorf("insert into %s: rows carry no columns", table)
	}

	sql := insertSQL(tableName(table), columns, len(rows))
	e.verbosef("insert %d rows (%d params) into %s", len(rows), len(rows)*len(columns), table)

	tag, err := e.db.Exec(ctx, sql, bindArgs(rows, columns)...)
	if err != nil {
		return fmt.Errorf("insert %d rows into %s: %w", len(rows), table, err)
	}
	e.verbosef("insert into %s: %d rows affected", table, tag.RowsAffected())
	return nil
}

// Upsert inserts rows, updating any row that conflicts on conflictColumns.
// Every conflict column must be present in the rows' column set.
func (e *Executor) Upsert(ctx context.Context, table bulkload.Table, rows []bulkload.Row, conflictColumns []string) error {
	if len(rows) == 0 {
		return nil
	}
	if len(conflictColumns) == 0 {
		return fmt.Errorf("upsert into %s: no conflict columns", table)
	}
	columns := columnsFor(rows)
	if len(columns) == 0 {
		return fmt.Errorf("upsert into %s: rows carry no columns", table)
	}
	if missing := updateColumns(conflictColumns, columns); len(missing) > 0 {
		return fmt.Errorf("upsert into %s: conflict columns %v not present in row columns %v", table, missing, columns)
	}

	sql := upsertSQL(tableName(table), columns, len(rows), conflictColumns)
	e.verbosef("upsert %d rows into %s (conflict key %v)", len(rows), table, conflictColumns)

	tag, err := e.db.Exec(ctx, sql, bindArgs(rows, columns)...)
	if err != nil {
		return fmt.Errorf("upsert %d rows into %s: %w", len(rows), table, err)
	}
	e.verbosef("upsert into %s: %d rows affected", table, tag.RowsAffected())
	return nil
}

// Truncate removes all rows from the table.
func (e *Executor) Truncate(ctx context.Context, table bulkload.Table) error {
	sql := "TRUNCATE TABLE " + tableName(table)
	e.verbosef("truncating %s", table)

	if _, err := e.db.Exec(ctx, sql); err != nil {
		return fmt.Errorf("truncate %s: %w", table, err)
	}
	return nil
}

func (e *Executor) verbosef(format string, args ...any) {
	if e.logger != nil {
		e.logger.Verbose(format, args...)
	}
}
