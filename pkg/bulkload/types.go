package bulkload

import "fmt"

// Row is a formatted record: a mapping of column name to column value,
// ready to be bound into a multi-row statement. Every Row produced for one
// load is expected to share a column set compatible with the destination
// table; enforcing that is the executor's (and ultimately the database's)
// job, not the loader's.
type Row map[string]any

// Table identifies the destination table by name and optional schema.
// The zero value is not a valid destination.
type Table struct {
	Schema string
	Name   string
}

// IsZero reports whether the descriptor carries no table name.
func (t Table) IsZero() bool { return t.Name == "" }

// QualifiedName returns "schema.name", or just the name when no schema is
// set. Identifier quoting is left to the executor.
func (t Table) QualifiedName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// String implements fmt.Stringer.
func (t Table) String() string { return t.QualifiedName() }

// Processor decides which input items are loadable and how each one maps to
// a Row. Both methods must be pure: no side effects, deterministic for a
// given item.
//
// Validate is called once per input item during construction; items it
// rejects are retained unformatted and exposed via Loader.FailureData.
// Format is called once per accepted item, in input order.
type Processor[T any] interface {
	Validate(item T) bool
	Format(item T) Row
}

// ProcessorFuncs adapts a pair of function values into a Processor, for use
// cases that don't warrant a named type.
//
// A nil ValidateFunc accepts every item. FormatFunc is required; see
// Identity for inputs that already are Rows.
type ProcessorFuncs[T any] struct {
	ValidateFunc func(item T) bool
	FormatFunc   func(item T) Row
}

// Validate implements Processor.
func (p ProcessorFuncs[T]) Validate(item T) bool {
	if p.ValidateFunc == nil {
		return true
	}
	return p.ValidateFunc(item)
}

// Format implements Processor.
func (p ProcessorFuncs[T]) Format(item T) Row {
	if p.FormatFunc == nil {
		panic(fmt.Sprintf("bulkload: ProcessorFuncs[%T] has no FormatFunc", *new(T)))
	}
	return p.FormatFunc(item)
}

// Identity returns a Processor for inputs that are already Rows: every item
// is accepted and passed through unchanged.
func Identity() Processor[Row] {
	return ProcessorFuncs[Row]{
		FormatFunc: func(r Row) Row { return r },
	}
}
