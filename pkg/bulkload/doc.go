// Package bulkload validates, normalizes, and bulk-loads in-memory record
// sets into a relational table using chunked multi-row INSERT and UPSERT
// statements.
//
// # Overview
//
// A Loader is constructed once per batch job from a finite, non-empty input
// collection. Construction runs a synchronous pipeline:
//
//  1. Normalize the input into an ordered sequence (slice, result set,
//     collection wrapper, or anything convertible to a slice)
//  2. Partition items into accepted and rejected via Processor.Validate
//  3. Format every accepted item into a Row via Processor.Format
//
// The loader then drives the formatted rows through an Executor in
// consecutive, order-preserving chunks:
//
//	proc := bulkload.ProcessorFuncs[User]{
//	    ValidateFunc: func(u User) bool { return u.Email != "" },
//	    FormatFunc: func(u User) bulkload.Row {
//	        return bulkload.Row{"email": u.Email, "name": u.Name}
//	    },
//	}
//
//	loader, err := bulkload.New(users, proc)
//	if err != nil {
//	    return err
//	}
//	loader.SetExecutor(exec).SetTable(bulkload.Table{Name: "users"})
//
//	if err := loader.BulkUpsert(ctx, "email"); err != nil {
//	    return err
//	}
//	log.Printf("loaded %d, rejected %d", loader.DataCount(), loader.FailureDataCount())
//
// Fire-and-forget callers can use the one-shot forms Insert and Upsert;
// callers that need rejected-record introspection must construct a Loader
// and inspect FailureData after construction.
//
// # Chunking
//
// BulkProcess splits the formatted rows into chunks of at most Limit rows
// (default DefaultChunkLimit) and hands each chunk to its callback in
// sequence order. Chunk i is fully submitted before chunk i+1 begins; there
// is no concurrent execution. An executor failure aborts the remaining
// chunks and propagates to the caller. The loader imposes no transactional
// envelope: chunks already committed stay committed. Callers needing
// all-or-nothing semantics should pass an Executor bound to a transaction.
//
// # Error Handling
//
// Construction and execution failures are distinguishable with errors.Is:
// ErrInvalidInput, ErrEmptyInput, ErrNilProcessor at construction;
// ErrInvalidLimit, ErrNoExecutor, ErrNoTable, ErrNoConflictColumns,
// ErrExecutionFailed at execution. Executor failures unwrap to the
// underlying driver error through *ExecutionError.
//
// # Collaborators
//
// The package defines the Executor and Logger contracts but ships no
// implementations; a PostgreSQL executor backed by pgx lives in
// internal/pgexec and is wired by the bulkload CLI. Loader instances are
// single-use and not safe for concurrent use; the Executor is treated as an
// independent, reentrant collaborator.
package bulkload
