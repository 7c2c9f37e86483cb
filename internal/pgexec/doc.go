// Package pgexec implements the bulkload.Executor contract for PostgreSQL
// using pgx.
//
// Each chunk becomes one parameterized multi-row statement:
//
//	INSERT INTO "app"."users" ("email", "name") VALUES ($1, $2), ($3, $4)
//
// and for upserts:
//
//	INSERT INTO "app"."users" ("email", "name") VALUES ($1, $2)
//	ON CONFLICT ("email") DO UPDATE SET "name" = EXCLUDED."name"
//
// Column order is taken from the sorted keys of the chunk's first row, so
// generated SQL is deterministic for a given row shape. Rows missing a
// column bind NULL for it. Identifiers are always quoted, with embedded
// quotes doubled.
//
// The executor works against anything exposing pgx's Exec — a
// *pgxpool.Pool, a *pgx.Conn, or a pgx.Tx. Binding it to a transaction is
// how callers get an all-or-nothing envelope around a whole load; the
// executor itself opens no transactions.
//
// PostgreSQL caps one statement at 65535 bind parameters, so the loader's
// chunk limit times the column count must stay below that. The default
// chunk limit of 1000 leaves room for tables up to 65 columns.
package pgexec
