// Package logging provides concrete implementations of the bulkload.Logger
// interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to a writer (stderr by default)
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
