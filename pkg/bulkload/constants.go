package bulkload

// DefaultChunkLimit is the maximum number of rows per execution batch
// unless overridden with Loader.SetLimit.
const DefaultChunkLimit = 1000

// Exit codes for semantic error classification, following Unix/GNU
// conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Load completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to database
	ExitInputError      = 12 // Input rejected (wrong shape, empty, or all invalid)
	ExitExecutionFailed = 13 // Database execution failed
)
