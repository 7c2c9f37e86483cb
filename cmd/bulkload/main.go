package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/tablekit/bulkload/internal/cli"
	"github.com/tablekit/bulkload/pkg/bulkload"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(bulkload.ExitPanic)
		}
	}()

	if os.Getenv("BULKLOAD_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(bulkload.ExitCodeForError(err))
	}
}
