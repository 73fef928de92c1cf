package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/Acmi1/MS-Dos-Simulator/internal/cli"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(dossim.ExitPanic)
		}
	}()

	if os.Getenv("DOSSIM_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(dossim.ExitCodeForError(err))
	}
}
