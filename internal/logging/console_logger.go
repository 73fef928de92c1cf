// Package logging provides concrete implementations of the dossim.Logger interface.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

var _ dossim.Logger = (*ConsoleLogger)(nil)

// ConsoleLogger writes log messages to stderr, or to the writer given with
// WithWriter. Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	out     io.Writer
	mu      sync.Mutex

	verbosePrefix string
	errorPrefix   string
}

// Option configures a ConsoleLogger.
type Option func(*ConsoleLogger)

// WithWriter redirects output away from stderr.
func WithWriter(w io.Writer) Option {
	return func(l *ConsoleLogger) { l.out = w }
}

// WithColor forces coloured prefixes on or off. By default colour follows
// the terminal detection of fatih/color.
func WithColor(enabled bool) Option {
	return func(l *ConsoleLogger) {
		l.verbosePrefix, l.errorPrefix = prefixes(enabled)
	}
}

// NewConsoleLogger creates a new ConsoleLogger.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool, opts ...Option) *ConsoleLogger {
	l := &ConsoleLogger{
		verbose: verbose,
		out:     os.Stderr,
	}
	l.verbosePrefix, l.errorPrefix = prefixes(!color.NoColor)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func prefixes(colored bool) (string, string) {
	verbose := color.New(color.FgCyan)
	errs := color.New(color.FgRed, color.Bold)
	if colored {
		verbose.EnableColor()
		errs.EnableColor()
	} else {
		verbose.DisableColor()
		errs.DisableColor()
	}
	return verbose.Sprint("[VERBOSE] "), errs.Sprint("[ERROR] ")
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(l.verbosePrefix, format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(l.errorPrefix, format, args)
}

func (l *ConsoleLogger) write(prefix, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.out, prefix+format+"\n", args...)
	} else {
		fmt.Fprint(l.out, prefix+format+"\n")
	}
}
