package shell

import (
	"context"
	"strings"

	"github.com/Acmi1/MS-Dos-Simulator/internal/session"
	"github.com/Acmi1/MS-Dos-Simulator/internal/vfs"
)

// Unlimited is the MaxArgs value for commands without an upper bound.
const Unlimited = -1

// Spec declares the surface of a command. The dispatcher validates every
// invocation against it before the handler runs.
type Spec struct {
	Name    string
	Aliases []string

	// Summary is the one-line description shown by HELP.
	Summary string

	// Usage is the syntax line shown by HELP <verb> and <verb> /?.
	Usage string

	// Details are extra help lines, typically one per switch.
	Details []string

	MinArgs int
	MaxArgs int

	// Switches lists the accepted switch names without the slash, e.g. "W"
	// or "V" for /V:label.
	Switches []string

	// Raw commands receive their argument text untouched and skip argument
	// validation (ECHO, SET, REM).
	Raw bool
}

func (s Spec) allows(name string) bool {
	for _, sw := range s.Switches {
		if strings.EqualFold(sw, name) {
			return true
		}
	}
	return false
}

// Handler implements one command.
type Handler interface {
	Spec() Spec
	Run(ctx context.Context, inv *Invocation) ([]string, error)
}

// Invocation is everything a handler gets for one run.
type Invocation struct {
	// Verb is the command name as typed.
	Verb string

	// Args are the positional arguments with quotes removed.
	Args []string

	// Switches maps upper-cased switch names to their ":value" part.
	Switches map[string]string

	// Raw is the argument text after the verb, before any redirection.
	Raw string

	// Input holds the lines piped or redirected into the command. It is nil
	// when nothing was piped in.
	Input []string

	Session *session.Session
	FS      *vfs.FS

	exit  bool
	clear bool
}

// Has reports whether a switch was given.
func (inv *Invocation) Has(name string) bool {
	_, ok := inv.Switches[strings.ToUpper(name)]
	return ok
}

// Switch returns the value of /NAME:value.
func (inv *Invocation) Switch(name string) (string, bool) {
	v, ok := inv.Switches[strings.ToUpper(name)]
	return v, ok
}

// Arg returns the i-th positional argument or "".
func (inv *Invocation) Arg(i int) string {
	if i < len(inv.Args) {
		return inv.Args[i]
	}
	return ""
}

// Cwd returns the session's current directory.
func (inv *Invocation) Cwd() vfs.NodeID { return inv.Session.Cwd() }

// RequestExit asks the console to end the session after this command.
func (inv *Invocation) RequestExit() { inv.exit = true }

// RequestClear asks the console to clear the screen.
func (inv *Invocation) RequestClear() { inv.clear = true }
