package session

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Acmi1/MS-Dos-Simulator/internal/vfs"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

// Session is the mutable state of one console or batch run: the attached
// filesystem, the current directory, variables, the echo flag and the batch
// nesting depth. It is passed explicitly to every dispatch; nothing here is
// global.
//
// A Session is not safe for concurrent use. The filesystem it points to is.
type Session struct {
	id       uuid.UUID
	fs       *vfs.FS
	cwd      vfs.NodeID
	vars     map[string]string
	echo     bool
	depth    int
	maxDepth int
}

// Option configures a new Session.
type Option func(*Session)

// WithVars seeds session variables. Names are case-insensitive.
func WithVars(vars map[string]string) Option {
	return func(s *Session) {
		for k, v := range vars {
			s.SetVar(k, v)
		}
	}
}

// WithMaxDepth sets the batch nesting limit.
func WithMaxDepth(depth int) Option {
	return func(s *Session) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithEcho sets the initial batch echo state.
func WithEcho(on bool) Option {
	return func(s *Session) { s.echo = on }
}

// DefaultVars returns the variables every new session starts with.
func DefaultVars(drive byte) map[string]string {
	return map[string]string{
		"PROMPT":  dossim.DefaultPrompt,
		"PATH":    string(drive) + `:\DOS`,
		"COMSPEC": string(drive) + `:\COMMAND.COM`,
	}
}

// New creates a session rooted at the root of fs.
func New(fs *vfs.FS, opts ...Option) *Session {
	s := &Session{
		id:       uuid.New(),
		vars:     make(map[string]string),
		echo:     true,
		maxDepth: dossim.DefaultMaxBatchDepth,
	}
	for k, v := range DefaultVars(fs.Drive()) {
		s.vars[k] = v
	}
	for _, opt := range opts {
		opt(s)
	}

	// The root always exists and is a directory.
	_ = s.Attach(fs, fs.Root())
	return s
}

// ID identifies the session in logs and snapshots.
func (s *Session) ID() uuid.UUID { return s.id }

// FS returns the attached filesystem.
func (s *Session) FS() *vfs.FS { return s.fs }

// Cwd returns the current directory.
func (s *Session) Cwd() vfs.NodeID { return s.cwd }

// CwdPath returns the display path of the current directory.
func (s *Session) CwdPath() string { return s.fs.Path(s.cwd) }

// ChangeDir makes dir the current directory. On failure the session keeps
// its previous directory.
func (s *Session) ChangeDir(dir vfs.NodeID) error {
	if err := s.fs.Pin(dir); err != nil {
		return err
	}
	if s.cwd != vfs.InvalidID {
		s.fs.Unpin(s.cwd)
	}
	s.cwd = dir
	return nil
}

// Attach switches the session to another filesystem, e.g. after a snapshot
// was loaded, and makes cwd its current directory.
func (s *Session) Attach(fs *vfs.FS, cwd vfs.NodeID) error {
	if err := fs.Pin(cwd); err != nil {
		return err
	}
	if s.fs != nil && s.cwd != vfs.InvalidID {
		s.fs.Unpin(s.cwd)
	}
	s.fs = fs
	s.cwd = cwd
	return nil
}

// Close releases the current directory so it can be deleted by others.
func (s *Session) Close() {
	if s.fs != nil && s.cwd != vfs.InvalidID {
		s.fs.Unpin(s.cwd)
		s.cwd = vfs.InvalidID
	}
}

// Var returns the value of a variable.
func (s *Session) Var(name string) (string, bool) {
	v, ok := s.vars[strings.ToUpper(name)]
	return v, ok
}

// SetVar assigns a variable. An empty value removes it, as SET NAME= does.
func (s *Session) SetVar(name, value string) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if key == "" {
		return
	}
	if value == "" {
		delete(s.vars, key)
		return
	}
	s.vars[key] = value
}

// Vars returns a copy of all variables.
func (s *Session) Vars() map[string]string {
	out := make(map[string]string, len(s.vars))
	for k, v := range s.vars {
		out[k] = v
	}
	return out
}

// VarNames returns the variable names in sorted order.
func (s *Session) VarNames() []string {
	keys := make([]string, 0, len(s.vars))
	for k := range s.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ReplaceVars drops every variable and installs vars instead.
func (s *Session) ReplaceVars(vars map[string]string) {
	s.vars = make(map[string]string, len(vars))
	for k, v := range vars {
		s.SetVar(k, v)
	}
}

// Echo reports whether batch lines are echoed before they run.
func (s *Session) Echo() bool { return s.echo }

// SetEcho turns batch echo on or off.
func (s *Session) SetEcho(on bool) { s.echo = on }

// Depth returns the current batch nesting depth.
func (s *Session) Depth() int { return s.depth }

// MaxDepth returns the batch nesting limit.
func (s *Session) MaxDepth() int { return s.maxDepth }

// EnterBatch increments the nesting depth, failing once the limit would be
// exceeded. Every successful call must be paired with LeaveBatch.
func (s *Session) EnterBatch(name string) error {
	if s.depth >= s.maxDepth {
		return dossim.PathError(dossim.KindBatchRecursionLimit, name,
			"Batch nesting too deep (limit %d) - %s", s.maxDepth, name)
	}
	s.depth++
	return nil
}

// LeaveBatch decrements the nesting depth.
func (s *Session) LeaveBatch() {
	if s.depth > 0 {
		s.depth--
	}
}
