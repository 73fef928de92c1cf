package commands

import (
	"context"
	"time"

	"github.com/Acmi1/MS-Dos-Simulator/internal/batch"
	"github.com/Acmi1/MS-Dos-Simulator/internal/checksum"
	"github.com/Acmi1/MS-Dos-Simulator/internal/logging"
	"github.com/Acmi1/MS-Dos-Simulator/internal/metrics"
	"github.com/Acmi1/MS-Dos-Simulator/internal/shell"
	"github.com/Acmi1/MS-Dos-Simulator/internal/snapshot"
	"github.com/Acmi1/MS-Dos-Simulator/internal/vfs"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

// Deps are the collaborators the verbs need. Only Batch is required; the
// other fields have usable defaults.
type Deps struct {
	// Batch runs CALL and is used to locate batch files.
	Batch *batch.Executor

	// Editor backs EDIT. EDIT fails when it is nil.
	Editor dossim.Editor

	// Approver confirms destructive operations. Nil approves everything.
	Approver dossim.Approver

	// Store backs SAVE and LOAD. Both fail when it is nil.
	Store *snapshot.Store

	// SnapshotFile is the default file name for SAVE and LOAD.
	SnapshotFile string

	// Pause shows message and waits for a key. When nil PAUSE only prints
	// the message.
	Pause func(ctx context.Context, message string) error

	Logger  dossim.Logger
	Metrics *metrics.Recorder
	Now     func() time.Time
}

// command adapts a spec and a function to shell.Handler.
type command struct {
	spec shell.Spec
	run  func(ctx context.Context, inv *shell.Invocation) ([]string, error)
}

func (c command) Spec() shell.Spec { return c.spec }

func (c command) Run(ctx context.Context, inv *shell.Invocation) ([]string, error) {
	return c.run(ctx, inv)
}

// verbs holds the dependencies shared by all verbs.
type verbs struct {
	Deps
	registry *shell.Registry
	sum      checksum.SHA256
	started  time.Time
}

// Register adds every verb to reg.
func Register(reg *shell.Registry, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = logging.NewNullLogger()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.SnapshotFile == "" {
		deps.SnapshotFile = dossim.DefaultSnapshotFile
	}

	s := &verbs{Deps: deps, registry: reg, sum: checksum.New()}
	s.started = s.Now()

	for _, c := range s.all() {
		reg.Register(c)
	}
}

func (s *verbs) all() []command {
	return []command{
		// filesystem
		s.dir(), s.cd(), s.md(), s.rd(), s.del(), s.copy(), s.move(), s.ren(),
		s.typ(), s.more(), s.edit(), s.tree(), s.create(), s.attrib(),
		// text
		s.find(), s.sort(), s.comp(),
		// session
		s.setVar(), s.echo(), s.prompt(), s.path(), s.cls(), s.rem(), s.pause(),
		s.call(), s.exit(), s.save(), s.load(), s.label(), s.format(),
		// info
		s.help(), s.ver(), s.vol(), s.date(), s.time(), s.mem(), s.sys(),
	}
}

func (s *verbs) confirm(ctx context.Context, target string) (bool, error) {
	if s.Approver == nil {
		return true, nil
	}
	return s.Approver.Confirm(ctx, target)
}

// glob resolves text whose last segment may contain a wildcard. It returns
// the directory searched and the entries matched. Without a wildcard the
// single node text names is returned and its parent is the directory.
func glob(inv *shell.Invocation, text string) (vfs.NodeID, []vfs.Info, error) {
	fs := inv.FS
	dirText, leaf := vfs.SplitLeaf(text)

	if !vfs.HasWildcard(leaf) {
		id, err := fs.Resolve(inv.Cwd(), text)
		if err != nil {
			return vfs.InvalidID, nil, err
		}
		info, err := fs.Stat(id)
		if err != nil {
			return vfs.InvalidID, nil, err
		}
		return info.Parent, []vfs.Info{info}, nil
	}

	dir := inv.Cwd()
	if dirText != "" {
		var err error
		if dir, err = fs.Resolve(inv.Cwd(), dirText); err != nil {
			return vfs.InvalidID, nil, err
		}
	}
	entries, err := fs.List(dir)
	if err != nil {
		return vfs.InvalidID, nil, err
	}

	var matched []vfs.Info
	for _, e := range entries {
		if vfs.Match(leaf, e.Name) {
			matched = append(matched, e)
		}
	}
	return dir, matched, nil
}

// resolveDir resolves text and requires a directory.
func resolveDir(inv *shell.Invocation, text string) (vfs.NodeID, error) {
	id, err := inv.FS.Resolve(inv.Cwd(), text)
	if err != nil {
		return vfs.InvalidID, err
	}
	info, err := inv.FS.Stat(id)
	if err != nil {
		return vfs.InvalidID, err
	}
	if !info.IsDir() {
		return vfs.InvalidID, dossim.PathError(dossim.KindNotADirectory, text, "The directory name is invalid - %s", text)
	}
	return id, nil
}

// readFile resolves and reads a file.
func readFile(inv *shell.Invocation, text string) ([]byte, error) {
	id, err := inv.FS.Resolve(inv.Cwd(), text)
	if err != nil {
		return nil, err
	}
	return inv.FS.ReadFile(id)
}

// inputLines returns the lines of file, or the piped input when file is
// empty.
func inputLines(inv *shell.Invocation, file string) ([]string, error) {
	if file == "" {
		return inv.Input, nil
	}
	content, err := readFile(inv, file)
	if err != nil {
		return nil, err
	}
	return shell.SplitLines(content), nil
}
