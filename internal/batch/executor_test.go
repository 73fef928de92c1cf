package batch_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Acmi1/MS-Dos-Simulator/internal/batch"
	"github.com/Acmi1/MS-Dos-Simulator/internal/commands"
	"github.com/Acmi1/MS-Dos-Simulator/internal/session"
	"github.com/Acmi1/MS-Dos-Simulator/internal/shell"
	"github.com/Acmi1/MS-Dos-Simulator/internal/vfs"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fixture struct {
	t    *testing.T
	sess *session.Session
	d    *shell.Dispatcher
	ex   *batch.Executor
}

func newFixture(t *testing.T, opts ...session.Option) *fixture {
	t.Helper()
	sess := session.New(vfs.New(vfs.WithClock(clock)), opts...)
	t.Cleanup(sess.Close)

	reg := shell.NewRegistry()
	d := shell.NewDispatcher(reg)
	ex := batch.NewExecutor(d, batch.WithClock(clock))
	commands.Register(reg, commands.Deps{Batch: ex, Now: clock})
	return &fixture{t: t, sess: sess, d: d, ex: ex}
}

// script writes a batch file at path, creating it relative to the root.
func (f *fixture) script(path string, lines ...string) vfs.NodeID {
	f.t.Helper()
	fs := f.sess.FS()
	parent, name, err := fs.ResolveParent(fs.Root(), path)
	require.NoError(f.t, err)
	id, err := fs.CreateFile(parent, name, []byte(strings.Join(lines, "\r\n")+"\r\n"), false)
	require.NoError(f.t, err)
	return id
}

func (f *fixture) run(id vfs.NodeID, args ...string) ([]dossim.Result, error) {
	return f.ex.Run(context.Background(), id, f.sess, args)
}

func (f *fixture) exists(path string) bool {
	fs := f.sess.FS()
	_, err := fs.Resolve(fs.Root(), path)
	return err == nil
}

func TestRun_SharesSessionAcrossLines(t *testing.T) {
	f := newFixture(t)
	id := f.script("BUILD.BAT", "@ECHO OFF", "MKDIR A", "CD A", "MKDIR B", "DIR")

	results, err := f.run(id)
	require.NoError(t, err)
	require.Len(t, results, 5)
	for _, r := range results {
		assert.Nil(t, r.Err, r.Command)
	}

	assert.Equal(t, `C:\A`, f.sess.CwdPath())
	assert.True(t, f.exists(`A\B`))

	listing := results[4].Output
	assert.Contains(t, listing, ` Directory of C:\A`)
	found := false
	for _, line := range listing {
		if strings.Contains(line, "<DIR>") && strings.HasSuffix(line, " B") {
			found = true
		}
	}
	assert.True(t, found, "B missing from %v", listing)
}

func TestRun_ContinuesAfterRecoverableError(t *testing.T) {
	f := newFixture(t)
	id := f.script("TWICE.BAT", "@ECHO OFF", "MKDIR A", "MKDIR A", "ECHO done")

	results, err := f.run(id)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Nil(t, results[1].Err)
	require.NotNil(t, results[2].Err)
	assert.Equal(t, dossim.KindNameConflict, results[2].Err.Kind)
	assert.Equal(t, []string{"done"}, results[3].Output)

	entries, err := f.sess.FS().List(f.sess.FS().Root())
	require.NoError(t, err)
	names := 0
	for _, e := range entries {
		if strings.EqualFold(e.Name, "A") {
			names++
		}
	}
	assert.Equal(t, 1, names)
}

func TestRun_RecursionLimit(t *testing.T) {
	f := newFixture(t, session.WithMaxDepth(3))
	id := f.script("LOOP.BAT", "@CALL LOOP")

	_, err := f.run(id)
	require.Error(t, err)
	assert.Equal(t, dossim.KindBatchRecursionLimit, dossim.KindOf(err))
	assert.Equal(t, 0, f.sess.Depth())
}

func TestRun_RecursionThroughFallback(t *testing.T) {
	f := newFixture(t, session.WithMaxDepth(2))
	f.script("SELF.BAT", "@SELF")

	res := f.d.Dispatch(context.Background(), "SELF", f.sess)
	require.NotNil(t, res.Err)
	assert.Equal(t, dossim.KindBatchRecursionLimit, res.Err.Kind)
	assert.Equal(t, 0, f.sess.Depth())
}

func TestRun_EchoAndComments(t *testing.T) {
	f := newFixture(t)
	id := f.script("SHOW.BAT",
		"REM setup",
		":: comment",
		":label",
		"",
		"ECHO one",
		"@ECHO two",
		"ECHO OFF",
		"ECHO three",
	)

	results, err := f.run(id)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, []string{
		`C:\>ECHO one`, "one",
		"two",
		`C:\>ECHO OFF`,
		"three",
	}, batch.Render(results))
	assert.False(t, f.sess.Echo())
}

func TestRun_Arguments(t *testing.T) {
	f := newFixture(t)
	id := f.script("ARGS.BAT", "@ECHO %0 [%1] [%2] [%3] 100%%")

	results, err := f.run(id, "alpha", "beta")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"ARGS.BAT [alpha] [beta] [] 100%"}, results[0].Output)
}

func TestRun_ExitStopsOnlyTheScript(t *testing.T) {
	f := newFixture(t)
	f.script("INNER.BAT", "@ECHO inner", "@EXIT", "@ECHO unreachable")
	outer := f.script("OUTER.BAT", "@CALL INNER", "@ECHO outer")

	results, err := f.run(outer)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, []string{"inner"}, results[0].Output)
	assert.False(t, results[0].Exit)
	assert.Equal(t, []string{"outer"}, results[1].Output)
}

func TestRun_CancelledContext(t *testing.T) {
	f := newFixture(t)
	id := f.script("SLOW.BAT", "@MKDIR A")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.ex.Run(ctx, id, f.sess, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, f.exists("A"))
	assert.Equal(t, 0, f.sess.Depth())
}

func TestRunText(t *testing.T) {
	f := newFixture(t)

	results, err := f.ex.RunText(context.Background(), "HOST.BAT", "@MD X\n@CD X\n", f.sess, nil)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, `C:\X`, f.sess.CwdPath())
}

func TestFind(t *testing.T) {
	f := newFixture(t)
	f.script("LOCAL.BAT", "@ECHO local")
	require.Nil(t, f.d.Dispatch(context.Background(), "MD TOOLS", f.sess).Err)
	tool := f.script(`TOOLS\TOOL.BAT`, "@ECHO tool")

	_, ok := f.ex.Find(f.sess, "local")
	assert.True(t, ok)
	_, ok = f.ex.Find(f.sess, "LOCAL.BAT")
	assert.True(t, ok)

	_, ok = f.ex.Find(f.sess, "TOOL")
	assert.False(t, ok)

	f.sess.SetVar("PATH", `C:\NOWHERE;C:\TOOLS`)
	id, ok := f.ex.Find(f.sess, "tool")
	require.True(t, ok)
	assert.Equal(t, tool, id)

	_, ok = f.ex.Find(f.sess, "TOOLS")
	assert.False(t, ok)

	res := f.d.Dispatch(context.Background(), "tool", f.sess)
	require.Nil(t, res.Err)
	assert.Equal(t, []string{"tool"}, res.Output)
}

func TestSubstituteArgs(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"ECHO plain", "ECHO plain"},
		{"ECHO %1-%2", "ECHO a-b"},
		{"ECHO %9", "ECHO "},
		{"ECHO %0", "ECHO RUN.BAT"},
		{"ECHO 50%%", "ECHO 50%%"},
		{"ECHO %PATH%", "ECHO %PATH%"},
		{"ECHO trailing%", "ECHO trailing%"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, batch.SubstituteArgs(tt.line, "RUN.BAT", []string{"a", "b"}))
		})
	}
}

func TestRender(t *testing.T) {
	results := []dossim.Result{
		{Command: "DIR", Echo: true, Prompt: `C:\>`, Output: []string{"x"}},
		{Command: "BAD", Err: &dossim.Error{Kind: dossim.KindUnknownCommand, Message: "Bad command or file name - BAD"}},
	}
	assert.Equal(t, []string{`C:\>DIR`, "x", "Bad command or file name - BAD"}, batch.Render(results))
}
