package commands_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/Acmi1/MS-Dos-Simulator/internal/batch"
	"github.com/Acmi1/MS-Dos-Simulator/internal/commands"
	"github.com/Acmi1/MS-Dos-Simulator/internal/session"
	"github.com/Acmi1/MS-Dos-Simulator/internal/shell"
	"github.com/Acmi1/MS-Dos-Simulator/internal/snapshot"
	"github.com/Acmi1/MS-Dos-Simulator/internal/vfs"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fakeApprover struct {
	answer bool
	asked  []string
}

func (a *fakeApprover) Confirm(_ context.Context, target string) (bool, error) {
	a.asked = append(a.asked, target)
	return a.answer, nil
}

type fakeEditor struct {
	text   string
	save   bool
	name   string
	before []byte
}

func (e *fakeEditor) Edit(_ context.Context, name string, content []byte) ([]byte, bool, error) {
	e.name = name
	e.before = content
	if !e.save {
		return content, false, nil
	}
	return []byte(e.text), true, nil
}

type harness struct {
	t        *testing.T
	sess     *session.Session
	d        *shell.Dispatcher
	approver *fakeApprover
	editor   *fakeEditor
	mem      afero.Fs
	paused   []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		t:        t,
		approver: &fakeApprover{answer: true},
		editor:   &fakeEditor{},
		mem:      afero.NewMemMapFs(),
	}

	fs := vfs.New(vfs.WithClock(clock))
	h.sess = session.New(fs)
	t.Cleanup(h.sess.Close)

	reg := shell.NewRegistry()
	h.d = shell.NewDispatcher(reg)
	commands.Register(reg, commands.Deps{
		Batch:    batch.NewExecutor(h.d, batch.WithClock(clock)),
		Editor:   h.editor,
		Approver: h.approver,
		Store:    snapshot.NewStore(h.mem, "/state"),
		Pause: func(_ context.Context, message string) error {
			h.paused = append(h.paused, message)
			return nil
		},
		Now: clock,
	})
	return h
}

func (h *harness) run(line string) dossim.Result {
	h.t.Helper()
	return h.d.Dispatch(context.Background(), line, h.sess)
}

// ok runs line and requires success.
func (h *harness) ok(line string) []string {
	h.t.Helper()
	res := h.run(line)
	require.Nil(h.t, res.Err, "%s: unexpected error %v", line, res.Err)
	return res.Output
}

// fail runs line and requires a failure of kind.
func (h *harness) fail(line string, kind dossim.Kind) *dossim.Error {
	h.t.Helper()
	res := h.run(line)
	require.NotNil(h.t, res.Err, "%s: expected %s", line, kind)
	require.Equal(h.t, kind, res.Err.Kind, "%s: %s", line, res.Err.Message)
	return res.Err
}

func (h *harness) fs() *vfs.FS { return h.sess.FS() }

func (h *harness) file(path string) string {
	h.t.Helper()
	id, err := h.fs().Resolve(h.fs().Root(), path)
	require.NoError(h.t, err)
	content, err := h.fs().ReadFile(id)
	require.NoError(h.t, err)
	return string(content)
}

func (h *harness) exists(path string) bool {
	_, err := h.fs().Resolve(h.fs().Root(), path)
	return err == nil
}

// hasFields reports whether some line consists of exactly the given fields.
func hasFields(out []string, want ...string) bool {
	for _, line := range out {
		if strings.Join(strings.Fields(line), " ") == strings.Join(want, " ") {
			return true
		}
	}
	return false
}
