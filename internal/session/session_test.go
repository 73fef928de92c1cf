package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Acmi1/MS-Dos-Simulator/internal/vfs"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

func TestNew_Defaults(t *testing.T) {
	fs := vfs.New()
	s := New(fs)

	require.Equal(t, fs.Root(), s.Cwd())
	require.Equal(t, `C:\`, s.CwdPath())
	require.True(t, s.Echo())
	require.Equal(t, dossim.DefaultMaxBatchDepth, s.MaxDepth())

	prompt, ok := s.Var("prompt")
	require.True(t, ok)
	require.Equal(t, "$P$G", prompt)

	path, _ := s.Var("PATH")
	require.Equal(t, `C:\DOS`, path)
}

func TestVars_CaseInsensitive(t *testing.T) {
	s := New(vfs.New(), WithVars(map[string]string{"greeting": "hello"}))

	v, ok := s.Var("GREETING")
	require.True(t, ok)
	require.Equal(t, "hello", v)

	s.SetVar("Greeting", "")
	_, ok = s.Var("greeting")
	require.False(t, ok, "empty value removes the variable")

	require.Equal(t, []string{"COMSPEC", "PATH", "PROMPT"}, s.VarNames())
}

func TestChangeDir_PinsCurrentDirectory(t *testing.T) {
	fs := vfs.New()
	s := New(fs)

	a, err := fs.CreateDirectory(fs.Root(), "A")
	require.NoError(t, err)
	b, err := fs.CreateDirectory(a, "B")
	require.NoError(t, err)

	require.NoError(t, s.ChangeDir(b))
	require.ErrorIs(t, fs.Delete(a, true), dossim.ErrNodeInUse)
	require.Equal(t, b, s.Cwd())

	require.NoError(t, s.ChangeDir(fs.Root()))
	require.NoError(t, fs.Delete(a, true))
}

func TestChangeDir_FailureKeepsState(t *testing.T) {
	fs := vfs.New()
	s := New(fs)

	file, err := fs.CreateFile(fs.Root(), "A.TXT", nil, false)
	require.NoError(t, err)

	require.ErrorIs(t, s.ChangeDir(file), dossim.ErrNotADirectory)
	require.Equal(t, fs.Root(), s.Cwd())
}

func TestAttach_SwitchesFilesystem(t *testing.T) {
	first := vfs.New()
	s := New(first)

	a, err := first.CreateDirectory(first.Root(), "A")
	require.NoError(t, err)
	require.NoError(t, s.ChangeDir(a))

	second := vfs.New()
	require.NoError(t, s.Attach(second, second.Root()))
	require.Same(t, second, s.FS())

	require.NoError(t, first.Delete(a, false), "old directory is released")
}

func TestBatchDepth(t *testing.T) {
	s := New(vfs.New(), WithMaxDepth(2))

	require.NoError(t, s.EnterBatch("A.BAT"))
	require.NoError(t, s.EnterBatch("A.BAT"))
	require.ErrorIs(t, s.EnterBatch("A.BAT"), dossim.ErrBatchRecursionLimit)
	require.Equal(t, 2, s.Depth())

	s.LeaveBatch()
	s.LeaveBatch()
	s.LeaveBatch()
	require.Equal(t, 0, s.Depth())
}

func TestPrompt(t *testing.T) {
	fs := vfs.New()
	s := New(fs)
	now := time.Date(1994, 5, 31, 9, 5, 7, 0, time.UTC)

	dos, err := fs.CreateDirectory(fs.Root(), "DOS")
	require.NoError(t, err)
	require.NoError(t, s.ChangeDir(dos))

	tests := []struct {
		prompt string
		want   string
	}{
		{"$P$G", `C:\DOS>`},
		{"$n$g", "C>"},
		{"[$P]$_$$ ", "[C:\\DOS]\n$ "},
		{"$D", "Tue 05-31-1994"},
		{"$T", "09:05:07.00"},
		{"$L$B$Q$X", "<|="},
		{"trailing $", "trailing $"},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			s.SetVar("PROMPT", tt.prompt)
			require.Equal(t, tt.want, s.Prompt(now))
		})
	}
}
