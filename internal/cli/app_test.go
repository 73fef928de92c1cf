package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

// inTempDir runs the test from an empty directory so no dossim.yaml, .env or
// snapshot from the repository is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func testApp(t *testing.T, opts appOptions) *app {
	t.Helper()
	if opts.in == nil {
		opts.in = strings.NewReader("")
	}
	if opts.out == nil {
		opts.out = &bytes.Buffer{}
	}
	if opts.errOut == nil {
		opts.errOut = &bytes.Buffer{}
	}
	a, err := newApp(opts)
	require.NoError(t, err)
	t.Cleanup(a.close)
	return a
}

func TestSessionFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addSessionFlags(flags)

	require.NoError(t, flags.Parse([]string{
		"--snapshot", "saved.yaml",
		"--set", "A=1", "--set", "B=2",
		"--env-file", "vars.env",
		"--no-seed",
	}))

	assert.Equal(t, sessionFlags{
		snapshot: "saved.yaml",
		sets:     []string{"A=1", "B=2"},
		envFile:  "vars.env",
		noSeed:   true,
	}, readSessionFlags(flags))

	empty := pflag.NewFlagSet("empty", pflag.ContinueOnError)
	addSessionFlags(empty)
	require.NoError(t, empty.Parse(nil))
	assert.Equal(t, sessionFlags{sets: []string{}}, readSessionFlags(empty))
}

func TestNewApp_Defaults(t *testing.T) {
	inTempDir(t)
	a := testApp(t, appOptions{})

	disk := a.sess.FS()
	assert.Equal(t, byte('C'), disk.Drive())
	assert.Equal(t, dossim.DefaultVolumeLabel, disk.Label())
	_, err := disk.Resolve(disk.Root(), `C:\DOS\README.TXT`)
	assert.NoError(t, err)

	path, _ := a.sess.Var("PATH")
	assert.Equal(t, `C:\DOS`, path)
	assert.Equal(t, dossim.DefaultSnapshotFile, a.snapshot)
}

func TestNewApp_NoSeed(t *testing.T) {
	inTempDir(t)
	a := testApp(t, appOptions{flags: sessionFlags{noSeed: true}})

	entries, err := a.sess.FS().List(a.sess.FS().Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewApp_VariableLayers(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile("dossim.yaml", []byte(`drive: D
volume_label: games
prompt: $N$G
environment:
  GREETING: from-config
  COLOR: blue
env_file: vars.env
batch:
  max_depth: 3
  echo: false
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vars.env"), []byte("greeting=from-file\nSHAPE=round\n"), 0644))

	a := testApp(t, appOptions{flags: sessionFlags{sets: []string{"shape=square"}}})

	assert.Equal(t, byte('D'), a.sess.FS().Drive())
	assert.Equal(t, "GAMES", a.sess.FS().Label())
	assert.Equal(t, 3, a.sess.MaxDepth())
	assert.False(t, a.sess.Echo())

	for name, want := range map[string]string{
		"GREETING": "from-file",
		"COLOR":    "blue",
		"SHAPE":    "square",
		"PATH":     `D:\DOS`,
		"PROMPT":   "$N$G",
	} {
		got, ok := a.sess.Var(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestNewApp_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		config string
		opts   appOptions
	}{
		{name: "invalid yaml", config: "{{nope"},
		{name: "invalid drive", config: "drive: 12\n"},
		{name: "missing env file", config: "env_file: nowhere.env\n"},
		{name: "bad set", opts: appOptions{flags: sessionFlags{sets: []string{"novalue"}}}},
		{name: "explicit config missing", opts: appOptions{configPath: "missing.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inTempDir(t)
			if tt.config != "" {
				require.NoError(t, os.WriteFile("dossim.yaml", []byte(tt.config), 0644))
			}
			opts := tt.opts
			opts.in, opts.out, opts.errOut = strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}

			_, err := newApp(opts)
			require.Error(t, err)
			assert.Equal(t, dossim.ExitConfigError, dossim.ExitCodeForError(err), err.Error())
		})
	}
}

func TestNewApp_Snapshots(t *testing.T) {
	inTempDir(t)

	_, err := newApp(appOptions{
		flags:  sessionFlags{snapshot: "missing.yaml"},
		in:     strings.NewReader(""),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	})
	require.Error(t, err)

	require.NoError(t, os.WriteFile("dossim.yaml", []byte("snapshot:\n  autoload: true\n  autosave: true\n"), 0644))
	a := testApp(t, appOptions{})
	_, err = a.sess.FS().CreateDirectory(a.sess.FS().Root(), "KEEP")
	require.NoError(t, err)
	require.NoError(t, a.autosave())

	restored := testApp(t, appOptions{})
	_, err = restored.sess.FS().Resolve(restored.sess.FS().Root(), "KEEP")
	assert.NoError(t, err)
}

func TestNewApp_CorruptSnapshot(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("broken.yaml", []byte("version: 1\ndrive: C\nroot:\n  kind: file\n"), 0644))

	_, err := newApp(appOptions{
		flags:  sessionFlags{snapshot: "broken.yaml"},
		in:     strings.NewReader(""),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Equal(t, dossim.ExitSnapshotError, dossim.ExitCodeForError(err))
}

// execute runs the root command with fresh flag values.
func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestExecCommand(t *testing.T) {
	inTempDir(t)

	out, err := execute(t, "", "exec", "TYPE", `C:\DOS\README.TXT`, "|", "FIND", "TREE")
	require.NoError(t, err)
	assert.Contains(t, out, "TREE /F")

	_, err = execute(t, "", "exec", "BOGUS")
	require.Error(t, err)
	assert.Equal(t, dossim.KindUnknownCommand, dossim.KindOf(err))

	_, err = execute(t, "", "exec")
	require.Error(t, err)
	assert.Equal(t, dossim.ExitUsageError, dossim.ExitCodeForError(err))
}

func TestRunCommand(t *testing.T) {
	inTempDir(t)

	out, err := execute(t, "", "run", `C:\DOS\HELLO.BAT`, "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello, Alice!\n")
	assert.Contains(t, out, "This is HELLO.BAT speaking.\n")

	_, err = execute(t, "", "run", "NOSUCH")
	require.Error(t, err)
	assert.Equal(t, dossim.KindNotFound, dossim.KindOf(err))
}

func TestRunCommand_HostFileStrict(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("check.bat", []byte("@ECHO OFF\r\nBOGUS\r\nECHO still here\r\n"), 0644))

	out, err := execute(t, "", "run", "--file", "check.bat")
	require.NoError(t, err)
	assert.Contains(t, out, "Bad command or file name - BOGUS")
	assert.Contains(t, out, "still here")

	_, err = execute(t, "", "run", "--file", "check.bat", "--strict")
	require.Error(t, err)
	assert.Equal(t, dossim.ExitBatchFailed, dossim.ExitCodeForError(err))
}

func TestRunCommand_RecursionAborts(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("dossim.yaml", []byte("batch:\n  max_depth: 2\n"), 0644))
	script := "@ECHO @CALL LOOP > C:\\LOOP.BAT\r\n@CALL C:\\LOOP\r\n"
	require.NoError(t, os.WriteFile("loop.bat", []byte(script), 0644))

	_, err := execute(t, "", "run", "--file", "loop.bat")
	require.Error(t, err)
	assert.Equal(t, dossim.ExitBatchAborted, dossim.ExitCodeForError(err))
}

func TestShellCommand(t *testing.T) {
	inTempDir(t)

	out, err := execute(t, "ECHO hi\r\nEXIT\r\n", "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to the MS-DOS Simulator")
	assert.Contains(t, out, `C:\>ECHO hi`+"\nhi\n")

	out, err = execute(t, "VER\n", "--no-autoexec")
	require.NoError(t, err)
	assert.NotContains(t, out, "Welcome")
	assert.Contains(t, out, "MS-DOS Simulator [Version 1.0.0]")
}
