package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Acmi1/MS-Dos-Simulator/internal/batch"
	"github.com/Acmi1/MS-Dos-Simulator/internal/commands"
	"github.com/Acmi1/MS-Dos-Simulator/internal/config"
	"github.com/Acmi1/MS-Dos-Simulator/internal/console"
	"github.com/Acmi1/MS-Dos-Simulator/internal/editor"
	"github.com/Acmi1/MS-Dos-Simulator/internal/logging"
	"github.com/Acmi1/MS-Dos-Simulator/internal/metrics"
	"github.com/Acmi1/MS-Dos-Simulator/internal/params"
	"github.com/Acmi1/MS-Dos-Simulator/internal/seed"
	"github.com/Acmi1/MS-Dos-Simulator/internal/session"
	"github.com/Acmi1/MS-Dos-Simulator/internal/shell"
	"github.com/Acmi1/MS-Dos-Simulator/internal/snapshot"
	"github.com/Acmi1/MS-Dos-Simulator/internal/tui"
	"github.com/Acmi1/MS-Dos-Simulator/internal/ui"
	"github.com/Acmi1/MS-Dos-Simulator/internal/vfs"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

// sessionFlags are shared by every subcommand that builds a session.
type sessionFlags struct {
	snapshot   string
	sets       []string
	envFile    string
	noAutoexec bool
	noSeed     bool
}

// appOptions is everything needed to assemble a session.
type appOptions struct {
	configPath  string
	verbose     bool
	interactive bool
	flags       sessionFlags
	in          io.Reader
	out         io.Writer
	errOut      io.Writer
}

// app is one fully wired simulator instance.
type app struct {
	cfg        *config.SimulatorConfig
	logger     dossim.Logger
	sess       *session.Session
	dispatcher *shell.Dispatcher
	executor   *batch.Executor
	console    *console.Console
	store      *snapshot.Store
	metrics    *metrics.Recorder
	snapshot   string
}

// addSessionFlags registers the flags every session-starting command shares.
func addSessionFlags(flags *pflag.FlagSet) {
	flags.String("snapshot", "", "Load state from this snapshot file before starting")
	flags.StringSlice("set", nil, "Set a session variable (NAME=value), repeatable")
	flags.String("env-file", "", "Read session variables from a .env style file")
	flags.Bool("no-autoexec", false, "Do not run AUTOEXEC.BAT at start")
	flags.Bool("no-seed", false, "Start with an empty disk instead of the seed template")
}

func readSessionFlags(flags *pflag.FlagSet) sessionFlags {
	var f sessionFlags
	f.snapshot, _ = flags.GetString("snapshot")
	f.sets, _ = flags.GetStringSlice("set")
	f.envFile, _ = flags.GetString("env-file")
	f.noAutoexec, _ = flags.GetBool("no-autoexec")
	f.noSeed, _ = flags.GetBool("no-seed")
	return f
}

// loadConfig resolves dossim.yaml. An explicit path must exist; the default
// ./dossim.yaml is optional.
func loadConfig(path string) (*config.SimulatorConfig, error) {
	_ = godotenv.Load()

	var (
		cfg *config.SimulatorConfig
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(".")
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.Default(), nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load %s: %v", dossim.ErrInvalidConfig, configName(path), err)
	}
	return cfg, nil
}

func configName(path string) string {
	if path == "" {
		return config.ConfigFileName
	}
	return path
}

// sessionVars layers the default variables, dossim.yaml, the env file and
// --set flags.
func sessionVars(cfg *config.SimulatorConfig, flags sessionFlags) (map[string]string, error) {
	envFile := cfg.EnvFile
	if flags.envFile != "" {
		envFile = flags.envFile
	}

	var fromFile map[string]string
	if envFile != "" {
		vars, err := params.LoadEnvFile(envFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", dossim.ErrInvalidConfig, err)
		}
		fromFile = vars
	}

	fromFlags, err := params.ParseKeyValuePairs(flags.sets)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid --set: %v", dossim.ErrInvalidConfig, err)
	}

	return params.Merge(
		session.DefaultVars(cfg.DriveLetter()),
		map[string]string{"PROMPT": cfg.Prompt},
		cfg.Environment,
		fromFile,
		fromFlags,
	), nil
}

// newApp assembles disk, session, dispatcher, batch executor and console.
func newApp(opts appOptions) (*app, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	color := tui.ColorEnabled()
	if on, set := cfg.ColorOverride(); set {
		color = on
	}
	logger := logging.NewConsoleLogger(opts.verbose,
		logging.WithWriter(opts.errOut),
		logging.WithColor(color),
	)

	disk := vfs.New(
		vfs.WithDrive(cfg.DriveLetter()),
		vfs.WithLabel(strings.ToUpper(cfg.VolumeLabel)),
		vfs.WithCapacity(cfg.Capacity),
	)
	seedName := cfg.Seed
	if opts.flags.noSeed {
		seedName = seed.None
	}
	if err := seed.NewSeeder(logger).Populate(disk, seedName); err != nil {
		return nil, fmt.Errorf("%w: %v", dossim.ErrInvalidConfig, err)
	}

	vars, err := sessionVars(cfg, opts.flags)
	if err != nil {
		return nil, err
	}
	sess := session.New(disk,
		session.WithVars(vars),
		session.WithMaxDepth(cfg.Batch.MaxDepth),
		session.WithEcho(cfg.EchoEnabled()),
	)
	logger.Verbose("Session %s started on drive %c:", sess.ID(), disk.Drive())

	a := &app{
		cfg:      cfg,
		logger:   logger,
		sess:     sess,
		store:    snapshot.NewOSStore(cfg.Snapshot.Dir),
		metrics:  metrics.New(),
		snapshot: cfg.Snapshot.File,
	}
	if opts.flags.snapshot != "" {
		a.snapshot = opts.flags.snapshot
	}

	if err := a.restore(opts.flags.snapshot != "" || cfg.Snapshot.Autoload, opts.flags.snapshot != ""); err != nil {
		sess.Close()
		return nil, err
	}

	in := bufio.NewReader(opts.in)
	var (
		approver dossim.Approver
		edit     dossim.Editor
	)
	if opts.interactive {
		approver = ui.NewInteractiveApprover(in, opts.out)
		edit = editor.NewTUI()
	} else {
		approver = ui.NewForcedApprover(opts.verbose)
		edit = editor.NewLines(in, opts.out)
	}

	reg := shell.NewRegistry()
	a.dispatcher = shell.NewDispatcher(reg, shell.WithLogger(logger), shell.WithMetrics(a.metrics))
	a.executor = batch.NewExecutor(a.dispatcher, batch.WithLogger(logger), batch.WithMetrics(a.metrics))
	a.console = console.New(a.dispatcher, sess, in, opts.out,
		console.WithStyle(opts.interactive && color),
		console.WithEchoInput(!opts.interactive),
		console.WithLogger(logger),
	)
	commands.Register(reg, commands.Deps{
		Batch:        a.executor,
		Editor:       edit,
		Approver:     approver,
		Store:        a.store,
		SnapshotFile: a.snapshot,
		Pause:        a.console.Pause,
		Logger:       logger,
		Metrics:      a.metrics,
	})
	return a, nil
}

// restore loads the configured snapshot into the session. A missing file is
// only an error when it was asked for explicitly.
func (a *app) restore(enabled, required bool) error {
	if !enabled {
		return nil
	}

	doc, err := a.store.Load(a.snapshot)
	if errors.Is(err, snapshot.ErrSnapshotNotFound) && !required {
		a.logger.Verbose("No snapshot at %s, starting fresh", a.snapshot)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", a.snapshot, err)
	}

	restored, err := snapshot.Restore(doc)
	if err != nil {
		return fmt.Errorf("restore snapshot %s: %w", a.snapshot, err)
	}
	if err := a.sess.Attach(restored.FS, restored.Cwd); err != nil {
		return fmt.Errorf("restore snapshot %s: %w", a.snapshot, err)
	}
	if len(restored.Vars) > 0 {
		a.sess.ReplaceVars(restored.Vars)
	}
	a.logger.Verbose("Restored %s (saved %s)", a.snapshot, doc.SavedAt.Format("2006-01-02 15:04:05"))
	return nil
}

// autosave writes the session back when snapshot.autosave is set.
func (a *app) autosave() error {
	if !a.cfg.Snapshot.Autosave {
		return nil
	}
	doc, err := snapshot.Capture(a.sess, timeNow())
	if err == nil {
		err = a.store.Save(a.snapshot, doc)
	}
	a.metrics.RecordSnapshot("save", err)
	if err != nil {
		return fmt.Errorf("autosave %s: %w", a.snapshot, err)
	}
	a.logger.Verbose("State saved to %s", a.snapshot)
	return nil
}

// autoexec runs the configured start-up batch file.
func (a *app) autoexec(ctx context.Context) {
	a.console.Autoexec(ctx, a.cfg.Batch.Autoexec)
}

func (a *app) close() {
	a.sess.Close()
}

// appFromCommand builds an app from the standard flags of cmd.
func appFromCommand(cmd *cobra.Command, interactive bool) (*app, error) {
	return newApp(appOptions{
		configPath:  getConfigFlag(cmd),
		verbose:     getVerboseFlag(cmd),
		interactive: interactive,
		flags:       readSessionFlags(cmd.Flags()),
		in:          cmd.InOrStdin(),
		out:         cmd.OutOrStdout(),
		errOut:      cmd.ErrOrStderr(),
	})
}

// timeNow is replaced in tests.
var timeNow = time.Now
