package batch

import (
	"context"
	"strings"
	"time"

	"github.com/Acmi1/MS-Dos-Simulator/internal/logging"
	"github.com/Acmi1/MS-Dos-Simulator/internal/metrics"
	"github.com/Acmi1/MS-Dos-Simulator/internal/session"
	"github.com/Acmi1/MS-Dos-Simulator/internal/shell"
	"github.com/Acmi1/MS-Dos-Simulator/internal/vfs"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

// Executor replays batch files through a Dispatcher.
type Executor struct {
	dispatcher *shell.Dispatcher
	logger     dossim.Logger
	metrics    *metrics.Recorder
	now        func() time.Time
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger.
func WithLogger(l dossim.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// WithMetrics records batch activity in r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Executor) { e.metrics = r }
}

// WithClock replaces time.Now for echoed prompts.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) { e.now = now }
}

// NewExecutor creates an Executor and installs it as the dispatcher's
// fallback, so typing a batch file name runs it.
func NewExecutor(d *shell.Dispatcher, opts ...Option) *Executor {
	e := &Executor{
		dispatcher: d,
		logger:     logging.NewNullLogger(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	d.SetFallback(e.fallback)
	return e
}

// Run executes the batch file script with the given %1..%9 arguments.
//
// Every line goes through the dispatcher with the same session, so a CD on
// one line affects the next. Recoverable failures are recorded and the run
// continues. An unrecoverable failure stops the run and is returned together
// with the results gathered so far.
func (e *Executor) Run(ctx context.Context, script vfs.NodeID, sess *session.Session, args []string) ([]dossim.Result, error) {
	fs := sess.FS()
	info, err := fs.Stat(script)
	if err != nil {
		return nil, err
	}
	content, err := fs.ReadFile(script)
	if err != nil {
		return nil, err
	}
	return e.RunText(ctx, info.Name, string(content), sess, args)
}

// RunText executes batch text that does not live in the virtual disk, such
// as a script read from the host.
func (e *Executor) RunText(ctx context.Context, name, text string, sess *session.Session, args []string) ([]dossim.Result, error) {
	if err := sess.EnterBatch(name); err != nil {
		e.metrics.RecordBatchRun("aborted")
		return nil, err
	}
	defer sess.LeaveBatch()

	e.logger.Verbose("batch %s started (depth %d)", name, sess.Depth())

	var (
		results []dossim.Result
		failed  bool
	)
	for n, line := range strings.Split(text, "\n") {
		if err := ctx.Err(); err != nil {
			e.metrics.RecordBatchRun("aborted")
			return results, err
		}

		cmd, silent, ok := prepare(line)
		if !ok {
			continue
		}
		cmd = SubstituteArgs(cmd, name, args)

		echo := sess.Echo() && !silent
		prompt := ""
		if echo {
			prompt = sess.Prompt(e.now())
		}

		res := e.dispatcher.Dispatch(ctx, cmd, sess)
		res.Echo = echo
		res.Prompt = prompt
		results = append(results, res)
		e.metrics.RecordBatchLine()

		if res.Err != nil {
			failed = true
			e.logger.Verbose("batch %s line %d: %s", name, n+1, res.Err.Message)
			if !res.Err.Kind.Recoverable() {
				e.metrics.RecordBatchRun("aborted")
				return results, res.Err
			}
		}
		if res.Exit {
			break
		}
	}

	if failed {
		e.metrics.RecordBatchRun("failed")
	} else {
		e.metrics.RecordBatchRun("ok")
	}
	return results, nil
}

// Find locates a batch file by the name typed at the prompt. The name may
// omit the .BAT extension and may be a path. Bare names are looked up in the
// current directory first, then in every directory listed in PATH.
func (e *Executor) Find(sess *session.Session, name string) (vfs.NodeID, bool) {
	candidates := []string{name}
	if !strings.HasSuffix(strings.ToUpper(name), dossim.BatchExtension) {
		candidates = []string{name + dossim.BatchExtension}
	}

	fs := sess.FS()
	bases := []vfs.NodeID{sess.Cwd()}
	if !strings.ContainsAny(name, `\/:`) {
		if path, ok := sess.Var("PATH"); ok {
			for _, dir := range strings.Split(path, ";") {
				if dir = strings.TrimSpace(dir); dir == "" {
					continue
				}
				if id, err := fs.Resolve(fs.Root(), dir); err == nil {
					bases = append(bases, id)
				}
			}
		}
	}

	for _, base := range bases {
		for _, c := range candidates {
			id, err := fs.Resolve(base, c)
			if err != nil {
				continue
			}
			if info, err := fs.Stat(id); err == nil && !info.IsDir() {
				return id, true
			}
		}
	}
	return vfs.InvalidID, false
}

func (e *Executor) fallback(sess *session.Session, verb string) (shell.Program, bool) {
	id, ok := e.Find(sess, verb)
	if !ok {
		return nil, false
	}
	return func(ctx context.Context, args []string, sess *session.Session) ([]string, error) {
		results, err := e.Run(ctx, id, sess, args)
		return Render(results), err
	}, true
}

// prepare classifies one raw line. ok is false for lines that are skipped:
// blanks, REM and :: comments, and :labels.
func prepare(line string) (cmd string, silent bool, ok bool) {
	cmd = strings.TrimSpace(strings.TrimRight(line, "\r"))
	if strings.HasPrefix(cmd, "@") {
		silent = true
		cmd = strings.TrimSpace(cmd[1:])
	}
	if cmd == "" || strings.HasPrefix(cmd, ":") || isRem(cmd) {
		return "", silent, false
	}
	return cmd, silent, true
}

func isRem(cmd string) bool {
	if len(cmd) < 3 || !strings.EqualFold(cmd[:3], "REM") {
		return false
	}
	return len(cmd) == 3 || cmd[3] == ' ' || cmd[3] == '\t'
}

// SubstituteArgs replaces %0 with the script name and %1..%9 with args.
// Missing arguments expand to nothing. "%%" is left for the dispatcher.
func SubstituteArgs(line, name string, args []string) string {
	if !strings.Contains(line, "%") {
		return line
	}

	var b strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c != '%' || i+1 >= len(line) {
			b.WriteByte(c)
			continue
		}
		next := line[i+1]
		switch {
		case next == '%':
			b.WriteString("%%")
			i++
		case next == '0':
			b.WriteString(name)
			i++
		case next >= '1' && next <= '9':
			if n := int(next - '1'); n < len(args) {
				b.WriteString(args[n])
			}
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Render flattens results into console lines: the echoed prompt and command,
// then output, then the error message.
func Render(results []dossim.Result) []string {
	var lines []string
	for _, r := range results {
		if r.Echo {
			lines = append(lines, r.Prompt+r.Command)
		}
		lines = append(lines, r.Output...)
		if r.Err != nil {
			lines = append(lines, r.Err.Message)
		}
	}
	return lines
}
