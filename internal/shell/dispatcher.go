package shell

import (
	"context"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/Acmi1/MS-Dos-Simulator/internal/logging"
	"github.com/Acmi1/MS-Dos-Simulator/internal/metrics"
	"github.com/Acmi1/MS-Dos-Simulator/internal/session"
	"github.com/Acmi1/MS-Dos-Simulator/internal/vfs"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

// Program runs a verb that is not a registered command, typically a batch
// file found by a Fallback.
type Program func(ctx context.Context, args []string, sess *session.Session) ([]string, error)

// Fallback looks up a verb that is not a registered command. ok is false
// when there is no such program. Looking up must not change the session.
type Fallback func(sess *session.Session, verb string) (prog Program, ok bool)

// Dispatcher turns command lines into handler invocations.
type Dispatcher struct {
	registry *Registry
	logger   dossim.Logger
	metrics  *metrics.Recorder
	fallback Fallback
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for per-command diagnostics.
func WithLogger(l dossim.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithMetrics records every dispatch in r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(d *Dispatcher) { d.metrics = r }
}

// NewDispatcher creates a Dispatcher over reg.
func NewDispatcher(reg *Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		logger:   logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry the dispatcher looks verbs up in.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// SetFallback installs the hook for unknown verbs. It is set after
// construction because the batch executor itself needs a Dispatcher.
func (d *Dispatcher) SetFallback(fb Fallback) { d.fallback = fb }

// Dispatch runs one command line against sess. Failures never escape as Go
// errors; they are reported in Result.Err.
func (d *Dispatcher) Dispatch(ctx context.Context, line string, sess *session.Session) dossim.Result {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return dossim.Result{}
	}

	start := time.Now()
	expanded := Expand(trimmed, sess.Var)
	res := dossim.Result{Command: expanded}

	verb, err := d.runLine(ctx, expanded, sess, &res)
	if err != nil {
		res.Err = dossim.AsError(err)
		res.Output = nil
		d.logger.Verbose("%s: %s failed: %s (%s)", sess.CwdPath(), expanded, res.Err.Message, res.Err.Kind)
	} else {
		d.logger.Verbose("%s: %s", sess.CwdPath(), expanded)
	}

	d.metrics.RecordCommand(verb, string(res.Kind()), time.Since(start))
	d.metrics.SetDiskUsage(sess.FS().Usage())
	return res
}

// segment is one stage of a pipeline after operator extraction.
type segment struct {
	verb      token
	words     []token
	raw       string
	input     string
	output    string
	appendOut bool
}

// stage is one pipeline segment that passed validation and is ready to run.
type stage struct {
	verb    string
	handler Handler
	inv     *Invocation
	help    []string
	program Program
	args    []string
}

// redirect is an output target resolved before anything runs.
type redirect struct {
	discard   bool
	dir       vfs.NodeID
	leaf      string
	appendOut bool
}

// runLine parses, binds and validates every stage and the redirection
// targets first, then runs the stages. A malformed line fails before any
// handler touches the session or the disk.
func (d *Dispatcher) runLine(ctx context.Context, line string, sess *session.Session, res *dossim.Result) (string, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", nil
	}
	parts, err := splitPipeline(tokens)
	if err != nil {
		return "", err
	}

	segs := make([]segment, len(parts))
	for i, part := range parts {
		seg, err := parseSegment(line, part)
		if err != nil {
			return "", err
		}
		if seg.output != "" && i != len(parts)-1 {
			return "", errSyntax()
		}
		if seg.input != "" && i != 0 {
			return "", errSyntax()
		}
		segs[i] = seg
	}

	stages := make([]stage, len(segs))
	for i, seg := range segs {
		st, err := d.prepare(seg, sess)
		if err != nil {
			return st.verb, err
		}
		stages[i] = st
	}
	verb := stages[len(stages)-1].verb

	var out *redirect
	if last := segs[len(segs)-1]; last.output != "" {
		if out, err = planOutput(sess, last.output, last.appendOut); err != nil {
			return verb, err
		}
	}

	var input []string
	if segs[0].input != "" {
		if input, err = readInput(sess, segs[0].input); err != nil {
			return stages[0].verb, err
		}
	}

	for _, st := range stages {
		input, err = d.runStage(ctx, st, input, sess)
		if err != nil {
			return st.verb, err
		}
		if st.inv != nil {
			res.Exit = res.Exit || st.inv.exit
			res.Clear = res.Clear || st.inv.clear
		}
	}

	if out != nil {
		if err := out.write(sess.FS(), input); err != nil {
			return verb, err
		}
		input = nil
	}

	res.Output = input
	return verb, nil
}

// prepare resolves the verb of one segment and binds its arguments. It does
// not run anything. The returned stage carries the canonical verb for
// metrics even when err is set.
func (d *Dispatcher) prepare(seg segment, sess *session.Session) (stage, error) {
	typed := seg.verb.text

	h, ok := d.registry.Lookup(typed)
	if !ok {
		if d.fallback != nil {
			if prog, found := d.fallback(sess, typed); found {
				return stage{verb: "BATCH", program: prog, args: texts(seg.words)}, nil
			}
		}

		// DOS accepts "CD..", "CD\" and "ECHO." without a space.
		if i := strings.IndexAny(typed, `.\/`); i > 0 {
			if split, found := d.registry.Lookup(typed[:i]); found {
				h = split
				seg.raw = typed[i:] + seg.rawTail()
				seg.words = append([]token{{text: typed[i:], start: seg.verb.start + i, end: seg.verb.end}}, seg.words...)
				typed = typed[:i]
				ok = true
			}
		}
	}
	if !ok {
		return stage{verb: "UNKNOWN"}, d.unknown(typed)
	}

	spec := h.Spec()
	st := stage{verb: strings.ToUpper(spec.Name), handler: h}

	inv, help, err := bind(spec, seg)
	if err != nil {
		return st, err
	}
	if help {
		st.help = HelpLines(spec)
		return st, nil
	}
	inv.Verb = typed
	st.inv = inv
	return st, nil
}

// runStage runs one prepared stage with the previous stage's output as input.
func (d *Dispatcher) runStage(ctx context.Context, st stage, input []string, sess *session.Session) ([]string, error) {
	switch {
	case st.program != nil:
		return st.program(ctx, st.args, sess)
	case st.help != nil:
		return st.help, nil
	}

	st.inv.Input = input
	st.inv.Session = sess
	st.inv.FS = sess.FS()
	return st.handler.Run(ctx, st.inv)
}

func (d *Dispatcher) unknown(verb string) error {
	msg := "Bad command or file name - " + verb
	if matches := fuzzy.Find(strings.ToUpper(verb), d.registry.Names()); len(matches) > 0 {
		msg += " (did you mean " + matches[0].Str + "?)"
	}
	return dossim.PathError(dossim.KindUnknownCommand, verb, "%s", msg)
}

// rawTail is the argument text exactly as typed, without the separator
// stripping applied to raw.
func (s segment) rawTail() string {
	if len(s.words) == 0 {
		return ""
	}
	return " " + s.raw
}

func parseSegment(line string, tokens []token) (segment, error) {
	seg := segment{verb: tokens[0]}
	if seg.verb.isOp() {
		return seg, errSyntax()
	}

	rawEnd := -1
	for i := 1; i < len(tokens); i++ {
		t := tokens[i]
		if !t.isOp() {
			seg.words = append(seg.words, t)
			continue
		}

		if rawEnd < 0 {
			rawEnd = t.start
		}
		if i+1 >= len(tokens) || tokens[i+1].isOp() {
			return seg, errSyntax()
		}
		target := tokens[i+1].text
		i++

		switch t.op {
		case opRedirect, opAppend:
			if seg.output != "" {
				return seg, errSyntax()
			}
			seg.output = target
			seg.appendOut = t.op == opAppend
		case opInput:
			seg.input = target
		}
	}

	last := tokens[len(tokens)-1].end
	if rawEnd < 0 {
		rawEnd = last
	}
	if seg.verb.end < rawEnd {
		raw := line[seg.verb.end:rawEnd]
		if raw != "" && (raw[0] == ' ' || raw[0] == '\t') {
			raw = raw[1:]
		}
		seg.raw = strings.TrimRight(raw, " \t")
	}
	return seg, nil
}

// bind validates words against spec and builds the invocation. help is set
// for "/?".
func bind(spec Spec, seg segment) (*Invocation, bool, error) {
	inv := &Invocation{Raw: seg.raw, Switches: map[string]string{}}

	if spec.Raw {
		inv.Args = texts(seg.words)
		return inv, strings.TrimSpace(seg.raw) == "/?", nil
	}

	for _, w := range seg.words {
		if w.quoted || len(w.text) < 2 || w.text[0] != '/' {
			inv.Args = append(inv.Args, w.text)
			continue
		}

		name, value := w.text[1:], ""
		if i := strings.IndexByte(name, ':'); i >= 0 {
			name, value = name[:i], name[i+1:]
		}
		switch {
		case name == "?":
			return inv, true, nil
		case spec.allows(name):
			inv.Switches[strings.ToUpper(name)] = value
		case len(name) == 1:
			return nil, false, dossim.Errorf(dossim.KindInvalidArguments, "Invalid switch - %s", w.text)
		default:
			inv.Args = append(inv.Args, w.text)
		}
	}

	if len(inv.Args) < spec.MinArgs {
		return nil, false, dossim.Errorf(dossim.KindInvalidArguments, "Required parameter missing")
	}
	if spec.MaxArgs != Unlimited && len(inv.Args) > spec.MaxArgs {
		return nil, false, dossim.Errorf(dossim.KindInvalidArguments, "Too many parameters - %s", inv.Args[spec.MaxArgs])
	}
	return inv, false, nil
}

// HelpLines renders the help text of a command.
func HelpLines(spec Spec) []string {
	lines := []string{spec.Summary, "", spec.Usage}
	if len(spec.Details) > 0 {
		lines = append(lines, "")
		lines = append(lines, spec.Details...)
	}
	return lines
}

func readInput(sess *session.Session, target string) ([]string, error) {
	fs := sess.FS()
	id, err := fs.Resolve(sess.Cwd(), target)
	if err != nil {
		return nil, err
	}
	content, err := fs.ReadFile(id)
	if err != nil {
		return nil, err
	}
	return SplitLines(content), nil
}

// planOutput validates a redirection target: its directory must exist and
// the leaf must be a valid name that is not a directory.
func planOutput(sess *session.Session, target string, appendOut bool) (*redirect, error) {
	if strings.EqualFold(target, "NUL") {
		return &redirect{discard: true}, nil
	}

	fs := sess.FS()
	dir, leaf, err := fs.ResolveParent(sess.Cwd(), target)
	if err != nil {
		return nil, err
	}
	if id, err := fs.Lookup(dir, leaf); err == nil {
		info, err := fs.Stat(id)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, dossim.PathError(dossim.KindNotAFile, fs.Path(id), "Access is denied - %s is a directory", fs.Path(id))
		}
	}
	return &redirect{dir: dir, leaf: leaf, appendOut: appendOut}, nil
}

func (r *redirect) write(fs *vfs.FS, lines []string) error {
	if r.discard {
		return nil
	}

	var data []byte
	if len(lines) > 0 {
		data = []byte(strings.Join(lines, "\n") + "\n")
	}

	id, err := fs.Lookup(r.dir, r.leaf)
	if err != nil {
		_, err = fs.CreateFile(r.dir, r.leaf, data, false)
		return err
	}
	if r.appendOut {
		return fs.AppendFile(id, data)
	}
	return fs.WriteFile(id, data)
}

// SplitLines splits file content into lines, accepting LF and CRLF. A final
// line break does not produce an empty trailing line.
func SplitLines(content []byte) []string {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}

func texts(tokens []token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.text
	}
	return out
}
