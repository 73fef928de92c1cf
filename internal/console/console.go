package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Acmi1/MS-Dos-Simulator/internal/logging"
	"github.com/Acmi1/MS-Dos-Simulator/internal/session"
	"github.com/Acmi1/MS-Dos-Simulator/internal/shell"
	"github.com/Acmi1/MS-Dos-Simulator/internal/tui"
	"github.com/Acmi1/MS-Dos-Simulator/internal/vfs"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

// clearScreen homes the cursor and erases the display.
const clearScreen = "\x1b[H\x1b[2J"

// Console reads command lines from a reader and writes results to a writer.
type Console struct {
	dispatcher *shell.Dispatcher
	sess       *session.Session
	in         *bufio.Reader
	out        io.Writer
	logger     dossim.Logger
	now        func() time.Time

	styled    bool
	echoInput bool

	promptStyle lipgloss.Style
	errorStyle  lipgloss.Style
}

// Option configures a Console.
type Option func(*Console)

// WithStyle turns lipgloss styling of the prompt and errors on or off.
func WithStyle(on bool) Option {
	return func(c *Console) { c.styled = on }
}

// WithEchoInput repeats every line read after the prompt, so transcripts of
// piped input read like an interactive session.
func WithEchoInput(on bool) Option {
	return func(c *Console) { c.echoInput = on }
}

// WithClock replaces time.Now for the prompt.
func WithClock(now func() time.Time) Option {
	return func(c *Console) { c.now = now }
}

// WithLogger sets the logger.
func WithLogger(l dossim.Logger) Option {
	return func(c *Console) { c.logger = l }
}

// New creates a Console. in is shared with any collaborator that also reads
// from the terminal, such as the approver.
func New(d *shell.Dispatcher, sess *session.Session, in *bufio.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		dispatcher:  d,
		sess:        sess,
		in:          in,
		out:         out,
		logger:      logging.NewNullLogger(),
		now:         time.Now,
		promptStyle: tui.PromptStyle,
		errorStyle:  tui.ErrorStyle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Banner prints the start-up lines.
func (c *Console) Banner() {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "MS-DOS Simulator [Version %s]\n", dossim.Version)
	fmt.Fprintln(c.out, "Type HELP for a list of commands, EXIT to quit.")
	fmt.Fprintln(c.out)
}

// Autoexec runs the batch file at path on the root of the disk when it
// exists. A missing file is not an error.
func (c *Console) Autoexec(ctx context.Context, path string) dossim.Result {
	fs := c.sess.FS()
	id, err := fs.Resolve(fs.Root(), path)
	if err != nil {
		return dossim.Result{}
	}
	if info, err := fs.Stat(id); err != nil || info.Kind != vfs.File {
		return dossim.Result{}
	}
	c.logger.Verbose("Running %s", fs.Path(id))
	return c.Execute(ctx, fs.Path(id))
}

// Execute dispatches one line and prints its outcome.
func (c *Console) Execute(ctx context.Context, line string) dossim.Result {
	res := c.dispatcher.Dispatch(ctx, line, c.sess)
	c.Print(res)
	return res
}

// Print writes output lines followed by the error message, if any.
func (c *Console) Print(res dossim.Result) {
	if res.Clear && c.styled {
		fmt.Fprint(c.out, clearScreen)
	}
	for _, line := range res.Output {
		fmt.Fprintln(c.out, line)
	}
	if res.Err != nil {
		fmt.Fprintln(c.out, c.style(c.errorStyle, res.Err.Message))
	}
}

// Run loops until EXIT, end of input or ctx is done. End of input is a
// normal exit.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.out, c.style(c.promptStyle, c.sess.Prompt(c.now())))
		line, err := c.readLine()
		if err == io.EOF {
			fmt.Fprintln(c.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}
		if c.echoInput {
			fmt.Fprintln(c.out, line)
		}

		if res := c.Execute(ctx, line); res.Exit {
			return nil
		}
	}
}

// Pause prints message and waits for a line of input. It matches the
// signature of the PAUSE collaborator.
func (c *Console) Pause(_ context.Context, message string) error {
	fmt.Fprint(c.out, message)
	if _, err := c.readLine(); err != nil && err != io.EOF {
		return err
	}
	fmt.Fprintln(c.out)
	return nil
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) style(s lipgloss.Style, text string) string {
	if !c.styled {
		return text
	}
	return s.Render(text)
}
