package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode says how much of the terminal the simulator may take over.
type Mode int

const (
	// ModeNonInteractive reads commands line by line: EDIT falls back to the
	// line editor, confirmations are answered automatically and no banner is
	// printed. Used for piped scripts, `dossim exec` and CI.
	ModeNonInteractive Mode = iota
	// ModeInteractive opens EDIT full screen and asks before destructive
	// commands.
	ModeInteractive
)

func (m Mode) String() string {
	if m == ModeInteractive {
		return "interactive"
	}
	return "non-interactive"
}

// Environment is what mode detection looks at.
type Environment struct {
	Getenv       func(string) string
	StdinIsTerm  bool
	StdoutIsTerm bool
}

// CurrentEnvironment describes the running process.
func CurrentEnvironment() Environment {
	return Environment{
		Getenv:       os.Getenv,
		StdinIsTerm:  term.IsTerminal(int(os.Stdin.Fd())),
		StdoutIsTerm: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Detect picks the mode for env. DOSSIM_NON_INTERACTIVE=1 or any CI value
// forces line mode; otherwise both stdin and stdout must be terminals, since
// the editor reads keys from one and draws on the other.
func Detect(env Environment) Mode {
	if env.Getenv("DOSSIM_NON_INTERACTIVE") == "1" || env.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if env.StdinIsTerm && env.StdoutIsTerm {
		return ModeInteractive
	}
	return ModeNonInteractive
}

// DetectMode is Detect for the running process.
func DetectMode() Mode {
	return Detect(CurrentEnvironment())
}

// ColorEnabled reports whether prompts and errors are styled. NO_COLOR turns
// styling off but keeps the full-screen editor.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
