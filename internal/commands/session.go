package commands

import (
	"context"
	"strings"

	"github.com/Acmi1/MS-Dos-Simulator/internal/batch"
	"github.com/Acmi1/MS-Dos-Simulator/internal/shell"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

func (s *verbs) setVar() command {
	return command{
		spec: shell.Spec{
			Name:    "SET",
			Summary: "Displays, sets, or removes session variables.",
			Usage:   "SET [variable=[string]]",
			Details: []string{
				"  variable  Specifies the variable name.",
				"  string    Specifies a series of characters to assign to the variable.",
				"Type SET without parameters to display the current variables.",
			},
			Raw: true,
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			sess := inv.Session
			raw := strings.TrimSpace(inv.Raw)

			name, value, assign := strings.Cut(raw, "=")
			if assign {
				name = strings.TrimSpace(name)
				if name == "" {
					return nil, dossim.Errorf(dossim.KindInvalidArguments, "The syntax of the command is incorrect.")
				}
				sess.SetVar(name, value)
				return nil, nil
			}

			var out []string
			prefix := strings.ToUpper(raw)
			for _, n := range sess.VarNames() {
				if strings.HasPrefix(n, prefix) {
					v, _ := sess.Var(n)
					out = append(out, n+"="+v)
				}
			}
			if len(out) == 0 && raw != "" {
				return nil, dossim.PathError(dossim.KindNotFound, raw, "Environment variable %s not defined", raw)
			}
			return out, nil
		},
	}
}

func (s *verbs) echo() command {
	return command{
		spec: shell.Spec{
			Name:    "ECHO",
			Summary: "Displays messages, or turns command echoing on or off.",
			Usage:   "ECHO [ON | OFF] | ECHO [message]",
			Details: []string{
				"Type ECHO without parameters to display the current echo setting.",
				"ECHO. prints an empty line.",
			},
			Raw: true,
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			raw := inv.Raw
			switch strings.ToUpper(strings.TrimSpace(raw)) {
			case "":
				if inv.Session.Echo() {
					return []string{"ECHO is on."}, nil
				}
				return []string{"ECHO is off."}, nil
			case "ON":
				inv.Session.SetEcho(true)
				return nil, nil
			case "OFF":
				inv.Session.SetEcho(false)
				return nil, nil
			}
			// "ECHO." and "ECHO:" print what follows the punctuation.
			if strings.ContainsAny(raw[:1], ".:") {
				raw = raw[1:]
			}
			return []string{raw}, nil
		},
	}
}

func (s *verbs) prompt() command {
	return command{
		spec: shell.Spec{
			Name:    "PROMPT",
			Summary: "Changes the command prompt.",
			Usage:   "PROMPT [text]",
			Details: []string{
				"  $P  Current drive and path    $G  > (greater-than sign)",
				"  $N  Current drive             $L  < (less-than sign)",
				"  $D  Current date              $T  Current time",
				"  $V  Version number            $_  Carriage return and linefeed",
				"  $Q  = (equal sign)            $$  $ (dollar sign)",
				"Type PROMPT without parameters to reset the prompt to $P$G.",
			},
			Raw: true,
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			text := strings.TrimSpace(inv.Raw)
			if text == "" {
				text = dossim.DefaultPrompt
			}
			inv.Session.SetVar("PROMPT", text)
			return nil, nil
		},
	}
}

func (s *verbs) path() command {
	return command{
		spec: shell.Spec{
			Name:    "PATH",
			Summary: "Displays or sets a search path for batch files.",
			Usage:   "PATH [[drive:]path[;...]] | PATH ;",
			Details: []string{
				"Type PATH ; to clear all search-path settings.",
				"Type PATH without parameters to display the current path.",
			},
			Raw: true,
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			value := strings.TrimSpace(inv.Raw)
			switch value {
			case "":
				if p, ok := inv.Session.Var("PATH"); ok {
					return []string{"PATH=" + p}, nil
				}
				return []string{"No Path"}, nil
			case ";":
				inv.Session.SetVar("PATH", "")
			default:
				inv.Session.SetVar("PATH", value)
			}
			return nil, nil
		},
	}
}

func (s *verbs) cls() command {
	return command{
		spec: shell.Spec{
			Name:    "CLS",
			Summary: "Clears the screen.",
			Usage:   "CLS",
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			inv.RequestClear()
			return nil, nil
		},
	}
}

func (s *verbs) rem() command {
	return command{
		spec: shell.Spec{
			Name:    "REM",
			Summary: "Records comments (remarks) in batch files.",
			Usage:   "REM [comment]",
			Raw:     true,
		},
		run: func(context.Context, *shell.Invocation) ([]string, error) {
			return nil, nil
		},
	}
}

const pauseMessage = "Press any key to continue . . ."

func (s *verbs) pause() command {
	return command{
		spec: shell.Spec{
			Name:    "PAUSE",
			Summary: "Suspends processing of a batch program.",
			Usage:   "PAUSE",
		},
		run: func(ctx context.Context, _ *shell.Invocation) ([]string, error) {
			if s.Pause == nil {
				return []string{pauseMessage}, nil
			}
			return nil, s.Pause(ctx, pauseMessage)
		},
	}
}

func (s *verbs) call() command {
	return command{
		spec: shell.Spec{
			Name:    "CALL",
			Summary: "Calls one batch program from another.",
			Usage:   "CALL [drive:][path]filename [batch-parameters]",
			MinArgs: 1,
			MaxArgs: shell.Unlimited,
		},
		run: func(ctx context.Context, inv *shell.Invocation) ([]string, error) {
			if s.Batch == nil {
				return nil, dossim.Errorf(dossim.KindUnknownCommand, "Batch files are not available in this session")
			}
			id, ok := s.Batch.Find(inv.Session, inv.Args[0])
			if !ok {
				return nil, dossim.PathError(dossim.KindNotFound, inv.Args[0], "Batch file not found - %s", inv.Args[0])
			}
			results, err := s.Batch.Run(ctx, id, inv.Session, inv.Args[1:])
			return batch.Render(results), err
		},
	}
}

func (s *verbs) exit() command {
	return command{
		spec: shell.Spec{
			Name:    "EXIT",
			Aliases: []string{"QUIT"},
			Summary: "Quits the command interpreter, or the current batch script.",
			Usage:   "EXIT",
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			inv.RequestExit()
			return nil, nil
		},
	}
}
