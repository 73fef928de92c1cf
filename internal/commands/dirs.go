package commands

import (
	"context"

	"github.com/Acmi1/MS-Dos-Simulator/internal/shell"
)

func (s *verbs) cd() command {
	return command{
		spec: shell.Spec{
			Name:    "CD",
			Aliases: []string{"CHDIR"},
			Summary: "Displays the name of or changes the current directory.",
			Usage:   "CD [drive:][path]",
			Details: []string{
				"  ..   Specifies that you want to change to the parent directory.",
				"Type CD without parameters to display the current drive and directory.",
			},
			MaxArgs: 1,
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			if len(inv.Args) == 0 {
				return []string{inv.Session.CwdPath()}, nil
			}
			id, err := resolveDir(inv, inv.Args[0])
			if err != nil {
				return nil, err
			}
			return nil, inv.Session.ChangeDir(id)
		},
	}
}

func (s *verbs) md() command {
	return command{
		spec: shell.Spec{
			Name:    "MD",
			Aliases: []string{"MKDIR"},
			Summary: "Creates a directory.",
			Usage:   "MD [drive:]path [path...]",
			MinArgs: 1,
			MaxArgs: shell.Unlimited,
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			for _, arg := range inv.Args {
				parent, leaf, err := inv.FS.ResolveParent(inv.Cwd(), arg)
				if err != nil {
					return nil, err
				}
				if _, err := inv.FS.CreateDirectory(parent, leaf); err != nil {
					return nil, err
				}
			}
			return nil, nil
		},
	}
}

func (s *verbs) rd() command {
	return command{
		spec: shell.Spec{
			Name:    "RD",
			Aliases: []string{"RMDIR"},
			Summary: "Removes (deletes) a directory.",
			Usage:   "RD [drive:]path [/S] [/Q]",
			Details: []string{
				"  /S  Removes all directories and files in the specified directory",
				"      in addition to the directory itself.",
				"  /Q  Quiet mode, do not ask if ok to remove a directory tree with /S.",
			},
			MinArgs:  1,
			MaxArgs:  1,
			Switches: []string{"S", "Q"},
		},
		run: func(ctx context.Context, inv *shell.Invocation) ([]string, error) {
			id, err := resolveDir(inv, inv.Args[0])
			if err != nil {
				return nil, err
			}

			recursive := inv.Has("S")
			if recursive && !inv.Has("Q") {
				ok, err := s.confirm(ctx, inv.FS.Path(id))
				if err != nil || !ok {
					return nil, err
				}
			}
			return nil, inv.FS.Delete(id, recursive)
		},
	}
}
