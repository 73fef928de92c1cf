package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Acmi1/MS-Dos-Simulator/internal/session"
	"github.com/Acmi1/MS-Dos-Simulator/internal/shell"
	"github.com/Acmi1/MS-Dos-Simulator/internal/snapshot"
	"github.com/Acmi1/MS-Dos-Simulator/internal/vfs"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

func (s *verbs) save() command {
	return command{
		spec: shell.Spec{
			Name:    "SAVE",
			Summary: "Saves the disk, current directory and variables to a host file.",
			Usage:   "SAVE [filename]",
			MaxArgs: 1,
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			if s.Store == nil {
				return nil, dossim.Errorf(dossim.KindInvalidArguments, "Snapshots are not available in this session")
			}
			name := s.snapshotName(inv)

			doc, err := snapshot.Capture(inv.Session, s.Now())
			if err == nil {
				err = s.Store.Save(name, doc)
			}
			s.Metrics.RecordSnapshot("save", err)
			if err != nil {
				s.Logger.Error("save snapshot %s: %v", name, err)
				return nil, dossim.Wrap(dossim.KindInvalidArguments, err, "Unable to save state to %s", name)
			}

			s.Logger.Verbose("snapshot %s saved to %s", doc.ID, name)
			return []string{"State saved to " + name + "."}, nil
		},
	}
}

func (s *verbs) load() command {
	return command{
		spec: shell.Spec{
			Name:    "LOAD",
			Summary: "Restores the disk, current directory and variables from a host file.",
			Usage:   "LOAD [filename]",
			MaxArgs: 1,
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			if s.Store == nil {
				return nil, dossim.Errorf(dossim.KindInvalidArguments, "Snapshots are not available in this session")
			}
			name := s.snapshotName(inv)

			restored, err := s.restore(name)
			s.Metrics.RecordSnapshot("load", err)
			if err != nil {
				if errors.Is(err, snapshot.ErrSnapshotNotFound) {
					return nil, dossim.PathError(dossim.KindNotFound, name, "Snapshot not found - %s", name)
				}
				s.Logger.Error("load snapshot %s: %v", name, err)
				return nil, dossim.AsError(err)
			}

			if err := inv.Session.Attach(restored.FS, restored.Cwd); err != nil {
				return nil, err
			}
			vars := restored.Vars
			if len(vars) == 0 {
				vars = session.DefaultVars(restored.FS.Drive())
			}
			inv.Session.ReplaceVars(vars)
			return []string{"State loaded from " + name + "."}, nil
		},
	}
}

func (s *verbs) restore(name string) (*snapshot.Restored, error) {
	doc, err := s.Store.Load(name)
	if err != nil {
		return nil, err
	}
	return snapshot.Restore(doc)
}

func (s *verbs) snapshotName(inv *shell.Invocation) string {
	if name := inv.Arg(0); name != "" {
		return name
	}
	return s.SnapshotFile
}

func (s *verbs) label() command {
	return command{
		spec: shell.Spec{
			Name:    "LABEL",
			Summary: "Displays or changes the volume label of the disk.",
			Usage:   "LABEL [drive:][label]",
			Details: []string{
				"Type LABEL without parameters to display the current label.",
			},
			Raw: true,
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			fs := inv.FS
			text, err := stripDrive(fs, strings.TrimSpace(inv.Raw))
			if err != nil {
				return nil, err
			}
			if text == "" {
				return volumeLines(fs), nil
			}
			return nil, fs.SetLabel(text)
		},
	}
}

// stripDrive removes a leading "X:" and checks that X is the session drive.
func stripDrive(fs *vfs.FS, text string) (string, error) {
	if len(text) < 2 || text[1] != ':' {
		return text, nil
	}
	if !strings.EqualFold(text[:1], string(fs.Drive())) {
		return "", dossim.PathError(dossim.KindNotFound, text[:2], "Invalid drive specification - %s", text[:2])
	}
	return strings.TrimSpace(text[2:]), nil
}

func (s *verbs) format() command {
	return command{
		spec: shell.Spec{
			Name:    "FORMAT",
			Summary: "Formats the disk, erasing every file and directory.",
			Usage:   "FORMAT drive: [/V:label] [/Q]",
			Details: []string{
				"  /V:label  Specifies the volume label.",
				"  /Q        Performs a quick format.",
			},
			MinArgs:  1,
			MaxArgs:  1,
			Switches: []string{"V", "Q"},
		},
		run: s.runFormat,
	}
}

func (s *verbs) runFormat(ctx context.Context, inv *shell.Invocation) ([]string, error) {
	old := inv.FS
	arg := inv.Args[0]
	rest, err := stripDrive(old, arg)
	if err != nil {
		return nil, err
	}
	if rest != "" || len(arg) < 2 {
		return nil, dossim.Errorf(dossim.KindInvalidArguments, "Invalid drive specification - %s", arg)
	}

	label := old.Label()
	if v, ok := inv.Switch("V"); ok {
		label = strings.ToUpper(v)
		if err := vfs.ValidateLabel(label); err != nil {
			return nil, err
		}
	}

	drive := string(old.Drive()) + ":"
	ok, err := s.confirm(ctx, "ALL DATA ON DRIVE "+drive+" WILL BE LOST")
	if err != nil || !ok {
		return nil, err
	}

	fresh := vfs.New(
		vfs.WithDrive(old.Drive()),
		vfs.WithLabel(label),
		vfs.WithCapacity(old.Capacity()),
		vfs.WithClock(s.Now),
	)
	if err := inv.Session.Attach(fresh, fresh.Root()); err != nil {
		return nil, err
	}

	return []string{
		"Format complete.",
		"",
		fmt.Sprintf("%15s bytes total disk space", humanize.Comma(fresh.Capacity())),
		fmt.Sprintf("%15s bytes available on disk", humanize.Comma(fresh.Free())),
	}, nil
}
