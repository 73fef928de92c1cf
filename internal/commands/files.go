package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/Acmi1/MS-Dos-Simulator/internal/shell"
	"github.com/Acmi1/MS-Dos-Simulator/internal/vfs"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

func (s *verbs) del() command {
	return command{
		spec: shell.Spec{
			Name:    "DEL",
			Aliases: []string{"ERASE"},
			Summary: "Deletes one or more files.",
			Usage:   "DEL [drive:][path]filename [...] [/Q]",
			Details: []string{
				"  /Q  Quiet mode, do not ask if ok to delete on global wildcard.",
				"Naming a directory deletes every file in it.",
			},
			MinArgs:  1,
			MaxArgs:  shell.Unlimited,
			Switches: []string{"Q"},
		},
		run: s.runDel,
	}
}

func (s *verbs) runDel(ctx context.Context, inv *shell.Invocation) ([]string, error) {
	fs := inv.FS

	// Resolve every argument before deleting anything.
	type batchOf struct {
		dir   vfs.NodeID
		files []vfs.NodeID
		all   bool
	}
	var targets []batchOf
	for _, arg := range inv.Args {
		dir, matched, err := glob(inv, arg)
		if err != nil {
			return nil, err
		}

		t := batchOf{dir: dir}
		if len(matched) == 1 && matched[0].IsDir() && !vfs.HasWildcard(arg) {
			entries, err := fs.List(matched[0].ID)
			if err != nil {
				return nil, err
			}
			t.dir, t.all, matched = matched[0].ID, true, entries
		} else {
			_, leaf := vfs.SplitLeaf(arg)
			t.all = leaf == "*" || leaf == "*.*"
		}

		for _, m := range matched {
			if !m.IsDir() {
				t.files = append(t.files, m.ID)
			}
		}
		if len(t.files) == 0 && !t.all {
			return nil, dossim.PathError(dossim.KindNotFound, arg, "Could Not Find %s", arg)
		}
		targets = append(targets, t)
	}

	for _, t := range targets {
		if t.all && !inv.Has("Q") {
			ok, err := s.confirm(ctx, fs.Path(t.dir)+`\*`)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		for _, id := range t.files {
			if err := fs.Delete(id, false); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil
}

// placement is where a copy or move lands.
type placement struct {
	dir       vfs.NodeID
	name      string
	existing  vfs.NodeID
	overwrite bool
}

// place decides the destination of src for COPY and MOVE: into an existing
// directory, over an existing file or as a new name.
func (s *verbs) place(ctx context.Context, inv *shell.Invocation, src vfs.Info, dst string, many bool) (placement, bool, error) {
	fs := inv.FS

	if id, err := fs.Resolve(inv.Cwd(), dst); err == nil {
		info, err := fs.Stat(id)
		if err != nil {
			return placement{}, false, err
		}
		if info.IsDir() {
			p := placement{dir: id, name: src.Name}
			if existing, err := fs.Lookup(id, src.Name); err == nil {
				p.existing = existing
			}
			return s.checkOverwrite(ctx, inv, src, p)
		}
		if many || src.IsDir() {
			return placement{}, false, dossim.PathError(dossim.KindNotADirectory, dst, "The directory name is invalid - %s", dst)
		}
		return s.checkOverwrite(ctx, inv, src, placement{dir: info.Parent, name: info.Name, existing: id})
	}

	if many {
		return placement{}, false, dossim.PathError(dossim.KindNotFound, dst, "The system cannot find the path specified - %s", dst)
	}
	dir, leaf, err := fs.ResolveParent(inv.Cwd(), dst)
	if err != nil {
		return placement{}, false, err
	}
	return placement{dir: dir, name: leaf}, true, nil
}

func (s *verbs) checkOverwrite(ctx context.Context, inv *shell.Invocation, src vfs.Info, p placement) (placement, bool, error) {
	if p.existing == vfs.InvalidID {
		return p, true, nil
	}
	if p.existing == src.ID {
		return p, false, dossim.PathError(dossim.KindNameConflict, inv.FS.Path(src.ID),
			"The file cannot be copied onto itself.")
	}
	info, err := inv.FS.Stat(p.existing)
	if err != nil {
		return p, false, err
	}
	if info.IsDir() {
		return p, false, dossim.PathError(dossim.KindNameConflict, inv.FS.Path(p.existing),
			"A subdirectory or file %s already exists.", info.Name)
	}
	p.overwrite = true
	if inv.Has("Y") {
		return p, true, nil
	}
	ok, err := s.confirm(ctx, "Overwrite "+inv.FS.Path(p.existing))
	return p, ok && err == nil, err
}

func (s *verbs) copy() command {
	return command{
		spec: shell.Spec{
			Name:    "COPY",
			Aliases: []string{"XCOPY"},
			Summary: "Copies one or more files (and directory trees) to another location.",
			Usage:   "COPY source [destination] [/Y]",
			Details: []string{
				"  source       Specifies the file(s) or directory to be copied.",
				"  destination  Specifies the directory and/or filename for the new file(s).",
				"  /Y           Suppresses prompting to confirm you want to overwrite an",
				"               existing destination file.",
			},
			MinArgs:  1,
			MaxArgs:  2,
			Switches: []string{"Y"},
		},
		run: func(ctx context.Context, inv *shell.Invocation) ([]string, error) {
			n, err := s.transfer(ctx, inv, false)
			if err != nil {
				return nil, err
			}
			return []string{fmt.Sprintf("%9d file(s) copied.", n)}, nil
		},
	}
}

func (s *verbs) move() command {
	return command{
		spec: shell.Spec{
			Name:    "MOVE",
			Summary: "Moves files and renames files and directories.",
			Usage:   "MOVE [/Y] source destination",
			Details: []string{
				"  /Y  Suppresses prompting to confirm you want to overwrite an",
				"      existing destination file.",
			},
			MinArgs:  2,
			MaxArgs:  2,
			Switches: []string{"Y"},
		},
		run: func(ctx context.Context, inv *shell.Invocation) ([]string, error) {
			n, err := s.transfer(ctx, inv, true)
			if err != nil {
				return nil, err
			}
			return []string{fmt.Sprintf("%9d file(s) moved.", n)}, nil
		},
	}
}

// transfer implements COPY and MOVE. It returns the number of nodes handled.
func (s *verbs) transfer(ctx context.Context, inv *shell.Invocation, move bool) (int, error) {
	fs := inv.FS
	src := inv.Args[0]
	dst := inv.Arg(1)
	if dst == "" {
		dst = "."
	}

	_, sources, err := glob(inv, src)
	if err != nil {
		return 0, err
	}
	many := vfs.HasWildcard(src)
	if many {
		files := sources[:0]
		for _, e := range sources {
			if !e.IsDir() {
				files = append(files, e)
			}
		}
		sources = files
	}
	if len(sources) == 0 {
		return 0, dossim.PathError(dossim.KindNotFound, src, "File not found - %s", src)
	}

	count := 0
	for _, source := range sources {
		p, ok, err := s.place(ctx, inv, source, dst, many)
		if err != nil {
			return count, err
		}
		if !ok {
			continue
		}
		if p.overwrite {
			if move {
				if err := fs.Delete(p.existing, false); err != nil {
					return count, err
				}
				if _, err := fs.Move(source.ID, p.dir, p.name); err != nil {
					return count, err
				}
			} else {
				content, err := fs.ReadFile(source.ID)
				if err != nil {
					return count, err
				}
				if err := fs.WriteFile(p.existing, content); err != nil {
					return count, err
				}
			}
		} else {
			if move {
				_, err = fs.Move(source.ID, p.dir, p.name)
			} else {
				_, err = fs.Copy(source.ID, p.dir, p.name)
			}
			if err != nil {
				return count, err
			}
		}
		count++
	}
	return count, nil
}

func (s *verbs) ren() command {
	return command{
		spec: shell.Spec{
			Name:    "REN",
			Aliases: []string{"RENAME"},
			Summary: "Renames a file or directory.",
			Usage:   "REN [drive:][path]name newname",
			Details: []string{
				"Note that you cannot specify a new drive or path for your destination.",
			},
			MinArgs: 2,
			MaxArgs: 2,
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			name := inv.Args[1]
			if strings.ContainsAny(name, `\/:`) {
				return nil, dossim.Errorf(dossim.KindInvalidArguments, "The syntax of the command is incorrect.")
			}
			if err := vfs.ValidateName(name); err != nil {
				return nil, err
			}

			id, err := inv.FS.Resolve(inv.Cwd(), inv.Args[0])
			if err != nil {
				return nil, err
			}
			parent, err := inv.FS.Parent(id)
			if err != nil {
				return nil, err
			}
			_, err = inv.FS.Move(id, parent, name)
			return nil, err
		},
	}
}

func (s *verbs) create() command {
	return command{
		spec: shell.Spec{
			Name:    "CREATE",
			Summary: "Creates a new file, or a directory with /D.",
			Usage:   "CREATE [drive:][path]name [text...] [/D]",
			Details: []string{
				"  text  Initial content of the file.",
				"  /D    Creates a directory instead of a file.",
			},
			MinArgs:  1,
			MaxArgs:  shell.Unlimited,
			Switches: []string{"D"},
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			parent, leaf, err := inv.FS.ResolveParent(inv.Cwd(), inv.Args[0])
			if err != nil {
				return nil, err
			}
			if inv.Has("D") {
				if len(inv.Args) > 1 {
					return nil, dossim.Errorf(dossim.KindInvalidArguments, "Too many parameters - %s", inv.Args[1])
				}
				_, err = inv.FS.CreateDirectory(parent, leaf)
				return nil, err
			}

			var content []byte
			if text := strings.Join(inv.Args[1:], " "); text != "" {
				content = []byte(text + "\n")
			}
			_, err = inv.FS.CreateFile(parent, leaf, content, false)
			return nil, err
		},
	}
}

func (s *verbs) attrib() command {
	return command{
		spec: shell.Spec{
			Name:    "ATTRIB",
			Summary: "Displays file attributes.",
			Usage:   "ATTRIB [drive:][path][filename]",
			Details: []string{
				"Every file carries the archive attribute. Attributes cannot be changed.",
			},
			MaxArgs: 1,
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			target := inv.Arg(0)
			if strings.HasPrefix(target, "+") || strings.HasPrefix(target, "-") {
				return nil, dossim.Errorf(dossim.KindInvalidArguments, "Parameter not supported - %s", target)
			}
			if target == "" {
				target = "*"
			}

			_, matched, err := glob(inv, target)
			if err != nil {
				return nil, err
			}
			if len(matched) == 1 && matched[0].IsDir() && !vfs.HasWildcard(target) {
				if matched, err = inv.FS.List(matched[0].ID); err != nil {
					return nil, err
				}
			}

			var out []string
			for _, e := range matched {
				if !e.IsDir() {
					out = append(out, fmt.Sprintf("%-11s%s", "A", inv.FS.Path(e.ID)))
				}
			}
			if len(out) == 0 {
				return nil, dossim.PathError(dossim.KindNotFound, target, "File not found - %s", target)
			}
			return out, nil
		},
	}
}
