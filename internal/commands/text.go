package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Acmi1/MS-Dos-Simulator/internal/shell"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

func (s *verbs) typ() command {
	return command{
		spec: shell.Spec{
			Name:    "TYPE",
			Summary: "Displays the contents of a text file or files.",
			Usage:   "TYPE [drive:][path]filename [...]",
			MinArgs: 1,
			MaxArgs: shell.Unlimited,
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			var out []string
			for _, arg := range inv.Args {
				lines, err := inputLines(inv, arg)
				if err != nil {
					return nil, err
				}
				if len(inv.Args) > 1 {
					out = append(out, "", arg, "")
				}
				out = append(out, lines...)
			}
			return out, nil
		},
	}
}

func (s *verbs) more() command {
	return command{
		spec: shell.Spec{
			Name:    "MORE",
			Summary: "Displays output one screen at a time.",
			Usage:   "MORE [drive:][path]filename, or command | MORE",
			MaxArgs: 1,
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			return inputLines(inv, inv.Arg(0))
		},
	}
}

func (s *verbs) edit() command {
	return command{
		spec: shell.Spec{
			Name:    "EDIT",
			Summary: "Starts the text editor to create or change a file.",
			Usage:   "EDIT [drive:][path]filename",
			Details: []string{
				"  ctrl+s  Saves the file and leaves the editor.",
				"  esc     Leaves the editor without saving.",
			},
			MinArgs: 1,
			MaxArgs: 1,
		},
		run: func(ctx context.Context, inv *shell.Invocation) ([]string, error) {
			if s.Editor == nil {
				return nil, dossim.Errorf(dossim.KindInvalidArguments, "No editor is available in this session")
			}

			fs := inv.FS
			dir, leaf, err := fs.ResolveParent(inv.Cwd(), inv.Args[0])
			if err != nil {
				return nil, err
			}

			id, lookupErr := fs.Lookup(dir, leaf)
			var content []byte
			if lookupErr == nil {
				if content, err = fs.ReadFile(id); err != nil {
					return nil, err
				}
			}

			updated, saved, err := s.Editor.Edit(ctx, leaf, content)
			if err != nil {
				return nil, dossim.Wrap(dossim.KindInvalidArguments, err, "Editor failed")
			}
			if !saved {
				return nil, nil
			}

			if lookupErr == nil {
				err = fs.WriteFile(id, updated)
			} else {
				id, err = fs.CreateFile(dir, leaf, updated, false)
			}
			if err != nil {
				return nil, err
			}
			return []string{"File " + fs.Path(id) + " saved."}, nil
		},
	}
}

func (s *verbs) tree() command {
	return command{
		spec: shell.Spec{
			Name:    "TREE",
			Summary: "Graphically displays the folder structure of a drive or path.",
			Usage:   "TREE [drive:][path] [/F]",
			Details: []string{
				"  /F  Display the names of the files in each folder.",
			},
			MaxArgs:  1,
			Switches: []string{"F"},
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			target := inv.Arg(0)
			if target == "" {
				target = "."
			}
			id, err := resolveDir(inv, target)
			if err != nil {
				return nil, err
			}
			lines, err := inv.FS.Tree(id, inv.Has("F"))
			if err != nil {
				return nil, err
			}

			out := []string{
				"Folder PATH listing for volume " + inv.FS.Label(),
				"Volume serial number is " + dossim.DefaultVolumeSerial,
			}
			out = append(out, lines...)
			if len(lines) == 1 {
				out = append(out, "No subfolders exist", "")
			}
			return out, nil
		},
	}
}

func (s *verbs) find() command {
	return command{
		spec: shell.Spec{
			Name:    "FIND",
			Summary: "Searches for a text string in a file or files.",
			Usage:   `FIND [/V] [/C] [/N] [/I] "string" [[drive:][path]filename [...]]`,
			Details: []string{
				"  /V  Displays all lines NOT containing the specified string.",
				"  /C  Displays only the count of lines containing the string.",
				"  /N  Displays line numbers with the displayed lines.",
				"  /I  Ignores the case of characters when searching for the string.",
				"Without a file name FIND searches the text piped into it.",
			},
			MinArgs:  1,
			MaxArgs:  shell.Unlimited,
			Switches: []string{"V", "C", "N", "I"},
		},
		run: s.runFind,
	}
}

func (s *verbs) runFind(_ context.Context, inv *shell.Invocation) ([]string, error) {
	needle := inv.Args[0]
	match := func(line string) bool {
		var found bool
		if inv.Has("I") {
			found = strings.Contains(strings.ToUpper(line), strings.ToUpper(needle))
		} else {
			found = strings.Contains(line, needle)
		}
		return found != inv.Has("V")
	}

	search := func(lines []string) (int, []string) {
		var hits []string
		count := 0
		for i, line := range lines {
			if !match(line) {
				continue
			}
			count++
			if inv.Has("N") {
				line = fmt.Sprintf("[%d]%s", i+1, line)
			}
			hits = append(hits, line)
		}
		return count, hits
	}

	if len(inv.Args) == 1 {
		count, hits := search(inv.Input)
		if inv.Has("C") {
			return []string{fmt.Sprint(count)}, nil
		}
		return hits, nil
	}

	var out []string
	for _, arg := range inv.Args[1:] {
		_, matched, err := glob(inv, arg)
		if err != nil {
			return nil, err
		}
		for _, e := range matched {
			if e.IsDir() {
				continue
			}
			content, err := inv.FS.ReadFile(e.ID)
			if err != nil {
				return nil, err
			}
			count, hits := search(shell.SplitLines(content))
			header := "---------- " + strings.ToUpper(e.Name)
			if inv.Has("C") {
				out = append(out, fmt.Sprintf("%s: %d", header, count))
				continue
			}
			out = append(out, "", header)
			out = append(out, hits...)
		}
	}
	return out, nil
}

func (s *verbs) sort() command {
	return command{
		spec: shell.Spec{
			Name:    "SORT",
			Summary: "Sorts the lines of a file or of piped input.",
			Usage:   "SORT [/R] [[drive:][path]filename]",
			Details: []string{
				"  /R  Reverses the sort order; that is, sorts Z to A, then 9 to 0.",
			},
			MaxArgs:  1,
			Switches: []string{"R"},
		},
		run: func(_ context.Context, inv *shell.Invocation) ([]string, error) {
			lines, err := inputLines(inv, inv.Arg(0))
			if err != nil {
				return nil, err
			}
			sorted := append([]string(nil), lines...)
			reverse := inv.Has("R")
			sort.SliceStable(sorted, func(i, j int) bool {
				a, b := strings.ToUpper(sorted[i]), strings.ToUpper(sorted[j])
				if reverse {
					return a > b
				}
				return a < b
			})
			return sorted, nil
		},
	}
}

func (s *verbs) comp() command {
	return command{
		spec: shell.Spec{
			Name:    "COMP",
			Summary: "Compares the contents of two files.",
			Usage:   "COMP data1 data2 [/W]",
			Details: []string{
				"  /W  Ignores differences in case and white space.",
			},
			MinArgs:  2,
			MaxArgs:  2,
			Switches: []string{"W"},
		},
		run: s.runComp,
	}
}

func (s *verbs) runComp(_ context.Context, inv *shell.Invocation) ([]string, error) {
	a, err := readFile(inv, inv.Args[0])
	if err != nil {
		return nil, err
	}
	b, err := readFile(inv, inv.Args[1])
	if err != nil {
		return nil, err
	}

	out := []string{fmt.Sprintf("Comparing %s and %s...", inv.Args[0], inv.Args[1])}

	if inv.Has("W") {
		if s.sum.CalculateNormalized(a) == s.sum.CalculateNormalized(b) {
			return append(out, "Files compare OK"), nil
		}
		return append(out, "Files are different"), nil
	}

	if len(a) != len(b) {
		return append(out, "Files are different sizes."), nil
	}
	if s.sum.CalculateRaw(a) == s.sum.CalculateRaw(b) {
		return append(out, "Files compare OK"), nil
	}

	for i := range a {
		if a[i] != b[i] {
			out = append(out,
				fmt.Sprintf("Compare error at OFFSET %X", i),
				fmt.Sprintf("file1 = %X", a[i]),
				fmt.Sprintf("file2 = %X", b[i]),
			)
			break
		}
	}
	return out, nil
}
