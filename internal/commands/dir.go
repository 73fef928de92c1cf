package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Acmi1/MS-Dos-Simulator/internal/shell"
	"github.com/Acmi1/MS-Dos-Simulator/internal/vfs"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

const wideColumns = 5

func (s *verbs) dir() command {
	return command{
		spec: shell.Spec{
			Name:    "DIR",
			Summary: "Displays a list of files and subdirectories in a directory.",
			Usage:   "DIR [drive:][path][filename] [/W] [/B] [/P] [/S]",
			Details: []string{
				"  /W  Uses wide list format.",
				"  /B  Uses bare format (no heading information or summary).",
				"  /P  Pauses after each screenful of information.",
				"  /S  Displays files in specified directory and all subdirectories.",
			},
			MaxArgs:  1,
			Switches: []string{"W", "B", "P", "S"},
		},
		run: s.runDir,
	}
}

// listing is one "Directory of" block.
type listing struct {
	dir     vfs.NodeID
	entries []vfs.Info
}

func (s *verbs) runDir(_ context.Context, inv *shell.Invocation) ([]string, error) {
	fs := inv.FS
	target := inv.Arg(0)
	if target == "" {
		target = "."
	}

	dir, pattern, err := dirTarget(inv, target)
	if err != nil {
		return nil, err
	}

	dirs := []vfs.NodeID{dir}
	if inv.Has("S") {
		dirs = dirs[:0]
		err := fs.Walk(dir, func(_ string, info vfs.Info) error {
			if info.IsDir() {
				dirs = append(dirs, info.ID)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	var (
		blocks []listing
		found  bool
	)
	for _, d := range dirs {
		entries, err := fs.List(d)
		if err != nil {
			return nil, err
		}
		matched := entries[:0]
		for _, e := range entries {
			if vfs.Match(pattern, e.Name) {
				matched = append(matched, e)
			}
		}
		if len(matched) > 0 {
			found = true
		}
		if len(matched) > 0 || !inv.Has("S") {
			blocks = append(blocks, listing{dir: d, entries: matched})
		}
	}

	if !found && pattern != "*" {
		return nil, dossim.PathError(dossim.KindNotFound, target, "File Not Found")
	}

	if inv.Has("B") {
		return bareListing(fs, blocks, inv.Has("S")), nil
	}
	return s.fullListing(fs, blocks, inv.Has("W"), inv.Has("S")), nil
}

// dirTarget splits the DIR argument into the directory to list and a name
// pattern. A file argument lists that single file.
func dirTarget(inv *shell.Invocation, target string) (vfs.NodeID, string, error) {
	fs := inv.FS
	dirText, leaf := vfs.SplitLeaf(target)
	if vfs.HasWildcard(leaf) {
		dir := inv.Cwd()
		if dirText != "" {
			var err error
			if dir, err = resolveDir(inv, dirText); err != nil {
				return vfs.InvalidID, "", err
			}
		}
		return dir, leaf, nil
	}

	id, err := fs.Resolve(inv.Cwd(), target)
	if err != nil {
		return vfs.InvalidID, "", err
	}
	info, err := fs.Stat(id)
	if err != nil {
		return vfs.InvalidID, "", err
	}
	if info.IsDir() {
		return id, "*", nil
	}
	return info.Parent, info.Name, nil
}

func bareListing(fs *vfs.FS, blocks []listing, fullPaths bool) []string {
	var out []string
	for _, b := range blocks {
		for _, e := range b.entries {
			if fullPaths {
				out = append(out, fs.Path(e.ID))
			} else {
				out = append(out, e.Name)
			}
		}
	}
	return out
}

func (s *verbs) fullListing(fs *vfs.FS, blocks []listing, wide, recursive bool) []string {
	out := volumeLines(fs)

	var totalFiles, totalDirs int
	var totalBytes int64
	for _, b := range blocks {
		out = append(out, "", " Directory of "+fs.Path(b.dir), "")

		files, dirs, bytes := 0, 0, int64(0)
		var names []string
		for _, e := range b.entries {
			if e.IsDir() {
				dirs++
			} else {
				files++
				bytes += e.Size
			}

			if wide {
				name := e.Name
				if e.IsDir() {
					name = "[" + name + "]"
				}
				names = append(names, fmt.Sprintf("%-15s", name))
				continue
			}
			out = append(out, entryLine(e))
		}
		for i := 0; i < len(names); i += wideColumns {
			end := min(i+wideColumns, len(names))
			out = append(out, strings.TrimRight(strings.Join(names[i:end], ""), " "))
		}

		if recursive {
			out = append(out, fileTotal(files, bytes))
		}
		totalFiles += files
		totalDirs += dirs
		totalBytes += bytes
	}

	if recursive {
		out = append(out, "", "     Total Files Listed:")
	}
	out = append(out,
		fileTotal(totalFiles, totalBytes),
		fmt.Sprintf("%16d Dir(s) %15s bytes free", totalDirs, humanize.Comma(fs.Free())),
	)
	return out
}

func entryLine(e vfs.Info) string {
	stamp := strings.ToLower(e.Modified.Format("01-02-2006  03:04PM"))
	if e.IsDir() {
		return fmt.Sprintf("%s    %-14s %s", stamp, "<DIR>", e.Name)
	}
	return fmt.Sprintf("%s    %14s %s", stamp, humanize.Comma(e.Size), e.Name)
}

func fileTotal(files int, bytes int64) string {
	return fmt.Sprintf("%16d File(s) %14s bytes", files, humanize.Comma(bytes))
}

// volumeLines is the two-line volume header shared by DIR, VOL and LABEL.
func volumeLines(fs *vfs.FS) []string {
	drive := string(fs.Drive())
	first := " Volume in drive " + drive + " is " + fs.Label()
	if fs.Label() == "" {
		first = " Volume in drive " + drive + " has no label"
	}
	return []string{first, " Volume Serial Number is " + dossim.DefaultVolumeSerial}
}
