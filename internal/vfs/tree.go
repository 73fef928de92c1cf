package vfs

import "sort"

const (
	treeBranch = "├───"
	treeLast   = "└───"
	treePipe   = "│   "
	treeSpace  = "    "
)

// Tree renders the directory structure below id as box-drawing lines. The
// first line is the display path of id. Directories come before files; files
// are only listed when showFiles is set.
func (f *FS) Tree(id NodeID, showFiles bool) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	d, err := f.dirLocked(id)
	if err != nil {
		return nil, err
	}

	lines := []string{f.pathLocked(id)}
	f.treeLocked(d, "", showFiles, &lines)
	return lines, nil
}

func (f *FS) treeLocked(d *node, indent string, showFiles bool, lines *[]string) {
	entries := f.listLocked(d)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].IsDir() && !entries[j].IsDir()
	})

	if !showFiles {
		dirs := entries[:0]
		for _, e := range entries {
			if e.IsDir() {
				dirs = append(dirs, e)
			}
		}
		entries = dirs
	}

	for i, e := range entries {
		last := i == len(entries)-1
		glyph, next := treeBranch, treePipe
		if last {
			glyph, next = treeLast, treeSpace
		}
		*lines = append(*lines, indent+glyph+e.Name)
		if e.IsDir() {
			f.treeLocked(f.nodes[e.ID], indent+next, showFiles, lines)
		}
	}
}
