package vfs

import (
	"strings"

	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

// Resolve turns path text into a node id relative to base.
//
// Forward slashes are treated as separators. A drive prefix ("C:") or a
// leading separator makes the path absolute. Empty segments and "." are
// skipped, ".." moves to the parent and stays put at the root. Every other
// segment is a case-insensitive child lookup. A segment that follows a file,
// "." and ".." included, fails with NotADirectory.
func (f *FS) Resolve(base NodeID, text string) (NodeID, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.resolveLocked(base, text)
}

// ResolveParent resolves everything but the last segment of text and returns
// the containing directory plus the leaf name. It is used by operations that
// name a target that may not exist yet.
func (f *FS) ResolveParent(base NodeID, text string) (NodeID, string, error) {
	dir, leaf := SplitLeaf(text)
	if err := ValidateName(leaf); err != nil {
		return InvalidID, "", err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if dir == "" {
		d, err := f.dirLocked(base)
		if err != nil {
			return InvalidID, "", err
		}
		return d.id, leaf, nil
	}
	id, err := f.resolveLocked(base, dir)
	if err != nil {
		return InvalidID, "", err
	}
	if _, err := f.dirLocked(id); err != nil {
		return InvalidID, "", err
	}
	return id, leaf, nil
}

func (f *FS) resolveLocked(base NodeID, text string) (NodeID, error) {
	original := text
	text = cleanSeparators(strings.TrimSpace(text))

	cur := base
	if hasDrivePrefix(text) {
		if Normalize(text[:1])[0] != f.drive {
			return InvalidID, dossim.PathError(dossim.KindNotFound, original, "Invalid drive specification - %s", text[:2])
		}
		text = text[2:]
		cur = f.root
	}
	if strings.HasPrefix(text, Separator) {
		cur = f.root
	}

	n, err := f.getLocked(cur)
	if err != nil {
		return InvalidID, err
	}

	for _, seg := range strings.Split(text, Separator) {
		if seg == "" {
			continue
		}
		// Every segment after the first is taken relative to n, including
		// "." and "..", so n must be a directory.
		if !n.isDir() {
			return InvalidID, dossim.PathError(dossim.KindNotADirectory, original, "The directory name is invalid - %s", original)
		}
		switch seg {
		case ".":
			continue
		case "..":
			if n.parent != InvalidID {
				n = f.nodes[n.parent]
			}
			continue
		}

		child, ok := n.children[Normalize(seg)]
		if !ok {
			return InvalidID, dossim.PathError(dossim.KindNotFound, original, "The system cannot find the path specified - %s", original)
		}
		n = f.nodes[child]
	}
	return n.id, nil
}
