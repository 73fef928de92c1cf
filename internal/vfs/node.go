package vfs

import "time"

// NodeID addresses a node in the tree arena. Identifiers are never reused, so
// a stale id held by a caller fails lookups instead of aliasing a new node.
type NodeID uint64

// InvalidID is the zero NodeID; no node ever has it.
const InvalidID NodeID = 0

// NodeKind distinguishes directories from files.
type NodeKind int

const (
	Directory NodeKind = iota
	File
)

func (k NodeKind) String() string {
	if k == Directory {
		return "dir"
	}
	return "file"
}

// node is the arena record. Directories own their children by id, keyed by
// normalized name; the parent link is a lookup key only.
type node struct {
	id       NodeID
	parent   NodeID
	name     string
	kind     NodeKind
	children map[string]NodeID
	content  []byte
	created  time.Time
	modified time.Time
}

func (n *node) isDir() bool { return n.kind == Directory }

func (n *node) size() int64 { return int64(len(n.content)) }

func (n *node) info() Info {
	return Info{
		ID:       n.id,
		Parent:   n.parent,
		Name:     n.name,
		Kind:     n.kind,
		Size:     n.size(),
		Created:  n.created,
		Modified: n.modified,
	}
}

// Info describes a node without exposing the arena record.
type Info struct {
	ID       NodeID
	Parent   NodeID
	Name     string
	Kind     NodeKind
	Size     int64
	Created  time.Time
	Modified time.Time
}

// IsDir reports whether the node is a directory.
func (i Info) IsDir() bool { return i.Kind == Directory }
