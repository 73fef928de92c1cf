package vfs

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

// FS is an in-memory DOS-style tree of directories and files.
//
// All mutations are serialised behind one exclusive lock scoped to the whole
// tree; read-only operations share the lock with each other. A single FS may
// therefore back several sessions.
type FS struct {
	mu sync.RWMutex

	nodes map[NodeID]*node
	root  NodeID
	next  NodeID

	// pins counts sessions whose current directory is the key.
	pins map[NodeID]int

	drive    byte
	label    string
	capacity int64
	used     int64
	now      func() time.Time
}

// Option configures a new FS.
type Option func(*FS)

// WithDrive sets the drive letter of the root.
func WithDrive(letter byte) Option {
	return func(f *FS) {
		if letter >= 'a' && letter <= 'z' {
			letter -= 'a' - 'A'
		}
		if letter >= 'A' && letter <= 'Z' {
			f.drive = letter
		}
	}
}

// WithLabel sets the volume label.
func WithLabel(label string) Option {
	return func(f *FS) { f.label = label }
}

// WithCapacity sets the size of the virtual disk in bytes. Non-positive
// values keep the default.
func WithCapacity(bytes int64) Option {
	return func(f *FS) {
		if bytes > 0 {
			f.capacity = bytes
		}
	}
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *FS) { f.now = now }
}

// New creates a tree that holds only the root directory.
func New(opts ...Option) *FS {
	f := &FS{
		nodes:    make(map[NodeID]*node),
		pins:     make(map[NodeID]int),
		drive:    dossim.DefaultDrive,
		label:    dossim.DefaultVolumeLabel,
		capacity: dossim.DefaultCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}

	now := f.now()
	f.root = f.allocLocked(&node{
		name:     string(f.drive) + ":",
		kind:     Directory,
		children: make(map[string]NodeID),
		created:  now,
		modified: now,
	})
	return f
}

// Root returns the id of the root directory.
func (f *FS) Root() NodeID { return f.root }

// Drive returns the drive letter.
func (f *FS) Drive() byte { return f.drive }

// Label returns the volume label.
func (f *FS) Label() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.label
}

// SetLabel changes the volume label.
func (f *FS) SetLabel(label string) error {
	if err := ValidateLabel(label); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.label = strings.ToUpper(label)
	return nil
}

// Capacity returns the size of the virtual disk.
func (f *FS) Capacity() int64 { return f.capacity }

// Usage returns the number of payload bytes stored.
func (f *FS) Usage() int64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.used
}

// Free returns the number of bytes still available.
func (f *FS) Free() int64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.capacity - f.used
}

// Stat returns the metadata of a node.
func (f *FS) Stat(id NodeID) (Info, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n, err := f.getLocked(id)
	if err != nil {
		return Info{}, err
	}
	return n.info(), nil
}

// Parent returns the parent of id. The root is its own parent.
func (f *FS) Parent(id NodeID) (NodeID, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n, err := f.getLocked(id)
	if err != nil {
		return InvalidID, err
	}
	if n.parent == InvalidID {
		return n.id, nil
	}
	return n.parent, nil
}

// Path returns the display path of a node, e.g. C:\DOS\README.TXT.
func (f *FS) Path(id NodeID) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.pathLocked(id)
}

// Lookup finds a direct child of dir by case-insensitive name.
func (f *FS) Lookup(dir NodeID, name string) (NodeID, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	d, err := f.dirLocked(dir)
	if err != nil {
		return InvalidID, err
	}
	child, ok := d.children[Normalize(name)]
	if !ok {
		return InvalidID, dossim.PathError(dossim.KindNotFound, name, "File not found - %s", name)
	}
	return child, nil
}

// CreateDirectory adds an empty directory named name to parent.
func (f *FS) CreateDirectory(parent NodeID, name string) (NodeID, error) {
	if err := ValidateName(name); err != nil {
		return InvalidID, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	p, err := f.dirLocked(parent)
	if err != nil {
		return InvalidID, err
	}
	if _, exists := p.children[Normalize(name)]; exists {
		return InvalidID, f.conflictLocked(p, name)
	}

	now := f.now()
	id := f.allocLocked(&node{
		parent:   p.id,
		name:     name,
		kind:     Directory,
		children: make(map[string]NodeID),
		created:  now,
		modified: now,
	})
	p.children[Normalize(name)] = id
	p.modified = now
	return id, nil
}

// CreateFile adds a file named name to parent. With overwrite set, an existing
// file of the same name gets its payload replaced; a directory in the way is
// always a conflict.
func (f *FS) CreateFile(parent NodeID, name string, content []byte, overwrite bool) (NodeID, error) {
	if err := ValidateName(name); err != nil {
		return InvalidID, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	p, err := f.dirLocked(parent)
	if err != nil {
		return InvalidID, err
	}

	if existing, ok := p.children[Normalize(name)]; ok {
		n := f.nodes[existing]
		if n.isDir() || !overwrite {
			return InvalidID, f.conflictLocked(p, name)
		}
		if err := f.replaceLocked(n, content); err != nil {
			return InvalidID, err
		}
		return n.id, nil
	}

	if err := f.reserveLocked(int64(len(content))); err != nil {
		return InvalidID, err
	}

	now := f.now()
	id := f.allocLocked(&node{
		parent:   p.id,
		name:     name,
		kind:     File,
		content:  append([]byte(nil), content...),
		created:  now,
		modified: now,
	})
	f.used += int64(len(content))
	p.children[Normalize(name)] = id
	p.modified = now
	return id, nil
}

// ReadFile returns a copy of a file's payload.
func (f *FS) ReadFile(id NodeID) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	n, err := f.fileLocked(id)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), n.content...), nil
}

// WriteFile replaces a file's payload and updates its timestamp.
func (f *FS) WriteFile(id NodeID, content []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, err := f.fileLocked(id)
	if err != nil {
		return err
	}
	return f.replaceLocked(n, content)
}

// AppendFile adds content to the end of a file.
func (f *FS) AppendFile(id NodeID, content []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, err := f.fileLocked(id)
	if err != nil {
		return err
	}
	if err := f.reserveLocked(int64(len(content))); err != nil {
		return err
	}
	n.content = append(n.content, content...)
	f.used += int64(len(content))
	n.modified = f.now()
	return nil
}

// SetTimes overrides the timestamps of a node. Used when restoring snapshots.
func (f *FS) SetTimes(id NodeID, created, modified time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, err := f.getLocked(id)
	if err != nil {
		return err
	}
	n.created = created
	n.modified = modified
	return nil
}

// Delete removes a node. A non-empty directory is only removed when recursive
// is set, in which case its descendants go first. Nodes that are, or contain,
// a pinned current directory cannot be deleted. A failed delete leaves the
// tree untouched.
func (f *FS) Delete(id NodeID, recursive bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	n, err := f.getLocked(id)
	if err != nil {
		return err
	}
	if id == f.root || f.pinnedUnderLocked(id) {
		return dossim.PathError(dossim.KindNodeInUse, f.pathLocked(id),
			"The process cannot access the file because it is being used by another process - %s", f.pathLocked(id))
	}
	if n.isDir() && len(n.children) > 0 && !recursive {
		return dossim.PathError(dossim.KindDirectoryNotEmpty, f.pathLocked(id), "The directory is not empty - %s", f.pathLocked(id))
	}

	parent := f.nodes[n.parent]
	delete(parent.children, Normalize(n.name))
	parent.modified = f.now()
	f.removeLocked(n)
	return nil
}

// Copy deep-copies src into destParent. An empty newName keeps the source
// name. Copying a directory into itself or one of its descendants fails with
// CyclicCopy.
func (f *FS) Copy(src, destParent NodeID, newName string) (NodeID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.getLocked(src)
	if err != nil {
		return InvalidID, err
	}
	d, err := f.dirLocked(destParent)
	if err != nil {
		return InvalidID, err
	}

	name := newName
	if name == "" {
		name = s.name
	}
	if err := ValidateName(name); err != nil {
		return InvalidID, err
	}
	if f.isAncestorLocked(src, destParent) {
		return InvalidID, dossim.PathError(dossim.KindCyclicCopy, f.pathLocked(src), "Cannot perform a cyclic copy - %s", f.pathLocked(src))
	}
	if _, exists := d.children[Normalize(name)]; exists {
		return InvalidID, f.conflictLocked(d, name)
	}
	if err := f.reserveLocked(f.subtreeSizeLocked(s)); err != nil {
		return InvalidID, err
	}

	id := f.cloneLocked(s, d, name)
	d.modified = f.now()
	return id, nil
}

// Move re-links src under destParent, optionally renaming it. The subtree is
// not copied. An empty newName keeps the current name.
func (f *FS) Move(src, destParent NodeID, newName string) (NodeID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.getLocked(src)
	if err != nil {
		return InvalidID, err
	}
	if src == f.root {
		return InvalidID, dossim.PathError(dossim.KindNodeInUse, f.pathLocked(src), "Access is denied - %s", f.pathLocked(src))
	}
	d, err := f.dirLocked(destParent)
	if err != nil {
		return InvalidID, err
	}

	name := newName
	if name == "" {
		name = s.name
	}
	if err := ValidateName(name); err != nil {
		return InvalidID, err
	}
	if f.isAncestorLocked(src, destParent) {
		return InvalidID, dossim.PathError(dossim.KindCyclicCopy, f.pathLocked(src), "Cannot move a directory into itself - %s", f.pathLocked(src))
	}
	if existing, exists := d.children[Normalize(name)]; exists && existing != src {
		return InvalidID, f.conflictLocked(d, name)
	}

	now := f.now()
	old := f.nodes[s.parent]
	delete(old.children, Normalize(s.name))
	old.modified = now

	s.name = name
	s.parent = d.id
	d.children[Normalize(name)] = s.id
	d.modified = now
	return s.id, nil
}

// List returns the children of dir ordered by normalized name. Directories
// and files are interleaved.
func (f *FS) List(dir NodeID) ([]Info, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	d, err := f.dirLocked(dir)
	if err != nil {
		return nil, err
	}
	return f.listLocked(d), nil
}

// Walk visits id and every descendant depth-first in List order. fn receives
// the display path and must not call back into the FS.
func (f *FS) Walk(id NodeID, fn func(path string, info Info) error) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n, err := f.getLocked(id)
	if err != nil {
		return err
	}
	return f.walkLocked(n, f.pathLocked(id), fn)
}

// Pin marks a directory as some session's current directory.
func (f *FS) Pin(id NodeID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.dirLocked(id); err != nil {
		return err
	}
	f.pins[id]++
	return nil
}

// Unpin releases a Pin.
func (f *FS) Unpin(id NodeID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins[id] <= 1 {
		delete(f.pins, id)
		return
	}
	f.pins[id]--
}

func (f *FS) walkLocked(n *node, path string, fn func(string, Info) error) error {
	if err := fn(path, n.info()); err != nil {
		return err
	}
	if !n.isDir() {
		return nil
	}
	for _, child := range f.listLocked(n) {
		if err := f.walkLocked(f.nodes[child.ID], joinPath(path, child.Name), fn); err != nil {
			return err
		}
	}
	return nil
}

func (f *FS) listLocked(d *node) []Info {
	keys := make([]string, 0, len(d.children))
	for k := range d.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Info, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, f.nodes[d.children[k]].info())
	}
	return entries
}

func (f *FS) allocLocked(n *node) NodeID {
	f.next++
	n.id = f.next
	f.nodes[n.id] = n
	return n.id
}

func (f *FS) getLocked(id NodeID) (*node, error) {
	n, ok := f.nodes[id]
	if !ok {
		return nil, dossim.Errorf(dossim.KindNotFound, "The system cannot find the path specified.")
	}
	return n, nil
}

func (f *FS) dirLocked(id NodeID) (*node, error) {
	n, err := f.getLocked(id)
	if err != nil {
		return nil, err
	}
	if !n.isDir() {
		return nil, dossim.PathError(dossim.KindNotADirectory, f.pathLocked(id), "The directory name is invalid - %s", f.pathLocked(id))
	}
	return n, nil
}

func (f *FS) fileLocked(id NodeID) (*node, error) {
	n, err := f.getLocked(id)
	if err != nil {
		return nil, err
	}
	if n.isDir() {
		return nil, dossim.PathError(dossim.KindNotAFile, f.pathLocked(id), "Access is denied - %s is a directory", f.pathLocked(id))
	}
	return n, nil
}

func (f *FS) conflictLocked(parent *node, name string) error {
	p := joinPath(f.pathLocked(parent.id), name)
	return dossim.PathError(dossim.KindNameConflict, p, "A subdirectory or file %s already exists.", name)
}

func (f *FS) reserveLocked(bytes int64) error {
	if f.used+bytes > f.capacity {
		return dossim.Errorf(dossim.KindInsufficientSpace, "Insufficient disk space")
	}
	return nil
}

func (f *FS) replaceLocked(n *node, content []byte) error {
	if err := f.reserveLocked(int64(len(content)) - n.size()); err != nil {
		return err
	}
	f.used += int64(len(content)) - n.size()
	n.content = append([]byte(nil), content...)
	n.modified = f.now()
	return nil
}

func (f *FS) removeLocked(n *node) {
	for _, child := range n.children {
		f.removeLocked(f.nodes[child])
	}
	f.used -= n.size()
	delete(f.nodes, n.id)
}

func (f *FS) cloneLocked(src, parent *node, name string) NodeID {
	now := f.now()
	c := &node{
		parent:   parent.id,
		name:     name,
		kind:     src.kind,
		created:  now,
		modified: src.modified,
	}
	if src.isDir() {
		c.children = make(map[string]NodeID, len(src.children))
	} else {
		c.content = append([]byte(nil), src.content...)
		f.used += c.size()
	}
	id := f.allocLocked(c)
	parent.children[Normalize(name)] = id

	if src.isDir() {
		for _, child := range f.listLocked(src) {
			f.cloneLocked(f.nodes[child.ID], c, child.Name)
		}
	}
	return id
}

func (f *FS) subtreeSizeLocked(n *node) int64 {
	total := n.size()
	for _, child := range n.children {
		total += f.subtreeSizeLocked(f.nodes[child])
	}
	return total
}

// isAncestorLocked reports whether a is b or one of b's ancestors.
func (f *FS) isAncestorLocked(a, b NodeID) bool {
	for cur := b; cur != InvalidID; cur = f.nodes[cur].parent {
		if cur == a {
			return true
		}
	}
	return false
}

func (f *FS) pinnedUnderLocked(id NodeID) bool {
	for pinned := range f.pins {
		if _, ok := f.nodes[pinned]; ok && f.isAncestorLocked(id, pinned) {
			return true
		}
	}
	return false
}

func (f *FS) pathLocked(id NodeID) string {
	var parts []string
	for cur := id; cur != InvalidID && cur != f.root; {
		n, ok := f.nodes[cur]
		if !ok {
			break
		}
		parts = append(parts, n.name)
		cur = n.parent
	}

	root := string(f.drive) + ":" + Separator
	if len(parts) == 0 {
		return root
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return root + strings.Join(parts, Separator)
}

func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, Separator) {
		return dir + name
	}
	return dir + Separator + name
}
