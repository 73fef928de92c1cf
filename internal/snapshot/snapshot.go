package snapshot

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Acmi1/MS-Dos-Simulator/internal/checksum"
	"github.com/Acmi1/MS-Dos-Simulator/internal/session"
	"github.com/Acmi1/MS-Dos-Simulator/internal/vfs"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

// FormatVersion is the document version written by Capture.
const FormatVersion = 1

const (
	kindDir  = "dir"
	kindFile = "file"

	encodingBase64 = "base64"
)

// Document is the persisted form of a session: disk geometry, the node tree,
// the current directory and variables.
type Document struct {
	Version  int               `yaml:"version"`
	ID       string            `yaml:"id"`
	SavedAt  time.Time         `yaml:"saved_at"`
	Drive    string            `yaml:"drive"`
	Label    string            `yaml:"label"`
	Capacity int64             `yaml:"capacity"`
	Cwd      string            `yaml:"cwd"`
	Vars     map[string]string `yaml:"vars,omitempty"`
	Root     Node              `yaml:"root"`
}

// Node is one directory or file in a Document.
type Node struct {
	Name     string    `yaml:"name"`
	Kind     string    `yaml:"kind"`
	Created  time.Time `yaml:"created"`
	Modified time.Time `yaml:"modified"`
	Content  string    `yaml:"content,omitempty"`
	Encoding string    `yaml:"encoding,omitempty"`
	Checksum string    `yaml:"checksum,omitempty"`
	Children []Node    `yaml:"children,omitempty"`
}

// Capture records the session's filesystem, current directory and variables.
func Capture(sess *session.Session, now time.Time) (*Document, error) {
	fs := sess.FS()
	root, err := captureNode(fs, fs.Root(), checksum.New())
	if err != nil {
		return nil, err
	}

	return &Document{
		Version:  FormatVersion,
		ID:       uuid.NewString(),
		SavedAt:  now.UTC(),
		Drive:    string(fs.Drive()),
		Label:    fs.Label(),
		Capacity: fs.Capacity(),
		Cwd:      sess.CwdPath(),
		Vars:     sess.Vars(),
		Root:     root,
	}, nil
}

func captureNode(fs *vfs.FS, id vfs.NodeID, calc checksum.SHA256) (Node, error) {
	info, err := fs.Stat(id)
	if err != nil {
		return Node{}, err
	}
	n := Node{
		Name:     info.Name,
		Created:  info.Created.UTC(),
		Modified: info.Modified.UTC(),
	}

	if !info.IsDir() {
		content, err := fs.ReadFile(id)
		if err != nil {
			return Node{}, err
		}
		n.Kind = kindFile
		n.Checksum = calc.CalculateRaw(content)
		if utf8.Valid(content) {
			n.Content = string(content)
		} else {
			n.Content = base64.StdEncoding.EncodeToString(content)
			n.Encoding = encodingBase64
		}
		return n, nil
	}

	n.Kind = kindDir
	entries, err := fs.List(id)
	if err != nil {
		return Node{}, err
	}
	for _, e := range entries {
		child, err := captureNode(fs, e.ID, calc)
		if err != nil {
			return Node{}, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

// Encode serialises a document to YAML.
func Encode(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// Decode parses YAML into a document. Structural validation happens in
// Restore.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, dossim.Wrap(dossim.KindCorruptSnapshot, err, "Snapshot is not valid YAML")
	}
	return &doc, nil
}

// Restored is the outcome of Restore.
type Restored struct {
	FS   *vfs.FS
	Cwd  vfs.NodeID
	Vars map[string]string
}

// Restore rebuilds a filesystem from doc. Every node is re-validated: names,
// uniqueness among siblings, kinds and file checksums. Any violation fails
// with CorruptSnapshot. A current directory that no longer resolves to a
// directory falls back to the root.
func Restore(doc *Document) (*Restored, error) {
	if doc.Version != FormatVersion {
		return nil, corrupt("unsupported snapshot version %d", doc.Version)
	}
	if len(doc.Drive) != 1 || !isLetter(doc.Drive[0]) {
		return nil, corrupt("invalid drive %q", doc.Drive)
	}
	if doc.Root.Kind != kindDir {
		return nil, corrupt("root must be a directory")
	}
	if err := vfs.ValidateLabel(doc.Label); err != nil {
		return nil, corrupt("invalid volume label %q", doc.Label)
	}

	fs := vfs.New(
		vfs.WithDrive(doc.Drive[0]),
		vfs.WithLabel(strings.ToUpper(doc.Label)),
		vfs.WithCapacity(doc.Capacity),
	)
	calc := checksum.New()

	if err := restoreChildren(fs, fs.Root(), doc.Root, calc, `\`); err != nil {
		return nil, err
	}
	if err := fs.SetTimes(fs.Root(), doc.Root.Created, doc.Root.Modified); err != nil {
		return nil, err
	}

	cwd, err := fs.Resolve(fs.Root(), doc.Cwd)
	if err != nil {
		cwd = fs.Root()
	} else if info, err := fs.Stat(cwd); err != nil || !info.IsDir() {
		cwd = fs.Root()
	}

	return &Restored{FS: fs, Cwd: cwd, Vars: doc.Vars}, nil
}

func restoreChildren(fs *vfs.FS, parent vfs.NodeID, dir Node, calc checksum.SHA256, path string) error {
	for _, child := range dir.Children {
		where := path + child.Name

		var (
			id  vfs.NodeID
			err error
		)
		switch child.Kind {
		case kindDir:
			if child.Content != "" {
				return corrupt("directory %s has content", where)
			}
			id, err = fs.CreateDirectory(parent, child.Name)
		case kindFile:
			if len(child.Children) > 0 {
				return corrupt("file %s has children", where)
			}
			var content []byte
			if content, err = decodeContent(child); err != nil {
				return corrupt("file %s: %v", where, err)
			}
			if !calc.Verify(content, child.Checksum) {
				return corrupt("checksum mismatch for %s", where)
			}
			id, err = fs.CreateFile(parent, child.Name, content, false)
		default:
			return corrupt("unknown node kind %q at %s", child.Kind, where)
		}
		if err != nil {
			return dossim.Wrap(dossim.KindCorruptSnapshot, err, "Snapshot is corrupt at %s", where)
		}

		if child.Kind == kindDir {
			if err := restoreChildren(fs, id, child, calc, where+`\`); err != nil {
				return err
			}
		}
		if err := fs.SetTimes(id, child.Created, child.Modified); err != nil {
			return err
		}
	}
	return nil
}

func decodeContent(n Node) ([]byte, error) {
	switch n.Encoding {
	case "":
		return []byte(n.Content), nil
	case encodingBase64:
		return base64.StdEncoding.DecodeString(n.Content)
	default:
		return nil, fmt.Errorf("unknown encoding %q", n.Encoding)
	}
}

func corrupt(format string, args ...interface{}) *dossim.Error {
	return dossim.Errorf(dossim.KindCorruptSnapshot, "Snapshot is corrupt: "+format, args...)
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
