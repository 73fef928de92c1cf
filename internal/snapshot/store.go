package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrSnapshotNotFound is returned by Load when the file does not exist.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Store keeps snapshot files in one directory of an afero filesystem.
// Production code uses the OS filesystem; tests use afero.NewMemMapFs.
type Store struct {
	fs afero.Afero
}

// NewStore roots a Store at dir on fs. An empty dir means the working
// directory.
func NewStore(fs afero.Fs, dir string) *Store {
	if dir != "" && dir != "." {
		fs = afero.NewBasePathFs(fs, dir)
	}
	return &Store{fs: afero.Afero{Fs: fs}}
}

// NewOSStore is NewStore over the host filesystem.
func NewOSStore(dir string) *Store {
	return NewStore(afero.NewOsFs(), dir)
}

// Save writes doc to name, creating parent directories as needed.
func (s *Store) Save(name string, doc *Document) error {
	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	name = clean(name)
	if err := s.fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}
	if err := s.fs.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", name, err)
	}
	return nil
}

// Load reads and decodes name.
func (s *Store) Load(name string) (*Document, error) {
	data, err := s.fs.ReadFile(clean(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("read snapshot %s: %w", name, err)
	}
	return Decode(data)
}

// Exists reports whether name is present.
func (s *Store) Exists(name string) bool {
	ok, err := s.fs.Exists(clean(name))
	return err == nil && ok
}

// clean maps DOS separators so names typed inside the simulator work on the
// host.
func clean(name string) string {
	return filepath.Clean(strings.ReplaceAll(name, `\`, "/"))
}
