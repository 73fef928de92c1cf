package seed

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Acmi1/MS-Dos-Simulator/internal/logging"
	"github.com/Acmi1/MS-Dos-Simulator/internal/vfs"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

//go:embed all:templates
var templatesFS embed.FS

const (
	// Default is the template a new disk starts from.
	Default = "default"

	// None leaves the disk empty.
	None = "none"
)

// GetTemplatesFS returns the embedded templates for tests.
func GetTemplatesFS() embed.FS {
	return templatesFS
}

// Templates lists the embedded template names in order.
func Templates() []string {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Seeder copies an embedded template onto a virtual disk.
type Seeder struct {
	logger dossim.Logger
}

// NewSeeder creates a Seeder. A nil logger discards output.
func NewSeeder(logger dossim.Logger) *Seeder {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Seeder{logger: logger}
}

// Populate copies template name into the root of disk. The disk must not
// already contain any of the template's entries. None is accepted and does
// nothing.
func (s *Seeder) Populate(disk *vfs.FS, name string) error {
	if name == None || name == "" {
		return nil
	}

	templatePath := "templates/" + name
	if _, err := templatesFS.ReadDir(templatePath); err != nil {
		return fmt.Errorf("seed template '%s' not found (available: %s): %w",
			name, strings.Join(Templates(), ", "), err)
	}

	s.logger.Verbose("Seeding drive %c: from template '%s'", disk.Drive(), name)

	dirs := map[string]vfs.NodeID{templatePath: disk.Root()}
	return fs.WalkDir(templatesFS, templatePath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == templatePath {
			return nil
		}

		parent, ok := dirs[path.Dir(p)]
		if !ok {
			return fmt.Errorf("seed template '%s': parent of %s not created", name, p)
		}

		if d.IsDir() {
			s.logger.Verbose("Creating directory: %s", d.Name())
			id, err := disk.CreateDirectory(parent, d.Name())
			if err != nil {
				return fmt.Errorf("create directory %s: %w", d.Name(), err)
			}
			dirs[p] = id
			return nil
		}

		content, err := templatesFS.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", p, err)
		}

		s.logger.Verbose("Creating file: %s", d.Name())
		if _, err := disk.CreateFile(parent, d.Name(), []byte(s.render(disk, string(content))), false); err != nil {
			return fmt.Errorf("create file %s: %w", d.Name(), err)
		}
		return nil
	})
}

// render replaces template variables in content.
func (s *Seeder) render(disk *vfs.FS, content string) string {
	return strings.NewReplacer(
		"{{VERSION}}", dossim.Version,
		"{{LABEL}}", disk.Label(),
		"{{CAPACITY}}", humanize.IBytes(uint64(disk.Capacity())),
	).Replace(content)
}
