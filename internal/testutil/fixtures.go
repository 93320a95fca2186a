package testutil

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"testing"
)

//go:embed all:fixtures
var fixturesFS embed.FS

// Fixture projects.
const (
	// PackageProject has a README and a package declaring __version__ and
	// __author__.
	PackageProject = "package_project"

	// PoetryProject declares its metadata only in pyproject.toml.
	PoetryProject = "poetry_project"

	// BareProject has a README and nothing else.
	BareProject = "bare_project"
)

// LoadFixture loads a fixture file by its path under fixtures/.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile(path.Join("fixtures", name))
}

// CopyProject copies a fixture project into a fresh temporary directory and
// returns its path. The directory is named after the fixture.
func CopyProject(t *testing.T, name string) string {
	t.Helper()

	src := path.Join("fixtures", name)
	dst := filepath.Join(t.TempDir(), name)

	err := fs.WalkDir(fixturesFS, src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := p[len(src):]
		target := filepath.Join(dst, filepath.FromSlash(rel))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := fixturesFS.ReadFile(p)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
	if err != nil {
		t.Fatalf("Failed to copy fixture %s: %v", name, err)
	}
	return dst
}
