package probe

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.yaml.in/yaml/v3"

	"github.com/firefly-engineering/sphinx-me/internal/logging"
	"github.com/firefly-engineering/sphinx-me/internal/system"
)

// Declared metadata files read from the project root.
const (
	PyprojectFile = "pyproject.toml"
	CitationFile  = "CITATION.cff"
)

type pyproject struct {
	Project struct {
		Version string `toml:"version"`
		Authors []struct {
			Name  string `toml:"name"`
			Email string `toml:"email"`
		} `toml:"authors"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Version string   `toml:"version"`
			Authors []string `toml:"authors"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

type citation struct {
	Version yaml.Node `yaml:"version"`
	Authors []struct {
		GivenNames  string `yaml:"given-names"`
		FamilyNames string `yaml:"family-names"`
		Name        string `yaml:"name"`
	} `yaml:"authors"`
}

// ReadPyproject reads version and author from root/pyproject.toml, taking
// the [project] table first and [tool.poetry] for whatever it leaves unset.
// A missing file yields empty Metadata and no error.
func ReadPyproject(fsys system.FileSystem, root string) (Metadata, error) {
	path := filepath.Join(root, PyprojectFile)
	if !fsys.Exists(path) {
		return Metadata{}, nil
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc pyproject
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return Metadata{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	md := Metadata{Version: strings.TrimSpace(doc.Project.Version)}
	for _, a := range doc.Project.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			md.Author = name
			break
		}
	}

	poetry := Metadata{Version: strings.TrimSpace(doc.Tool.Poetry.Version)}
	for _, a := range doc.Tool.Poetry.Authors {
		if name := authorName(a); name != "" {
			poetry.Author = name
			break
		}
	}
	md.Fill(poetry)

	return md, nil
}

// ReadCitation reads version and the first author from root/CITATION.cff.
// A missing file yields empty Metadata and no error.
func ReadCitation(fsys system.FileSystem, root string) (Metadata, error) {
	path := filepath.Join(root, CitationFile)
	if !fsys.Exists(path) {
		return Metadata{}, nil
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc citation
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Metadata{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	md := Metadata{}
	if doc.Version.Kind == yaml.ScalarNode {
		md.Version = strings.TrimSpace(doc.Version.Value)
	}
	for _, a := range doc.Authors {
		name := strings.TrimSpace(strings.Join(strings.Fields(a.GivenNames+" "+a.FamilyNames), " "))
		if name == "" {
			name = strings.TrimSpace(a.Name)
		}
		if name != "" {
			md.Author = name
			break
		}
	}
	return md, nil
}

// Declared merges the metadata declared in pyproject.toml and CITATION.cff,
// in that order. Unreadable files are logged and skipped.
func Declared(fsys system.FileSystem, root string) Metadata {
	var md Metadata
	readers := []struct {
		file string
		read func(system.FileSystem, string) (Metadata, error)
	}{
		{PyprojectFile, ReadPyproject},
		{CitationFile, ReadCitation},
	}
	for _, r := range readers {
		if md.Complete() {
			break
		}
		found, err := r.read(fsys, root)
		if err != nil {
			logging.Debug("skipping declared metadata", "file", r.file, "error", err)
			continue
		}
		md.Fill(found)
	}
	return md
}

// authorName strips a trailing "<email>" from a "Name <email>" author string.
func authorName(s string) string {
	if i := strings.Index(s, "<"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
