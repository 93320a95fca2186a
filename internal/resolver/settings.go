package resolver

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Namespace is the set of names a configuration module exposes. Settings
// are merged into it.
type Namespace map[string]any

// FileKey is the namespace entry holding the path of the configuration stub.
const FileKey = "__file__"

// ReportHeader introduces the settings report.
const ReportHeader = "sphinx-me using the following values:"

// Settings are the values injected into the Sphinx configuration.
type Settings struct {
	Version   string `json:"version"`
	Release   string `json:"release"`
	Project   string `json:"project"`
	MasterDoc string `json:"master_doc"`
	Copyright string `json:"copyright"`
}

// Keys returns the setting names in report order.
func (s *Settings) Keys() []string {
	return []string{"version", "release", "project", "master_doc", "copyright"}
}

// Map returns the settings keyed by name.
func (s *Settings) Map() map[string]string {
	return map[string]string{
		"version":    s.Version,
		"release":    s.Release,
		"project":    s.Project,
		"master_doc": s.MasterDoc,
		"copyright":  s.Copyright,
	}
}

// Apply merges the settings into ns, replacing existing entries.
func (s *Settings) Apply(ns Namespace) {
	for k, v := range s.Map() {
		ns[k] = v
	}
}

// Report writes the settings to w, one "key:" per line padded to three
// columns past the longest key.
func (s *Settings) Report(w io.Writer) error {
	keys := s.Keys()
	values := s.Map()

	pad := 0
	for _, k := range keys {
		pad = max(pad, len(k))
	}
	pad += 3

	keyStyle := lipgloss.NewRenderer(w).NewStyle().Width(pad)

	if _, err := fmt.Fprintf(w, "\n%s\n\n", ReportHeader); err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := fmt.Fprintln(w, keyStyle.Render(k+":")+values[k]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
