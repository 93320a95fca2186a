package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrNotModule is returned by a Loader when an entry cannot be loaded as a module.
var ErrNotModule = errors.New("not a loadable module")

// ErrNotStatic marks a value that exists but cannot be computed without
// running code.
var ErrNotStatic = errors.New("value is not a static literal")

// VersionAttrs are the attribute names searched for a version, in order.
var VersionAttrs = []string{
	"__version__",
	"get_version",
	"version",
	"__VERSION__",
	"GET_VERSION",
	"VERSION",
}

// AuthorAttr is the module attribute holding the author.
const AuthorAttr = "__author__"

// Metadata is the version and author reported by one metadata source.
// Empty fields are unknown.
type Metadata struct {
	Version string
	Author  string
}

// Complete reports whether both fields are known.
func (m Metadata) Complete() bool {
	return m.Version != "" && m.Author != ""
}

// Fill sets the unknown fields of m from other.
func (m *Metadata) Fill(other Metadata) {
	if m.Version == "" {
		m.Version = other.Version
	}
	if m.Author == "" {
		m.Author = other.Author
	}
}

// Module gives access to the attributes of a loaded module.
type Module interface {
	Attr(name string) (any, bool)
}

// Callable is a module attribute that produces its value when invoked.
type Callable func() (any, error)

// Attrs is a Module backed by a map.
type Attrs map[string]any

// Attr implements Module.
func (a Attrs) Attr(name string) (any, bool) {
	v, ok := a[name]
	return v, ok
}

// Loader loads the project entry called name from root as a module.
type Loader interface {
	Load(ctx context.Context, root, name string) (Module, error)
}

// LookupVersion searches m for a version under VersionAttrs. Callables are
// invoked and sequences are joined with dots. The first non-empty value wins.
func LookupVersion(m Module) (string, bool) {
	for _, name := range VersionAttrs {
		raw, ok := m.Attr(name)
		if !ok {
			continue
		}
		s, err := attrString(raw)
		if err != nil || s == "" {
			continue
		}
		return s, true
	}
	return "", false
}

// LookupAuthor returns the module's __author__ attribute.
func LookupAuthor(m Module) (string, bool) {
	raw, ok := m.Attr(AuthorAttr)
	if !ok {
		return "", false
	}
	s, err := attrString(raw)
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}

func attrString(raw any) (string, error) {
	if call, ok := raw.(Callable); ok {
		v, err := call()
		if err != nil {
			return "", err
		}
		raw = v
	}
	switch v := raw.(type) {
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, "."), nil
	case []string:
		return strings.Join(v, "."), nil
	default:
		return Stringify(v), nil
	}
}

// Stringify renders a scalar attribute value the way Python's str() would
// for the literal types a probe can produce. Nil renders as "".
func Stringify(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "True"
		}
		return "False"
	case float64:
		s := fmt.Sprint(v)
		if !strings.ContainsAny(s, ".eEIN") {
			s += ".0"
		}
		return s
	default:
		return fmt.Sprint(v)
	}
}

// IsIdentifier reports whether name can be imported as a top-level module.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
