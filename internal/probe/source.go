package probe

import (
	"context"
	"fmt"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/firefly-engineering/sphinx-me/internal/system"
	"github.com/firefly-engineering/sphinx-me/internal/textutil"
)

// SourceLoader reads module attributes from Python source without
// executing it. Packages resolve to their __init__ file; a directory
// without one loads as an empty namespace package.
//
// Paths are resolved through FS with symlinks confined to the project
// root, so a link pointing outside the root reads the same path inside it
// instead.
type SourceLoader struct {
	FS     system.FileSystem
	Suffix string
}

// NewSourceLoader returns a SourceLoader for files ending in suffix.
func NewSourceLoader(fsys system.FileSystem, suffix string) *SourceLoader {
	return &SourceLoader{FS: fsys, Suffix: suffix}
}

// Load implements Loader.
func (l *SourceLoader) Load(ctx context.Context, root, name string) (Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !IsIdentifier(name) {
		return nil, fmt.Errorf("%w: %q is not an identifier", ErrNotModule, name)
	}

	pkgDir, err := securejoin.SecureJoinVFS(root, name, l.FS)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotModule, err)
	}
	if l.FS.IsDir(pkgDir) {
		initPath := filepath.Join(pkgDir, "__init__"+l.Suffix)
		if !l.FS.Exists(initPath) {
			return Attrs{}, nil
		}
		return l.parseFile(initPath)
	}

	modPath, err := securejoin.SecureJoinVFS(root, name+l.Suffix, l.FS)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotModule, err)
	}
	return l.parseFile(modPath)
}

func (l *SourceLoader) parseFile(path string) (Module, error) {
	data, err := l.FS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotModule, err)
	}
	attrs, err := parseSource(textutil.DecodeUTF8(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotModule, path, err)
	}
	return attrs, nil
}
