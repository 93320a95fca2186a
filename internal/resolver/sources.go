package resolver

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/firefly-engineering/sphinx-me/internal/config"
	"github.com/firefly-engineering/sphinx-me/internal/logging"
	"github.com/firefly-engineering/sphinx-me/internal/probe"
	"github.com/firefly-engineering/sphinx-me/internal/textutil"
)

// Placeholders setup scripts report for fields that were never set.
const (
	unsetVersion = "0.0.0"
	unsetAuthor  = "UNKNOWN"
)

// authorsCutset is stripped from both ends of each AUTHORS line.
const authorsCutset = "*- \t\r\n"

// fromSetupScript asks the project's setup script for its version and
// author. Any failure leaves the fields unset.
func (r *Resolver) fromSetupScript(ctx context.Context, root string) probe.Metadata {
	var md probe.Metadata

	script := filepath.Join(root, r.cfg.SetupScript)
	if !r.fs.Exists(script) {
		return md
	}
	if _, err := r.exec.Output(ctx, root, r.python, "-c", "import setuptools"); err != nil {
		logging.Debug("setuptools not available, skipping setup script", "python", r.python, "error", err)
		return md
	}

	if v := r.setupAttribute(ctx, root, script, "version"); v != unsetVersion {
		md.Version = v
	}
	if a := r.setupAttribute(ctx, root, script, "author"); a != unsetAuthor {
		md.Author = a
	}
	logging.Debug("setup script metadata", "version", md.Version, "author", md.Author)
	return md
}

func (r *Resolver) setupAttribute(ctx context.Context, root, script, attribute string) string {
	out, err := r.exec.Output(ctx, root, r.python, script, "--"+attribute)
	if err != nil {
		logging.Debug("setup script query failed", "attribute", attribute, "error", err)
		return ""
	}
	return textutil.TrimOutput(out)
}

// scan walks the entries of root in listing order. An AUTHORS file
// overrides the author; modules supply the version, then the author once a
// version is known.
func (r *Resolver) scan(ctx context.Context, root string, md *probe.Metadata) error {
	entries, err := r.fs.ReadDir(root)
	if err != nil {
		logging.Debug("failed to list project root", "root", root, "error", err)
		return nil
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := e.Name()
		path := filepath.Join(root, name)

		if textutil.FoldEqual(name, config.AuthorsFile) {
			if author, ok := r.readAuthors(path); ok {
				md.Author = author
			}
			continue
		}
		if name == r.cfg.SetupScript {
			continue
		}

		var modName string
		switch {
		case r.fs.IsDir(path):
			modName = name
		case strings.HasSuffix(name, r.cfg.ModuleSuffix):
			modName = strings.TrimSuffix(name, r.cfg.ModuleSuffix)
		default:
			continue
		}

		m, err := r.loader.Load(ctx, root, modName)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			logging.Debug("skipping entry", "name", name, "error", err)
			continue
		}

		if md.Version == "" {
			if v, ok := probe.LookupVersion(m); ok {
				logging.Debug("version from module", "module", modName, "version", v)
				md.Version = v
			}
		}
		if md.Version != "" && md.Author == "" {
			if a, ok := probe.LookupAuthor(m); ok {
				logging.Debug("author from module", "module", modName, "author", a)
				md.Author = a
			}
		}
	}
	return nil
}

// readAuthors returns the first non-blank line of an AUTHORS file with list
// markers and whitespace trimmed.
func (r *Resolver) readAuthors(path string) (string, bool) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		logging.Debug("failed to read authors file", "path", path, "error", err)
		return "", false
	}
	for _, line := range strings.FieldsFunc(textutil.DecodeUTF8(data), isLineBreak) {
		if line = strings.Trim(line, authorsCutset); line != "" {
			return line, true
		}
	}
	return "", false
}

// isLineBreak splits on \n, \r\n and a bare \r alike.
func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}
