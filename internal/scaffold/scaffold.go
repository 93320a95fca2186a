package scaffold

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/firefly-engineering/sphinx-me/internal/builder"
	"github.com/firefly-engineering/sphinx-me/internal/config"
	"github.com/firefly-engineering/sphinx-me/internal/errors"
	"github.com/firefly-engineering/sphinx-me/internal/logging"
	"github.com/firefly-engineering/sphinx-me/internal/system"
	"github.com/firefly-engineering/sphinx-me/internal/textutil"
)

const readmeStem = "README"

// Messages printed by Install.
const (
	AbortMessage        = "ABORT: No README file in the current directory."
	SuccessMessage      = "SUCCESS: Sphinx docs layout created in %s"
	NotInstalledMessage = "Sphinx not installed. Not building docs."
	BuiltMessage        = "Docs built in %s"
)

// ConfStub is the generated docs/conf.py. Its second line asks sphinx-me
// for the settings of the project and merges them into the module globals.
const ConfStub = "# This file is automatically generated via sphinx-me\n" +
	`import json, subprocess; globals().update(json.loads(subprocess.check_output(["` + config.StubCommand + `", "conf", __file__])))` + "\n"

// IndexContent returns the docs/index.rst body including readme.
func IndexContent(readme string) string {
	return ".. include:: ../" + readme
}

// Result describes what Install did.
type Result struct {
	// Aborted is set when no README was found; nothing was written.
	Aborted bool

	Readme  string
	DocsDir string

	// Files lists the files written, in order.
	Files []string

	Built    bool
	BuildDir string
}

// Scaffolder creates the docs layout for a project directory.
type Scaffolder struct {
	fs      system.FileSystem
	builder *builder.Builder
	out     io.Writer
}

// New returns a Scaffolder that prints to out. A nil builder skips the
// documentation build.
func New(fsys system.FileSystem, b *builder.Builder, out io.Writer) *Scaffolder {
	return &Scaffolder{fs: fsys, builder: b, out: out}
}

// FindReadme returns the first entry of dir whose name without extension
// is README in any case, or "" when there is none.
func FindReadme(fsys system.FileSystem, dir string) (string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if textutil.FoldEqual(textutil.Stem(e.Name()), readmeStem) {
			return e.Name(), nil
		}
	}
	return "", nil
}

// Install writes docs/index.rst and docs/conf.py under dir and then builds
// the docs if the engine is installed. A directory without a README is left
// untouched and reported as aborted, not as an error.
func (s *Scaffolder) Install(ctx context.Context, dir string) (*Result, error) {
	readme, err := FindReadme(s.fs, dir)
	if err != nil {
		return nil, errors.FilesystemError("list", dir, err)
	}
	if readme == "" {
		s.say(AbortMessage)
		return &Result{Aborted: true}, nil
	}
	logging.Debug("found readme", "name", readme)

	docsDir := filepath.Join(dir, config.DocsDirName)
	if err := s.fs.MkdirAll(docsDir, 0755); err != nil {
		return nil, errors.FilesystemError("create", docsDir, err)
	}

	result := &Result{Readme: readme, DocsDir: docsDir}
	files := []struct {
		name    string
		content string
	}{
		{config.IndexFile, IndexContent(readme)},
		{config.ConfFile, ConfStub},
	}
	for _, f := range files {
		path := filepath.Join(docsDir, f.name)
		if err := s.fs.WriteFile(path, []byte(f.content), 0644); err != nil {
			return nil, errors.FilesystemError("write", path, err)
		}
		logging.Debug("wrote file", "path", path)
		result.Files = append(result.Files, path)
	}
	s.say(fmt.Sprintf(SuccessMessage, docsDir))

	if s.builder == nil {
		return result, nil
	}
	if !s.builder.Available() {
		s.say(NotInstalledMessage)
		return result, nil
	}

	buildDir, err := s.builder.Build(ctx, docsDir)
	if err != nil {
		return nil, err
	}
	result.Built = true
	result.BuildDir = buildDir
	s.say(fmt.Sprintf(BuiltMessage, buildDir))

	return result, nil
}

// say prints msg after a blank line.
func (s *Scaffolder) say(msg string) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, msg)
}
