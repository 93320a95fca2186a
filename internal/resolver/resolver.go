package resolver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/firefly-engineering/sphinx-me/internal/config"
	"github.com/firefly-engineering/sphinx-me/internal/errors"
	"github.com/firefly-engineering/sphinx-me/internal/logging"
	"github.com/firefly-engineering/sphinx-me/internal/probe"
	"github.com/firefly-engineering/sphinx-me/internal/prompt"
	"github.com/firefly-engineering/sphinx-me/internal/system"
	"github.com/firefly-engineering/sphinx-me/internal/textutil"
)

// Resolver discovers the version and author of a project and derives the
// Sphinx settings from them.
type Resolver struct {
	cfg      *config.Config
	fs       system.FileSystem
	exec     system.CommandExecutor
	loader   probe.Loader
	prompter prompt.Provider
	report   io.Writer
	now      func() time.Time
	python   string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFS sets the filesystem.
func WithFS(fsys system.FileSystem) Option {
	return func(r *Resolver) {
		r.fs = fsys
	}
}

// WithExecutor sets the command executor used for Python.
func WithExecutor(exec system.CommandExecutor) Option {
	return func(r *Resolver) {
		r.exec = exec
	}
}

// WithLoader replaces the module loader chosen from the config.
func WithLoader(l probe.Loader) Option {
	return func(r *Resolver) {
		r.loader = l
	}
}

// WithPrompter sets where missing values come from.
func WithPrompter(p prompt.Provider) Option {
	return func(r *Resolver) {
		r.prompter = p
	}
}

// WithReport sets where the settings report is written.
func WithReport(w io.Writer) Option {
	return func(r *Resolver) {
		r.report = w
	}
}

// WithClock sets the time source for the copyright year.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// New returns a Resolver for cfg. A nil cfg uses config.Default.
func New(cfg *config.Config, opts ...Option) *Resolver {
	if cfg == nil {
		cfg = config.Default()
	}
	r := &Resolver{cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}

	if r.fs == nil {
		r.fs = system.DefaultFS()
	}
	if r.exec == nil {
		r.exec = system.DefaultExecutor()
	}
	if r.prompter == nil {
		r.prompter = prompt.NewConsole(os.Stdin, os.Stderr)
	}
	if r.report == nil {
		r.report = os.Stderr
	}
	if r.now == nil {
		r.now = time.Now
	}

	r.python = resolvePython(r.exec, cfg.Python)
	if r.loader == nil {
		if cfg.ImportModules {
			r.loader = probe.NewImportLoader(r.exec, r.python)
		} else {
			r.loader = probe.NewSourceLoader(r.fs, cfg.ModuleSuffix)
		}
	}

	return r
}

// resolvePython falls back to python3 when the default interpreter name is
// not on PATH.
func resolvePython(exec system.CommandExecutor, name string) string {
	if _, err := exec.LookPath(name); err == nil {
		return name
	}
	if name == config.DefaultPython {
		if _, err := exec.LookPath("python3"); err == nil {
			logging.Debug("using python3 interpreter", "configured", name)
			return "python3"
		}
	}
	return name
}

// ProjectRoot returns the project directory for a configuration stub at
// stubPath: the parent of the directory containing it.
func ProjectRoot(stubPath string) (string, error) {
	abs, err := filepath.Abs(stubPath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(filepath.Dir(abs)), nil
}

// SetupConf derives the settings for the project owning the stub named by
// ns[FileKey], reports them and merges them into ns.
func (r *Resolver) SetupConf(ctx context.Context, ns Namespace) (*Settings, error) {
	stubPath, ok := ns[FileKey].(string)
	if !ok || stubPath == "" {
		return nil, errors.StubError(fmt.Sprintf("configuration namespace has no usable %s", FileKey))
	}

	root, err := ProjectRoot(stubPath)
	if err != nil {
		return nil, errors.Wrap(errors.ExitStubError, "failed to locate project root", err)
	}

	settings, err := r.Resolve(ctx, root)
	if err != nil {
		return nil, err
	}

	if err := settings.Report(r.report); err != nil {
		logging.Warn("failed to write settings report", "error", err)
	}
	settings.Apply(ns)
	return settings, nil
}

// Resolve discovers version and author for root, asks for whatever is
// still missing and derives the settings. An author that had to be asked
// for is saved to root/AUTHORS.
func (r *Resolver) Resolve(ctx context.Context, root string) (*Settings, error) {
	logging.Debug("resolving project metadata", "root", root)

	md := r.fromSetupScript(ctx, root)
	if err := r.scan(ctx, root, &md); err != nil {
		return nil, err
	}
	if !md.Complete() {
		md.Fill(probe.Declared(r.fs, root))
	}

	if md.Version == "" {
		v, err := r.prompter.Ask(ctx, prompt.VersionLabel)
		if err != nil {
			return nil, errors.PromptError("version", err)
		}
		md.Version = v
	}

	if md.Author == "" {
		a, err := r.prompter.Ask(ctx, prompt.AuthorLabel)
		if err != nil {
			return nil, errors.PromptError("author", err)
		}
		md.Author = textutil.DecodeUTF8([]byte(a))

		path := filepath.Join(root, config.AuthorsFile)
		if err := r.fs.WriteFile(path, []byte(md.Author), 0644); err != nil {
			return nil, errors.FilesystemError("write", path, err)
		}
		logging.Debug("saved author", "path", path)
	}

	return &Settings{
		Version:   md.Version,
		Release:   md.Version,
		Project:   projectName(root),
		MasterDoc: config.MasterDoc,
		Copyright: fmt.Sprintf("%d, %s", r.now().Year(), md.Author),
	}, nil
}

// projectName is the last element of root; the filesystem root has none.
func projectName(root string) string {
	name := filepath.Base(filepath.Clean(root))
	if name == string(filepath.Separator) || name == "." {
		return ""
	}
	return name
}
