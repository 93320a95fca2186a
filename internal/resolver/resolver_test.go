package resolver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/firefly-engineering/sphinx-me/internal/config"
	clierrors "github.com/firefly-engineering/sphinx-me/internal/errors"
	"github.com/firefly-engineering/sphinx-me/internal/logging"
	"github.com/firefly-engineering/sphinx-me/internal/probe"
	"github.com/firefly-engineering/sphinx-me/internal/prompt"
	"github.com/firefly-engineering/sphinx-me/internal/system"
)

var testNow = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

// answers is a prompt.Provider that records what it was asked.
type answers struct {
	values map[string]string
	asked  []string
	err    error
}

func (a *answers) Ask(_ context.Context, label string) (string, error) {
	a.asked = append(a.asked, label)
	if a.err != nil {
		return "", a.err
	}
	v, ok := a.values[label]
	if !ok {
		return "", fmt.Errorf("unexpected prompt %q", label)
	}
	return v, nil
}

type fixture struct {
	fs      *system.MockFS
	exec    *system.MockExecutor
	answers *answers
	report  *bytes.Buffer
}

func newFixture() *fixture {
	fsys := system.NewMockFS()
	fsys.AddDir("/proj")
	return &fixture{
		fs:      fsys,
		exec:    system.NewMockExecutor(),
		answers: &answers{values: map[string]string{}},
		report:  &bytes.Buffer{},
	}
}

func (f *fixture) withSetup(version, author string) {
	f.fs.AddFile("/proj/setup.py", []byte("from setuptools import setup\nsetup()\n"), 0644)
	f.exec.AddResponse("python -c import setuptools", nil, nil)
	f.exec.AddResponse("python /proj/setup.py --version", []byte(version+"\n"), nil)
	f.exec.AddResponse("python /proj/setup.py --author", []byte(author+"\n"), nil)
}

func (f *fixture) resolver(opts ...Option) *Resolver {
	base := []Option{
		WithFS(f.fs),
		WithExecutor(f.exec),
		WithPrompter(f.answers),
		WithReport(f.report),
		WithClock(testNow),
	}
	return New(config.Default(), append(base, opts...)...)
}

func TestResolve_SetupScript(t *testing.T) {
	f := newFixture()
	f.withSetup("1.2.3", "Jane Doe")

	s, err := f.resolver().Resolve(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	want := Settings{
		Version:   "1.2.3",
		Release:   "1.2.3",
		Project:   "proj",
		MasterDoc: "index",
		Copyright: "2026, Jane Doe",
	}
	if *s != want {
		t.Errorf("Resolve() = %+v, want %+v", *s, want)
	}
	if len(f.answers.asked) != 0 {
		t.Errorf("should not prompt, asked %v", f.answers.asked)
	}
	if _, ok := f.fs.GetFile("/proj/AUTHORS"); ok {
		t.Error("AUTHORS should not be written")
	}

	for _, cmd := range f.exec.Commands {
		if cmd.Dir != "/proj" {
			t.Errorf("command %q ran in %q, want /proj", cmd.String(), cmd.Dir)
		}
	}
}

func TestResolve_PlaceholdersDiscarded(t *testing.T) {
	f := newFixture()
	f.withSetup("0.0.0", "UNKNOWN")
	f.fs.AddFile("/proj/mypkg/__init__.py", []byte("__version__ = (2, 0)\n__author__ = 'Module Author'\n"), 0644)

	s, err := f.resolver().Resolve(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if s.Version != "2.0" {
		t.Errorf("Version = %q, want 2.0", s.Version)
	}
	if s.Copyright != "2026, Module Author" {
		t.Errorf("Copyright = %q", s.Copyright)
	}
}

func TestResolve_SetuptoolsMissing(t *testing.T) {
	f := newFixture()
	f.withSetup("1.0", "Jane")
	f.exec.AddResponse("python -c import setuptools", nil, fmt.Errorf("exit status 1"))
	f.answers.values[prompt.VersionLabel] = "3.0"
	f.answers.values[prompt.AuthorLabel] = "Asked Author"

	s, err := f.resolver().Resolve(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if s.Version != "3.0" {
		t.Errorf("Version = %q, want prompted 3.0", s.Version)
	}
	for _, cmd := range f.exec.Commands {
		if len(cmd.Args) > 0 && cmd.Args[0] == "/proj/setup.py" {
			t.Errorf("setup script should not be queried, ran %q", cmd.String())
		}
	}
}

func TestResolve_AuthorsFileOverrides(t *testing.T) {
	f := newFixture()
	f.withSetup("1.0", "Setup Author")
	f.fs.AddFile("/proj/AUTHORS", []byte("\n  \n- Jane Doe\n* Someone Else\n"), 0644)

	s, err := f.resolver().Resolve(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if s.Copyright != "2026, Jane Doe" {
		t.Errorf("Copyright = %q, want AUTHORS entry", s.Copyright)
	}
}

func TestResolve_AuthorsFileCaseInsensitive(t *testing.T) {
	f := newFixture()
	f.fs.AddFile("/proj/Authors", []byte("*** Jane Doe ***\r\n"), 0644)
	f.fs.AddFile("/proj/mod.py", []byte("__version__ = '1.0'\n"), 0644)

	s, err := f.resolver().Resolve(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if s.Copyright != "2026, Jane Doe" {
		t.Errorf("Copyright = %q", s.Copyright)
	}
}

func TestResolve_AuthorsFileCarriageReturns(t *testing.T) {
	f := newFixture()
	f.withSetup("1.0", "")
	f.fs.AddFile("/proj/AUTHORS", []byte("Jane Doe\rBob Smith\r"), 0644)

	s, err := f.resolver().Resolve(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if s.Copyright != "2026, Jane Doe" {
		t.Errorf("Copyright = %q, want first line only", s.Copyright)
	}
}

func TestResolve_PromptsForVersion(t *testing.T) {
	f := newFixture()
	f.fs.AddFile("/proj/AUTHORS", []byte("Jane Doe"), 0644)
	f.answers.values[prompt.VersionLabel] = "9.9.9"

	s, err := f.resolver().Resolve(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if s.Version != "9.9.9" || s.Release != "9.9.9" {
		t.Errorf("Version/Release = %q/%q, want 9.9.9", s.Version, s.Release)
	}
	if len(f.answers.asked) != 1 || f.answers.asked[0] != prompt.VersionLabel {
		t.Errorf("asked = %q, want version prompt only", f.answers.asked)
	}
	authors, _ := f.fs.GetFile("/proj/AUTHORS")
	if string(authors) != "Jane Doe" {
		t.Errorf("AUTHORS changed to %q", authors)
	}
}

func TestResolve_PromptsForAuthorAndSaves(t *testing.T) {
	f := newFixture()
	f.fs.AddFile("/proj/mod.py", []byte("VERSION = '1.0'\n"), 0644)
	f.answers.values[prompt.AuthorLabel] = "Zoë Ünïcode"

	s, err := f.resolver().Resolve(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if s.Copyright != "2026, Zoë Ünïcode" {
		t.Errorf("Copyright = %q", s.Copyright)
	}

	authors, ok := f.fs.GetFile("/proj/AUTHORS")
	if !ok {
		t.Fatal("AUTHORS not written")
	}
	if string(authors) != "Zoë Ünïcode" {
		t.Errorf("AUTHORS = %q, want exact author without newline", authors)
	}
}

func TestResolve_SecondRunReadsSavedAuthor(t *testing.T) {
	f := newFixture()
	f.fs.AddFile("/proj/mod.py", []byte("__version__ = '1.0'\n"), 0644)
	f.answers.values[prompt.AuthorLabel] = "Jane Doe"
	r := f.resolver()

	if _, err := r.Resolve(context.Background(), "/proj"); err != nil {
		t.Fatalf("first Resolve() error: %v", err)
	}
	f.answers.asked = nil

	s, err := r.Resolve(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("second Resolve() error: %v", err)
	}
	if len(f.answers.asked) != 0 {
		t.Errorf("second run should not prompt, asked %q", f.answers.asked)
	}
	if s.Copyright != "2026, Jane Doe" {
		t.Errorf("Copyright = %q", s.Copyright)
	}
}

func TestResolve_AuthorNeedsVersionFirst(t *testing.T) {
	f := newFixture()
	// a.py sorts first and has only an author; it is ignored because no
	// version is known when it is visited.
	f.fs.AddFile("/proj/a.py", []byte("__author__ = 'Early Author'\n"), 0644)
	f.fs.AddFile("/proj/b.py", []byte("__version__ = '1.0'\n"), 0644)
	f.fs.AddFile("/proj/c.py", []byte("__author__ = 'Late Author'\n"), 0644)

	s, err := f.resolver().Resolve(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if s.Copyright != "2026, Late Author" {
		t.Errorf("Copyright = %q, want Late Author", s.Copyright)
	}
}

func TestResolve_SkipsSetupScriptAndBrokenModules(t *testing.T) {
	f := newFixture()
	f.fs.AddFile("/proj/setup.py", []byte("__version__ = '6.6.6'\n"), 0644)
	f.exec.AddResponse("python -c import setuptools", nil, fmt.Errorf("no setuptools"))
	f.fs.AddFile("/proj/broken.py", []byte("x = 'unterminated\n"), 0644)
	f.fs.AddFile("/proj/not-a-module.py", []byte("__version__ = '5.5'\n"), 0644)
	f.fs.AddFile("/proj/zmod.py", []byte("__version__ = '1.1'\n__author__ = 'Z'\n"), 0644)

	s, err := f.resolver().Resolve(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if s.Version != "1.1" {
		t.Errorf("Version = %q, want 1.1", s.Version)
	}
}

func TestResolve_DeclaredMetadata(t *testing.T) {
	f := newFixture()
	f.fs.AddFile("/proj/pyproject.toml", []byte(`[project]
version = "4.2"
authors = [{ name = "Py Project" }]
`), 0644)
	f.fs.AddFile("/proj/mod.py", []byte("__version__ = '0.1'\n__author__ = 'Module'\n"), 0644)

	s, err := f.resolver().Resolve(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if s.Version != "0.1" {
		t.Errorf("Version = %q, want 0.1 from mod.py", s.Version)
	}
	if s.Copyright != "2026, Module" {
		t.Errorf("Copyright = %q, want module author", s.Copyright)
	}
}

func TestResolve_DeclaredMetadataFillsGaps(t *testing.T) {
	f := newFixture()
	f.fs.AddFile("/proj/pyproject.toml", []byte(`[project]
version = "4.2"
authors = [{ name = "Py Project" }]
`), 0644)
	f.fs.AddFile("/proj/mod.py", []byte("__version__ = '0.1'\n"), 0644)

	s, err := f.resolver().Resolve(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if s.Version != "0.1" {
		t.Errorf("Version = %q, want 0.1 from mod.py", s.Version)
	}
	if s.Copyright != "2026, Py Project" {
		t.Errorf("Copyright = %q, want author from pyproject.toml", s.Copyright)
	}
	if len(f.answers.asked) != 0 {
		t.Errorf("asked %q, want no prompts", f.answers.asked)
	}
}

func TestResolve_CustomLoader(t *testing.T) {
	f := newFixture()
	f.fs.AddDir("/proj/pkg")

	loader := loaderFunc(func(_ context.Context, root, name string) (probe.Module, error) {
		if name != "pkg" {
			return nil, probe.ErrNotModule
		}
		return probe.Attrs{"get_version": probe.Callable(func() (any, error) { return []any{"7", "1"}, nil })}, nil
	})
	f.answers.values[prompt.AuthorLabel] = "Jane"

	s, err := f.resolver(WithLoader(loader)).Resolve(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if s.Version != "7.1" {
		t.Errorf("Version = %q, want 7.1", s.Version)
	}
}

type loaderFunc func(ctx context.Context, root, name string) (probe.Module, error)

func (f loaderFunc) Load(ctx context.Context, root, name string) (probe.Module, error) {
	return f(ctx, root, name)
}

func TestResolve_PromptFailure(t *testing.T) {
	f := newFixture()
	f.answers.err = prompt.ErrNoInput

	_, err := f.resolver().Resolve(context.Background(), "/proj")
	if err == nil {
		t.Fatal("Resolve() should fail")
	}
	if code := clierrors.GetExitCode(err); code != clierrors.ExitPromptError {
		t.Errorf("exit code = %d, want %d", code, clierrors.ExitPromptError)
	}
	if !errors.Is(err, prompt.ErrNoInput) {
		t.Errorf("error should wrap ErrNoInput: %v", err)
	}
}

func TestResolve_AuthorsWriteFailure(t *testing.T) {
	f := newFixture()
	f.fs.AddFile("/proj/mod.py", []byte("__version__ = '1.0'\n"), 0644)
	f.fs.WriteFileErr = os.ErrPermission
	f.answers.values[prompt.AuthorLabel] = "Jane"

	_, err := f.resolver().Resolve(context.Background(), "/proj")
	if code := clierrors.GetExitCode(err); code != clierrors.ExitFilesystemError {
		t.Errorf("exit code = %d, want %d (err %v)", code, clierrors.ExitFilesystemError, err)
	}
}

func TestResolve_ImportModules(t *testing.T) {
	f := newFixture()
	f.fs.AddFile("/proj/mod.py", []byte("import version_helper\n__version__ = version_helper.get()\n"), 0644)
	f.exec.DefaultResponse = system.MockResponse{Output: []byte(`{"__version__": "8.0", "__author__": "Imported"}`)}

	cfg := config.Default()
	cfg.ImportModules = true
	r := New(cfg,
		WithFS(f.fs),
		WithExecutor(f.exec),
		WithPrompter(f.answers),
		WithReport(f.report),
		WithClock(testNow),
	)

	s, err := r.Resolve(context.Background(), "/proj")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if s.Version != "8.0" || s.Copyright != "2026, Imported" {
		t.Errorf("settings = %+v", *s)
	}
}

func TestResolve_Cancelled(t *testing.T) {
	f := newFixture()
	f.fs.AddFile("/proj/mod.py", []byte("__version__ = '1.0'\n"), 0644)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.resolver().Resolve(ctx, "/proj"); !errors.Is(err, context.Canceled) {
		t.Errorf("Resolve() error = %v, want context.Canceled", err)
	}
}

func TestSetupConf(t *testing.T) {
	f := newFixture()
	f.withSetup("1.2.3", "Jane Doe")

	ns := Namespace{
		FileKey:      "/proj/docs/conf.py",
		"version":    "old",
		"extensions": []string{"sphinx.ext.autodoc"},
	}
	s, err := f.resolver().SetupConf(context.Background(), ns)
	if err != nil {
		t.Fatalf("SetupConf() error: %v", err)
	}

	if ns["version"] != "1.2.3" {
		t.Errorf("ns[version] = %v, want overwritten", ns["version"])
	}
	if ns["master_doc"] != "index" || ns["project"] != "proj" {
		t.Errorf("ns = %v", ns)
	}
	if _, ok := ns["extensions"]; !ok {
		t.Error("unrelated namespace entries should be kept")
	}
	if s.Copyright != "2026, Jane Doe" {
		t.Errorf("Copyright = %q", s.Copyright)
	}

	want := "\nsphinx-me using the following values:\n\n" +
		"version:     1.2.3\n" +
		"release:     1.2.3\n" +
		"project:     proj\n" +
		"master_doc:  index\n" +
		"copyright:   2026, Jane Doe\n" +
		"\n"
	if f.report.String() != want {
		t.Errorf("report =\n%q\nwant\n%q", f.report.String(), want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, fmt.Errorf("broken pipe")
}

func TestSetupConf_ReportWriteFailure(t *testing.T) {
	var logs bytes.Buffer
	logging.Setup(false, false, &logs)
	defer logging.Setup(false, false, nil)

	f := newFixture()
	f.withSetup("1.2.3", "Jane Doe")

	ns := Namespace{FileKey: "/proj/docs/conf.py"}
	if _, err := f.resolver(WithReport(failingWriter{})).SetupConf(context.Background(), ns); err != nil {
		t.Fatalf("SetupConf() error: %v", err)
	}
	if ns["version"] != "1.2.3" {
		t.Errorf("ns[version] = %v, settings should still be applied", ns["version"])
	}
	if !strings.Contains(logs.String(), "failed to write settings report") {
		t.Errorf("expected a warning, got: %s", logs.String())
	}
}

func TestSetupConf_MissingFile(t *testing.T) {
	tests := []struct {
		name string
		ns   Namespace
	}{
		{"missing", Namespace{}},
		{"wrong type", Namespace{FileKey: 42}},
		{"empty", Namespace{FileKey: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.resolver().SetupConf(context.Background(), tt.ns)
			if code := clierrors.GetExitCode(err); code != clierrors.ExitStubError {
				t.Errorf("exit code = %d, want %d (err %v)", code, clierrors.ExitStubError, err)
			}
		})
	}
}

func TestProjectRoot(t *testing.T) {
	root, err := ProjectRoot("/home/user/proj/docs/conf.py")
	if err != nil {
		t.Fatalf("ProjectRoot() error: %v", err)
	}
	if root != "/home/user/proj" {
		t.Errorf("ProjectRoot() = %q", root)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	rel, err := ProjectRoot(filepath.Join("docs", "conf.py"))
	if err != nil {
		t.Fatalf("ProjectRoot() error: %v", err)
	}
	if rel != wd {
		t.Errorf("ProjectRoot(relative) = %q, want %q", rel, wd)
	}
}

func TestProjectName(t *testing.T) {
	tests := []struct {
		root string
		want string
	}{
		{"/home/user/proj", "proj"},
		{"/home/user/proj/", "proj"},
		{"/", ""},
	}
	for _, tt := range tests {
		if got := projectName(tt.root); got != tt.want {
			t.Errorf("projectName(%q) = %q, want %q", tt.root, got, tt.want)
		}
	}
}
