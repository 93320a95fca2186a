// Package testutil provides test utilities for command tests
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/firefly-engineering/sphinx-me/internal/app"
	"github.com/firefly-engineering/sphinx-me/internal/config"
	"github.com/firefly-engineering/sphinx-me/internal/prompt"
	"github.com/firefly-engineering/sphinx-me/internal/system"
)

// Year is the copyright year reported under TestEnv.
const Year = 2026

// TestEnv holds the test environment
type TestEnv struct {
	T        *testing.T
	Dir      string
	Executor *system.MockExecutor
	ErrOut   *bytes.Buffer
	App      *app.App

	// Answers maps prompt labels to the values typed in reply.
	Answers map[string]string

	// Asked records the prompt labels shown, in order.
	Asked []string
}

// NewTestEnv creates a test environment for a project directory and installs
// its App as app.Default. An empty project starts from an empty directory;
// otherwise the named fixture is copied.
func NewTestEnv(t *testing.T, project string) *TestEnv {
	t.Helper()

	dir := t.TempDir()
	if project != "" {
		dir = CopyProject(t, project)
	}

	env := &TestEnv{
		T:        t,
		Dir:      dir,
		Executor: system.NewMockExecutor(),
		ErrOut:   &bytes.Buffer{},
		Answers:  make(map[string]string),
	}

	// Without a Python toolchain the setup script source is skipped.
	env.Executor.AddResponse("python -c import setuptools", nil, fmt.Errorf("exit status 1"))

	env.App = app.New(
		app.WithExecutor(env.Executor),
		app.WithPrompter(prompt.Func(env.answer)),
		app.WithErrOut(env.ErrOut),
		app.WithClock(func() time.Time { return time.Date(Year, 1, 15, 0, 0, 0, 0, time.UTC) }),
	)
	app.SetDefault(env.App)
	t.Cleanup(app.ResetDefault)

	return env
}

func (e *TestEnv) answer(_ context.Context, label string) (string, error) {
	e.Asked = append(e.Asked, label)
	v, ok := e.Answers[label]
	if !ok {
		return "", prompt.ErrNoInput
	}
	return v, nil
}

// Chdir makes the project the working directory for the rest of the test.
func (e *TestEnv) Chdir() {
	e.T.Helper()
	e.T.Chdir(e.Dir)
}

// StubPath returns the path of the generated configuration stub.
func (e *TestEnv) StubPath() string {
	return filepath.Join(e.Dir, config.DocsDirName, config.ConfFile)
}

// Path joins rel onto the project directory.
func (e *TestEnv) Path(rel string) string {
	return filepath.Join(e.Dir, filepath.FromSlash(rel))
}

// WriteFile writes a project file, creating parent directories.
func (e *TestEnv) WriteFile(rel, content string) {
	e.T.Helper()
	p := e.Path(rel)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		e.T.Fatalf("Failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write %s: %v", rel, err)
	}
}

// ReadFile reads a project file, failing the test if it is missing.
func (e *TestEnv) ReadFile(rel string) string {
	e.T.Helper()
	data, err := os.ReadFile(e.Path(rel))
	if err != nil {
		e.T.Fatalf("Failed to read %s: %v", rel, err)
	}
	return string(data)
}

// Exists reports whether a project file exists.
func (e *TestEnv) Exists(rel string) bool {
	_, err := os.Stat(e.Path(rel))
	return err == nil
}
