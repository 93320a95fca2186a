// Package testutil provides test fixtures and utilities.
//
// # Fixture Projects
//
// Small Python projects are embedded using go:embed:
//
//	fixtures/package_project  README.rst, mypkg/__init__.py
//	fixtures/poetry_project   README.md, pyproject.toml
//	fixtures/bare_project     README.txt
//
// CopyProject copies one into a temporary directory:
//
//	dir := testutil.CopyProject(t, testutil.PackageProject)
//
// # Test Environment
//
// NewTestEnv copies a fixture and installs an app.App wired to a mock
// executor, scripted prompt answers and a fixed clock as app.Default:
//
//	env := testutil.NewTestEnv(t, testutil.BareProject)
//	env.Answers[prompt.VersionLabel] = "1.0"
//	env.Chdir()
//
// Prompts shown are recorded in env.Asked; prompts and reports written by
// the App go to env.ErrOut.
package testutil
