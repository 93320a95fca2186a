// Package resolver derives the Sphinx settings for a project.
//
// # Discovery Order
//
// Resolve collects a version and an author from, in order:
//
//  1. the setup script, queried with "python setup.py --version/--author"
//  2. the project root listing: an AUTHORS file replaces the author, and
//     each package or module supplies a version and then an author
//  3. pyproject.toml and CITATION.cff, for fields still unset
//
// Whatever is still missing is asked for through a prompt.Provider. An
// author entered that way is written to AUTHORS so the question is asked
// once per project.
//
// # Settings
//
// The resulting Settings hold version, release, project, master_doc and
// copyright. SetupConf prints them as a report and merges them into the
// configuration Namespace.
package resolver
