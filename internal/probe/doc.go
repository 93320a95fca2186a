// Package probe extracts a project's version and author from its Python
// modules and declared metadata files.
//
// # Modules
//
// A Loader turns a project entry into a Module, which exposes attributes by
// name. SourceLoader reads literal assignments from source files and never
// runs project code:
//
//	__version__ = (1, 2, "dev")   // "1.2.dev"
//	__author__ = "Jane Doe"
//
//	def get_version():
//	    return "2.0"              // invoked by LookupVersion
//
// ImportLoader imports the module with Python instead. It sees computed
// values at the cost of executing the project.
//
// # Lookups
//
// LookupVersion tries VersionAttrs in order and returns the first non-empty
// value; LookupAuthor reads __author__.
//
// # Declared Metadata
//
// Declared reads pyproject.toml ([project], then [tool.poetry]) and
// CITATION.cff.
package probe
