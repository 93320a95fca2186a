// Package scaffold creates the Sphinx docs layout for a project.
//
// Install looks for a README in the project directory and writes two files:
//
//	docs/index.rst  .. include:: ../README.rst
//	docs/conf.py    a stub that runs "sphinx-me conf" at build time
//
// Both are overwritten on every run. When the build command from the config
// is on PATH the docs are built into docs/build.
package scaffold
