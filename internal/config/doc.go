// Package config provides the sphinx-me settings and the fixed names of the
// files it generates.
//
// # Configuration File
//
// Settings are read with viper from an optional .sphinx-me.toml in the
// project directory:
//
//	python         = "python3"
//	setup_script   = "setup.py"
//	module_suffix  = ".py"
//	import_modules = false
//
//	[build]
//	command = "sphinx-build -b html"
//	output  = "build"
//
//	[prompt]
//	non_interactive = true
//	default_version = "0.1"
//	default_author  = "Jane Doe"
//
// Every key can be overridden from the environment with the SPHINX_ME_
// prefix, dots replaced by underscores (SPHINX_ME_PROMPT_DEFAULT_AUTHOR).
//
// # Validation
//
// Load validates after decoding; Validate can be called on hand-built values.
package config
