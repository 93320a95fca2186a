// Package app provides the application context for sphinx-me.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    FS       system.FileSystem      // Docs and AUTHORS I/O
//	    Executor system.CommandExecutor // Python and sphinx-build
//	    Config   *config.Config         // Fixed config, or nil to load per project
//	    Prompter prompt.Provider        // Missing-value source, or nil for the default
//	    ...
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a := app.New()
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithExecutor(system.NewMockExecutor()),
//	    app.WithPrompter(prompt.Func(answer)),
//	    app.WithErrOut(&buf),
//	)
//
// # Components
//
//	a.Scaffolder(cfg, out, build) // docs layout for "sphinx-me install"
//	a.Resolver(cfg)               // settings for "sphinx-me conf"
package app
