// Package errors provides typed errors with exit codes for sphinx-me.
//
// # Error Types
//
// CLIError is the base error type that wraps an error with an exit code:
//
//	type CLIError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Success, including an aborted install, exits 0.
//
//	ExitGeneralError    = 1  // General/unknown errors
//	ExitConfigError     = 2  // .sphinx-me.toml could not be loaded
//	ExitStubError       = 3  // conf namespace lacks a usable __file__
//	ExitPromptError     = 4  // a fallback value could not be read
//	ExitFilesystemError = 5  // docs or AUTHORS could not be written
//
// Optional metadata sources never produce errors; they are skipped.
//
// # Extracting Exit Codes
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
