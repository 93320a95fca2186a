package errors

import (
	"errors"
	"fmt"
)

// Exit codes for sphinx-me. Success, including an aborted install, exits 0.
const (
	ExitGeneralError    = 1
	ExitConfigError     = 2
	ExitStubError       = 3
	ExitPromptError     = 4
	ExitFilesystemError = 5
)

// CLIError is the base error type for sphinx-me
type CLIError struct {
	Code    int
	Message string
	Cause   error
}

func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *CLIError) ExitCode() int {
	return e.Code
}

// New creates a new CLIError
func New(code int, message string) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a CLIError
func Wrap(code int, message string, cause error) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *CLIError {
	return Wrap(ExitConfigError, message, cause)
}

// StubError returns an error for an unusable configuration stub namespace
func StubError(message string) *CLIError {
	return New(ExitStubError, message)
}

// PromptError returns an error when a value could not be read from the user
func PromptError(label string, cause error) *CLIError {
	return Wrap(ExitPromptError, fmt.Sprintf("reading %s", label), cause)
}

// FilesystemError returns an error for failed writes under the project
func FilesystemError(op, path string, cause error) *CLIError {
	return Wrap(ExitFilesystemError, fmt.Sprintf("%s %s", op, path), cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.ExitCode()
	}
	return ExitGeneralError
}
