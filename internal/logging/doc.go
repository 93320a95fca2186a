// Package logging provides logging utilities for sphinx-me.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings.
// Metadata discovery logs every skipped source at debug level:
//
//	logging.Debug("setup script unavailable", "path", path, "error", err)
//	logging.Warn("failed to write settings report", "error", err)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Using config %s", path)
//	logging.UserError("sphinx-me: %v", err)
//
// Output destinations:
//   - UserInfo: stdout
//   - UserWarning, UserError: stderr
//
// The fixed console messages of the scaffolder and the resolver report are
// not routed through here; they are written verbatim to the command writers.
package logging
