// Package prompt supplies values that sphinx-me could not discover.
//
// Every source implements Provider:
//
//   - Console prints the label and reads a line
//   - Interactive shows a text input on a terminal
//   - Fixed answers from [prompt] defaults in .sphinx-me.toml
//   - Func wraps a function, mostly for tests
//
// New chooses between them from the config and the input stream.
package prompt
