// Package tui provides the terminal input components for sphinx-me.
//
// RunInput asks for one line of text with a Bubble Tea text input:
//
//	value, err := tui.RunInput(ctx, "No author found, please enter one: ", "", os.Stdin, os.Stderr)
//	if errors.Is(err, tui.ErrCancelled) {
//	    // Esc or Ctrl-C
//	}
//
// The entered text is returned exactly as typed.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
