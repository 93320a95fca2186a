package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user leaves an input with Esc or Ctrl-C.
var ErrCancelled = errors.New("input cancelled")

var (
	inputLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	inputValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	inputDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// inputModel asks for a single line of text.
type inputModel struct {
	input     textinput.Model
	label     string
	value     string
	done      bool
	cancelled bool
}

func newInputModel(label, placeholder string) inputModel {
	ti := textinput.New()
	ti.Prompt = label
	ti.PromptStyle = inputLabelStyle
	ti.TextStyle = inputValueStyle
	ti.Placeholder = placeholder
	ti.CharLimit = 0 // no limit
	ti.Width = 40
	ti.Focus()

	return inputModel{input: ti, label: label}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			// Entered text is used exactly as typed.
			m.value = m.input.Value()
			m.done = true
			m.input.Blur()
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	switch {
	case m.done:
		return inputLabelStyle.Render(m.label) + inputValueStyle.Render(m.value) + "\n"
	case m.cancelled:
		return inputLabelStyle.Render(m.label) + inputDimStyle.Render("(cancelled)") + "\n"
	}
	return m.input.View() + "\n" + inputDimStyle.Render("[enter] Confirm  [esc] Cancel") + "\n"
}

// RunInput shows a text input labelled label, reading keys from in and
// drawing on out, and returns what the user entered.
func RunInput(ctx context.Context, label, placeholder string, in io.Reader, out io.Writer) (string, error) {
	p := tea.NewProgram(
		newInputModel(label, placeholder),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("input error: %w", err)
	}

	m, ok := final.(inputModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.value, nil
}
