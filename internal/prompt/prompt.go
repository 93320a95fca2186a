package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/firefly-engineering/sphinx-me/internal/config"
	"github.com/firefly-engineering/sphinx-me/internal/tui"
)

// Labels shown when a value could not be discovered.
const (
	VersionLabel = "No version number found, please enter one: "
	AuthorLabel  = "No author found, please enter one: "
)

var (
	// ErrCancelled is returned when the user cancels an interactive prompt.
	ErrCancelled = tui.ErrCancelled

	// ErrNoInput is returned when the input ends before a line is read.
	ErrNoInput = errors.New("no input")

	// ErrNoDefault is returned by Fixed for a label without a configured value.
	ErrNoDefault = errors.New("no default configured")
)

// Provider supplies a value the user is asked for.
type Provider interface {
	Ask(ctx context.Context, label string) (string, error)
}

// Func adapts a function to Provider.
type Func func(ctx context.Context, label string) (string, error)

// Ask implements Provider.
func (f Func) Ask(ctx context.Context, label string) (string, error) {
	return f(ctx, label)
}

// Console writes the label and reads one line.
type Console struct {
	out    io.Writer
	reader *bufio.Reader
}

// NewConsole returns a Console reading from in and writing labels to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{out: out, reader: bufio.NewReader(in)}
}

// Ask implements Provider. The line ending is removed; nothing else is.
func (c *Console) Ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(c.out, label)

	line, err := c.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// Interactive asks with a terminal text input.
type Interactive struct {
	In  io.Reader
	Out io.Writer
}

// Ask implements Provider.
func (p *Interactive) Ask(ctx context.Context, label string) (string, error) {
	return tui.RunInput(ctx, label, "", p.In, p.Out)
}

// Fixed answers from configured defaults instead of asking.
type Fixed struct {
	Version string
	Author  string
}

// Ask implements Provider.
func (f *Fixed) Ask(_ context.Context, label string) (string, error) {
	var value string
	switch label {
	case VersionLabel:
		value = f.Version
	case AuthorLabel:
		value = f.Author
	}
	if value == "" {
		return "", fmt.Errorf("%w for %q", ErrNoDefault, strings.TrimSpace(label))
	}
	return value, nil
}

// New picks the Provider for cfg: configured defaults when prompting is
// disabled, a text input when in is a terminal, and plain line reads
// otherwise. Labels and the text input are drawn on out.
func New(cfg config.PromptConfig, in *os.File, out io.Writer) Provider {
	if cfg.NonInteractive {
		return &Fixed{Version: cfg.DefaultVersion, Author: cfg.DefaultAuthor}
	}
	if in != nil && (isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd())) {
		return &Interactive{In: in, Out: out}
	}
	return NewConsole(in, out)
}
