package prompt

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/firefly-engineering/sphinx-me/internal/config"
)

func TestConsole_Ask(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unix line", "1.0\n", "1.0"},
		{"windows line", "1.0\r\n", "1.0"},
		{"kept verbatim", "  Jane Doe  \n", "  Jane Doe  "},
		{"empty line", "\n", ""},
		{"no trailing newline", "2.0", "2.0"},
		{"first line only", "a\nb\n", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := NewConsole(strings.NewReader(tt.input), &out)

			got, err := c.Ask(context.Background(), VersionLabel)
			if err != nil {
				t.Fatalf("Ask() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Ask() = %q, want %q", got, tt.want)
			}
			if out.String() != VersionLabel {
				t.Errorf("label output = %q, want %q", out.String(), VersionLabel)
			}
		})
	}
}

func TestConsole_SequentialAsks(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("9.9.9\nJane\n"), &out)

	v, err := c.Ask(context.Background(), VersionLabel)
	if err != nil || v != "9.9.9" {
		t.Fatalf("first Ask() = (%q, %v)", v, err)
	}
	a, err := c.Ask(context.Background(), AuthorLabel)
	if err != nil || a != "Jane" {
		t.Fatalf("second Ask() = (%q, %v)", a, err)
	}
	if out.String() != VersionLabel+AuthorLabel {
		t.Errorf("output = %q", out.String())
	}
}

func TestConsole_EOF(t *testing.T) {
	c := NewConsole(strings.NewReader(""), &bytes.Buffer{})
	if _, err := c.Ask(context.Background(), AuthorLabel); !errors.Is(err, ErrNoInput) {
		t.Errorf("Ask() error = %v, want ErrNoInput", err)
	}
}

func TestConsole_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	c := NewConsole(strings.NewReader("1.0\n"), &out)
	if _, err := c.Ask(ctx, VersionLabel); !errors.Is(err, context.Canceled) {
		t.Errorf("Ask() error = %v, want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Errorf("label should not be printed, got %q", out.String())
	}
}

func TestFixed_Ask(t *testing.T) {
	f := &Fixed{Version: "0.1", Author: "Jane Doe"}

	if v, err := f.Ask(context.Background(), VersionLabel); err != nil || v != "0.1" {
		t.Errorf("version = (%q, %v), want 0.1", v, err)
	}
	if a, err := f.Ask(context.Background(), AuthorLabel); err != nil || a != "Jane Doe" {
		t.Errorf("author = (%q, %v), want Jane Doe", a, err)
	}

	empty := &Fixed{}
	if _, err := empty.Ask(context.Background(), VersionLabel); !errors.Is(err, ErrNoDefault) {
		t.Errorf("error = %v, want ErrNoDefault", err)
	}
	if _, err := f.Ask(context.Background(), "Something else: "); !errors.Is(err, ErrNoDefault) {
		t.Errorf("unknown label error = %v, want ErrNoDefault", err)
	}
}

func TestFunc_Ask(t *testing.T) {
	var gotLabel string
	p := Func(func(_ context.Context, label string) (string, error) {
		gotLabel = label
		return "answer", nil
	})

	v, err := p.Ask(context.Background(), AuthorLabel)
	if err != nil || v != "answer" {
		t.Errorf("Ask() = (%q, %v)", v, err)
	}
	if gotLabel != AuthorLabel {
		t.Errorf("label = %q, want %q", gotLabel, AuthorLabel)
	}
}

func TestNew(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	t.Run("non-interactive", func(t *testing.T) {
		p := New(config.PromptConfig{NonInteractive: true, DefaultAuthor: "Jane"}, f, &bytes.Buffer{})
		fixed, ok := p.(*Fixed)
		if !ok {
			t.Fatalf("New() = %T, want *Fixed", p)
		}
		if fixed.Author != "Jane" {
			t.Errorf("Author = %q, want Jane", fixed.Author)
		}
	})

	t.Run("regular file", func(t *testing.T) {
		p := New(config.PromptConfig{}, f, &bytes.Buffer{})
		if _, ok := p.(*Console); !ok {
			t.Errorf("New() = %T, want *Console", p)
		}
	})
}
