package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cabewaldrop/sqlparse/internal/sql/lexer"
)

func TestHighlighterDisabledPassesThrough(t *testing.T) {
	h := NewHighlighter(&bytes.Buffer{}, false)

	input := "SELECT  name\nFROM users WHERE a >= 'x';"
	if got := h.Highlight(input); got != input {
		t.Errorf("expected text unchanged, got %q", got)
	}
	if got := h.Token(lexer.TokenSelect, "SELECT"); got != "SELECT" {
		t.Errorf("expected token unchanged, got %q", got)
	}
	if got := h.Error("Error: boom"); got != "Error: boom" {
		t.Errorf("expected error unchanged, got %q", got)
	}
}

func TestHighlighterKeepsTokenText(t *testing.T) {
	h := NewHighlighter(&bytes.Buffer{}, true)

	input := "SELECT name, 42 FROM users WHERE note = 'hi' AND x <= 3;"
	got := h.Highlight(input)

	for _, part := range []string{"SELECT", "name", "42", "FROM", "users", "'hi'", "AND", "<=", ";"} {
		if !strings.Contains(got, part) {
			t.Errorf("highlighted output lost %q: %q", part, got)
		}
	}
}

func TestHighlighterStopsAtLexError(t *testing.T) {
	h := NewHighlighter(&bytes.Buffer{}, true)

	got := h.Highlight("SELECT # oops")
	if !strings.HasSuffix(got, "# oops") {
		t.Errorf("expected text after the bad character to be kept verbatim, got %q", got)
	}
}
