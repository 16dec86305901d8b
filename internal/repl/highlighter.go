package repl

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cabewaldrop/sqlparse/internal/sql/lexer"
)

// Highlighter colours SQL text by token class.
//
// It runs the real lexer over the text rather than splitting on spaces, so
// what gets coloured as a keyword is exactly what the parser will treat as
// one. Whitespace between tokens is copied through untouched.
type Highlighter struct {
	enabled bool

	keywordStyle  lipgloss.Style
	identStyle    lipgloss.Style
	stringStyle   lipgloss.Style
	numberStyle   lipgloss.Style
	operatorStyle lipgloss.Style
	errorStyle    lipgloss.Style
}

// NewHighlighter creates a highlighter for output written to w. The colour
// profile is detected from w, so a pipe or buffer gets plain text even
// when enabled is true.
func NewHighlighter(w io.Writer, enabled bool) *Highlighter {
	r := lipgloss.NewRenderer(w)

	return &Highlighter{
		enabled: enabled,

		keywordStyle: r.NewStyle().
			Foreground(lipgloss.Color("#FF79C6")).
			Bold(true),

		identStyle: r.NewStyle().
			Foreground(lipgloss.Color("#8BE9FD")),

		stringStyle: r.NewStyle().
			Foreground(lipgloss.Color("#F1FA8C")),

		numberStyle: r.NewStyle().
			Foreground(lipgloss.Color("#BD93F9")),

		operatorStyle: r.NewStyle().
			Foreground(lipgloss.Color("#FFB86C")),

		errorStyle: r.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true),
	}
}

// Highlight returns sql with every token styled. Text from the first
// lexical error onward is returned as is.
func (h *Highlighter) Highlight(sql string) string {
	if !h.enabled {
		return sql
	}

	var sb strings.Builder
	l := lexer.New(sql)
	last := 0

	for {
		tok, err := l.NextToken()
		if err != nil || tok.Type == lexer.TokenEOF {
			break
		}
		sb.WriteString(sql[last:tok.Pos])
		sb.WriteString(h.Token(tok.Type, sql[tok.Pos:tok.End]))
		last = tok.End
	}

	sb.WriteString(sql[last:])
	return sb.String()
}

// Token styles text according to the class of token type t.
func (h *Highlighter) Token(t lexer.TokenType, text string) string {
	if !h.enabled {
		return text
	}

	switch {
	case t.IsKeyword():
		return h.keywordStyle.Render(text)
	case t == lexer.TokenIdent:
		return h.identStyle.Render(text)
	case t == lexer.TokenString:
		return h.stringStyle.Render(text)
	case t == lexer.TokenNumber:
		return h.numberStyle.Render(text)
	case t == lexer.TokenIllegal || t == lexer.TokenEOF:
		return text
	default:
		return h.operatorStyle.Render(text)
	}
}

// Error styles an error message.
func (h *Highlighter) Error(msg string) string {
	if !h.enabled {
		return msg
	}
	return h.errorStyle.Render(msg)
}
