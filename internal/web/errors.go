package web

import (
	"github.com/cockroachdb/errors"

	"github.com/cabewaldrop/sqlparse/internal/sql/lexer"
	"github.com/cabewaldrop/sqlparse/internal/sql/parser"
)

// ErrorDetails describes a parse failure in machine-readable form.
type ErrorDetails struct {
	Kind   string `json:"kind"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
	Hint   string `json:"hint,omitempty"`
}

// GetErrorHint returns a helpful hint for a parse or lexical error.
// Returns empty string if no hint is available.
func GetErrorHint(err error) string {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		switch lexErr.Kind {
		case lexer.ErrUnexpectedChar:
			if lexErr.Char == '!' {
				return "Use != for inequality; ! on its own is not an operator."
			}
			return "Only letters, digits, quotes, operators and ( ) , ; may appear in a statement."
		case lexer.ErrUnterminatedString:
			return "Close the string with the same quote character that opened it."
		case lexer.ErrInvalidNumber:
			return "Integer literals must fit in an unsigned 64-bit integer."
		}
		return ""
	}

	var parseErr *parser.Error
	if !errors.As(err, &parseErr) {
		return ""
	}

	switch parseErr.Kind {
	case parser.ErrUnexpectedEnd:
		return "The statement is incomplete. Statements must end with a semicolon."
	case parser.ErrUnexpectedToken:
		switch parseErr.Token.Type {
		case lexer.TokenSemicolon:
			return "Check for a missing FROM clause or a missing expression before the semicolon."
		case lexer.TokenFrom:
			return "SELECT needs at least one column or * before FROM."
		case lexer.TokenComma, lexer.TokenRightParen:
			return "Check for a trailing comma or an unbalanced parenthesis."
		case lexer.TokenIdent:
			if parseErr.Token.Column == 1 {
				return "Only SELECT and CREATE TABLE statements are supported."
			}
		}
		return "Check SQL syntax near the indicated position."
	case parser.ErrInvalidColumnType:
		return "Column types are INT, BOOL and VARCHAR(n)."
	case parser.ErrInvalidVarcharLength:
		return "VARCHAR length must be between 1 and 65535."
	case parser.ErrNumberTooLarge:
		return "The number is too large for this position."
	default:
		return ""
	}
}

// ErrorDetailsFor classifies err. Errors that did not come from the lexer
// or parser are reported with kind "InvalidRequest".
func ErrorDetailsFor(err error) *ErrorDetails {
	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		kind := parseErr.Kind.String()
		if parseErr.Lex != nil {
			kind = parseErr.Lex.Kind.String()
		}
		return &ErrorDetails{
			Kind:   kind,
			Line:   parseErr.Line(),
			Column: parseErr.Column(),
			Hint:   GetErrorHint(err),
		}
	}

	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return &ErrorDetails{
			Kind:   lexErr.Kind.String(),
			Line:   lexErr.Line,
			Column: lexErr.Column,
			Hint:   GetErrorHint(err),
		}
	}

	return &ErrorDetails{Kind: "InvalidRequest"}
}
