package parser

import (
	"fmt"

	"github.com/cabewaldrop/sqlparse/internal/sql/lexer"
)

// ErrorKind identifies what went wrong while parsing.
type ErrorKind int

const (
	// ErrLex wraps a *lexer.Error; the statement could not be tokenized.
	ErrLex ErrorKind = iota + 1
	// ErrUnexpectedToken is a token the grammar does not allow at its position.
	ErrUnexpectedToken
	// ErrUnexpectedEnd means the input ran out while the grammar still
	// expected a token.
	ErrUnexpectedEnd
	// ErrInvalidColumnType is a column type other than INT, BOOL or VARCHAR(n).
	ErrInvalidColumnType
	// ErrInvalidVarcharLength is a VARCHAR length outside [1, 65535].
	ErrInvalidVarcharLength
	// ErrNumberTooLarge is a literal that does not fit the integer domain
	// its context requires.
	ErrNumberTooLarge
)

func (k ErrorKind) String() string {
	switch k {
	case ErrLex:
		return "LexError"
	case ErrUnexpectedToken:
		return "UnexpectedToken"
	case ErrUnexpectedEnd:
		return "UnexpectedEnd"
	case ErrInvalidColumnType:
		return "InvalidColumnType"
	case ErrInvalidVarcharLength:
		return "InvalidVarcharLength"
	case ErrNumberTooLarge:
		return "NumberTooLarge"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the single error type returned by Parse and ParseExpression.
//
// Token is the token at which parsing failed. It is the zero Token for
// ErrLex, whose cause is in Lex instead.
type Error struct {
	Kind  ErrorKind
	Token lexer.Token
	Lex   *lexer.Error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrLex:
		return fmt.Sprintf("lexical error: %v", e.Lex)
	case ErrUnexpectedToken:
		return fmt.Sprintf("unexpected token %s at line %d, column %d", e.Token, e.Token.Line, e.Token.Column)
	case ErrUnexpectedEnd:
		return "unexpected end of input"
	case ErrInvalidColumnType:
		return fmt.Sprintf("invalid column type %s at line %d, column %d", e.Token, e.Token.Line, e.Token.Column)
	case ErrInvalidVarcharLength:
		if e.Token.Type == lexer.TokenNumber {
			return fmt.Sprintf("invalid VARCHAR length %s: must be between 1 and %d", e.Token, MaxVarcharLength)
		}
		return fmt.Sprintf("invalid VARCHAR length: must be between 1 and %d", MaxVarcharLength)
	case ErrNumberTooLarge:
		return fmt.Sprintf("number %s is too large at line %d, column %d", e.Token, e.Token.Line, e.Token.Column)
	default:
		return "parse error"
	}
}

// Unwrap returns the underlying lexical error, if any.
func (e *Error) Unwrap() error {
	if e.Lex == nil {
		return nil
	}
	return e.Lex
}

// Line returns the 1-based line where the error was detected.
func (e *Error) Line() int {
	if e.Lex != nil {
		return e.Lex.Line
	}
	return e.Token.Line
}

// Column returns the 1-based column where the error was detected.
func (e *Error) Column() int {
	if e.Lex != nil {
		return e.Lex.Column
	}
	return e.Token.Column
}
