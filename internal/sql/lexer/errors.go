package lexer

import "fmt"

// ErrorKind identifies what went wrong while scanning.
type ErrorKind int

const (
	// ErrUnexpectedChar is a character that does not start any token,
	// including a '!' that is not followed by '='.
	ErrUnexpectedChar ErrorKind = iota + 1
	// ErrUnterminatedString is a quote that is never closed.
	ErrUnterminatedString
	// ErrInvalidNumber is a digit run that does not fit in a uint64.
	ErrInvalidNumber
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedChar:
		return "UnexpectedChar"
	case ErrUnterminatedString:
		return "UnterminatedString"
	case ErrInvalidNumber:
		return "InvalidNumber"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a lexical error. Char is set for ErrUnexpectedChar (the offending
// character) and ErrUnterminatedString (the opening quote); Literal is set
// for ErrInvalidNumber.
type Error struct {
	Kind    ErrorKind
	Char    rune
	Literal string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnexpectedChar:
		return fmt.Sprintf("unexpected character %q at line %d, column %d", e.Char, e.Line, e.Column)
	case ErrUnterminatedString:
		return fmt.Sprintf("unterminated string starting at line %d, column %d", e.Line, e.Column)
	case ErrInvalidNumber:
		return fmt.Sprintf("invalid number %s at line %d, column %d", e.Literal, e.Line, e.Column)
	default:
		return fmt.Sprintf("lexical error at line %d, column %d", e.Line, e.Column)
	}
}
