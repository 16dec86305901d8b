// Package web - Input validation for web handlers
//
// EDUCATIONAL NOTES:
// ------------------
// Input validation is critical for robustness:
//
// 1. Size limits: bodies and statements are capped before any parsing
//    work is done, so a huge request costs almost nothing to reject.
//
// 2. Encoding: the lexer works on UTF-8 text; anything else is refused
//    at the HTTP layer with a clear message instead of a confusing
//    "unexpected character" further down.
//
// 3. Early validation: Validate input at the HTTP layer before it reaches
//    the parser, providing better error messages to users.

package web

import (
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

const (
	// MaxBodyBytes caps the size of an API request body.
	MaxBodyBytes = 64 << 10
	// MaxSQLLength caps the number of characters in one statement.
	MaxSQLLength = 16 * 1024
)

// Validation failures reported by ValidateSQL.
var (
	ErrEmptySQL    = errors.New("sql field is required")
	ErrSQLTooLong  = errors.Newf("sql must be at most %d characters", MaxSQLLength)
	ErrInvalidUTF8 = errors.New("sql must be valid UTF-8")
)

// ValidateSQL checks a statement before it is handed to the parser.
//
// Examples:
//
//	ValidateSQL("SELECT a FROM t;") // nil
//	ValidateSQL("   ")              // ErrEmptySQL
//	ValidateSQL("\xff")             // ErrInvalidUTF8
func ValidateSQL(sql string) error {
	if strings.TrimSpace(sql) == "" {
		return ErrEmptySQL
	}
	if !utf8.ValidString(sql) {
		return ErrInvalidUTF8
	}
	if utf8.RuneCountInString(sql) > MaxSQLLength {
		return ErrSQLTooLong
	}
	return nil
}
