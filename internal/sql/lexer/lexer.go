// Package lexer implements a lexical analyzer (tokenizer) for SQL.
//
// EDUCATIONAL NOTES:
// ------------------
// A lexer (also called tokenizer or scanner) is the first phase of parsing.
// It reads the raw input string and converts it into a sequence of tokens.
//
// For example, the input:
//   SELECT name FROM users WHERE id = 1;
//
// Becomes these tokens:
//   [SELECT] [IDENT:name] [FROM] [IDENT:users] [WHERE] [IDENT:id] [EQUALS] [NUMBER:1] [SEMICOLON] [EOF]
//
// The lexer makes a single left-to-right pass and never backtracks. The
// first character it cannot classify aborts the whole scan: there is no
// such thing as a partially tokenized statement.

package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TokenType represents the type of a token.
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Literals
	TokenIdent  // column names, table names
	TokenNumber // 123
	TokenString // 'hello' or "hello"

	// Keywords
	keywordBegin
	TokenSelect
	TokenFrom
	TokenWhere
	TokenOrder
	TokenBy
	TokenAsc
	TokenDesc
	TokenCreate
	TokenTable
	TokenAnd
	TokenOr
	TokenNot
	TokenTrue
	TokenFalse
	TokenPrimary
	TokenKey
	TokenCheck
	TokenInt
	TokenBool
	TokenVarchar
	TokenNull
	keywordEnd

	// Operators
	TokenEquals         // =
	TokenNotEquals      // !=
	TokenLessThan       // <
	TokenGreaterThan    // >
	TokenLessOrEqual    // <=
	TokenGreaterOrEqual // >=
	TokenPlus           // +
	TokenMinus          // -
	TokenAsterisk       // *
	TokenSlash          // /

	// Punctuation
	TokenComma      // ,
	TokenSemicolon  // ;
	TokenLeftParen  // (
	TokenRightParen // )
)

var tokenTypeNames = map[TokenType]string{
	TokenEOF:            "EOF",
	TokenIllegal:        "ILLEGAL",
	TokenIdent:          "IDENT",
	TokenNumber:         "NUMBER",
	TokenString:         "STRING",
	TokenSelect:         "SELECT",
	TokenFrom:           "FROM",
	TokenWhere:          "WHERE",
	TokenOrder:          "ORDER",
	TokenBy:             "BY",
	TokenAsc:            "ASC",
	TokenDesc:           "DESC",
	TokenCreate:         "CREATE",
	TokenTable:          "TABLE",
	TokenAnd:            "AND",
	TokenOr:             "OR",
	TokenNot:            "NOT",
	TokenTrue:           "TRUE",
	TokenFalse:          "FALSE",
	TokenPrimary:        "PRIMARY",
	TokenKey:            "KEY",
	TokenCheck:          "CHECK",
	TokenInt:            "INT",
	TokenBool:           "BOOL",
	TokenVarchar:        "VARCHAR",
	TokenNull:           "NULL",
	TokenEquals:         "EQUALS",
	TokenNotEquals:      "NOT_EQUALS",
	TokenLessThan:       "LESS_THAN",
	TokenGreaterThan:    "GREATER_THAN",
	TokenLessOrEqual:    "LESS_OR_EQUAL",
	TokenGreaterOrEqual: "GREATER_OR_EQUAL",
	TokenPlus:           "PLUS",
	TokenMinus:          "MINUS",
	TokenAsterisk:       "ASTERISK",
	TokenSlash:          "SLASH",
	TokenComma:          "COMMA",
	TokenSemicolon:      "SEMICOLON",
	TokenLeftParen:      "LEFT_PAREN",
	TokenRightParen:     "RIGHT_PAREN",
}

// String returns the name of a token type.
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// IsKeyword reports whether t is one of the reserved words.
func (t TokenType) IsKeyword() bool {
	return t > keywordBegin && t < keywordEnd
}

// keywords maps SQL keywords to their token types.
// SQL is case-insensitive, so keys are stored lowercased.
var keywords = map[string]TokenType{
	"select":  TokenSelect,
	"from":    TokenFrom,
	"where":   TokenWhere,
	"order":   TokenOrder,
	"by":      TokenBy,
	"asc":     TokenAsc,
	"desc":    TokenDesc,
	"create":  TokenCreate,
	"table":   TokenTable,
	"and":     TokenAnd,
	"or":      TokenOr,
	"not":     TokenNot,
	"true":    TokenTrue,
	"false":   TokenFalse,
	"primary": TokenPrimary,
	"key":     TokenKey,
	"check":   TokenCheck,
	"int":     TokenInt,
	"bool":    TokenBool,
	"varchar": TokenVarchar,
	"null":    TokenNull,
}

// Token represents a lexical token.
//
// Literal holds the identifier text with its original casing, the decoded
// contents of a string literal, or the source text of anything else.
// Number is only meaningful for TokenNumber.
type Token struct {
	Type    TokenType
	Literal string
	Number  uint64
	Line    int
	Column  int
	Pos     int // byte offset of the first character
	End     int // byte offset just past the last character
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	switch {
	case t.Type == TokenEOF:
		return "end of input"
	case t.Type == TokenString:
		return strconv.Quote(t.Literal)
	case t.Type.IsKeyword():
		return t.Type.String()
	default:
		return t.Literal
	}
}

// Lexer tokenizes SQL input.
type Lexer struct {
	input  string
	pos    int  // byte offset of ch
	next   int  // byte offset after ch
	ch     rune // current character, 0 at end of input
	line   int
	column int
	lower  cases.Caser
}

// New creates a new Lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
		lower:  cases.Lower(language.Und),
	}
	l.readChar()
	return l
}

// Tokenize scans the whole input. On success the returned slice always ends
// with exactly one TokenEOF. On failure the slice is nil and the error is a
// *Error.
func Tokenize(input string) ([]Token, error) {
	return New(input).Tokenize()
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.pos = l.next
	if l.next >= len(l.input) {
		l.ch = 0
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.next:])
	l.ch = r
	l.next += size
	l.column++
}

// peekChar looks at the next character without advancing.
func (l *Lexer) peekChar() rune {
	if l.next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.next:])
	return r
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

// NextToken returns the next token from the input.
//
// EDUCATIONAL NOTE:
// -----------------
// This is the main lexer function. It examines the current character
// and decides what type of token it starts. Operators that share a first
// character (> and >=, < and <=) look one character ahead and take the
// longest match ("maximal munch").
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	if l.atEnd() {
		return l.makeToken(TokenEOF, l.pos, l.line, l.column), nil
	}

	start, line, col := l.pos, l.line, l.column

	switch l.ch {
	case '=':
		l.readChar()
		return l.makeToken(TokenEquals, start, line, col), nil
	case '+':
		l.readChar()
		return l.makeToken(TokenPlus, start, line, col), nil
	case '-':
		l.readChar()
		return l.makeToken(TokenMinus, start, line, col), nil
	case '*':
		l.readChar()
		return l.makeToken(TokenAsterisk, start, line, col), nil
	case '/':
		l.readChar()
		return l.makeToken(TokenSlash, start, line, col), nil
	case ',':
		l.readChar()
		return l.makeToken(TokenComma, start, line, col), nil
	case ';':
		l.readChar()
		return l.makeToken(TokenSemicolon, start, line, col), nil
	case '(':
		l.readChar()
		return l.makeToken(TokenLeftParen, start, line, col), nil
	case ')':
		l.readChar()
		return l.makeToken(TokenRightParen, start, line, col), nil
	case '<':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return l.makeToken(TokenLessOrEqual, start, line, col), nil
		}
		return l.makeToken(TokenLessThan, start, line, col), nil
	case '>':
		l.readChar()
		if l.ch == '=' {
			l.readChar()
			return l.makeToken(TokenGreaterOrEqual, start, line, col), nil
		}
		return l.makeToken(TokenGreaterThan, start, line, col), nil
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return l.makeToken(TokenNotEquals, start, line, col), nil
		}
		return l.illegal(start, line, col)
	case '\'', '"':
		return l.readString()
	}

	switch {
	case isLetter(l.ch):
		return l.readIdentifier(), nil
	case isDigit(l.ch):
		return l.readNumber()
	default:
		return l.illegal(start, line, col)
	}
}

// makeToken creates a token spanning input[start:l.pos].
func (l *Lexer) makeToken(tokenType TokenType, start, line, col int) Token {
	return Token{
		Type:    tokenType,
		Literal: l.input[start:l.pos],
		Line:    line,
		Column:  col,
		Pos:     start,
		End:     l.pos,
	}
}

// illegal consumes the current character and reports it.
func (l *Lexer) illegal(start, line, col int) (Token, error) {
	ch := l.ch
	l.readChar()
	tok := l.makeToken(TokenIllegal, start, line, col)
	return tok, &Error{Kind: ErrUnexpectedChar, Char: ch, Line: line, Column: col}
}

// skipWhitespace skips spaces, tabs, and newlines.
func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && (l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r') {
		l.readChar()
	}
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier() Token {
	start, line, col := l.pos, l.line, l.column

	for !l.atEnd() && (isIdentChar(l.ch) || isDigit(l.ch)) {
		l.readChar()
	}

	tok := l.makeToken(TokenIdent, start, line, col)
	if tokenType, ok := keywords[l.lower.String(tok.Literal)]; ok {
		tok.Type = tokenType
	}
	return tok
}

// readNumber reads an unsigned integer literal.
func (l *Lexer) readNumber() (Token, error) {
	start, line, col := l.pos, l.line, l.column

	for !l.atEnd() && isDigit(l.ch) {
		l.readChar()
	}

	tok := l.makeToken(TokenNumber, start, line, col)
	n, err := strconv.ParseUint(tok.Literal, 10, 64)
	if err != nil {
		return tok, &Error{Kind: ErrInvalidNumber, Literal: tok.Literal, Line: line, Column: col}
	}
	tok.Number = n
	return tok, nil
}

// readString reads a string literal enclosed in single or double quotes.
//
// EDUCATIONAL NOTE:
// -----------------
// The literal ends at the first unescaped occurrence of the quote that
// opened it, so 'say "hi"' is a valid string. A backslash makes the next
// character literal: 'it\'s' decodes to it's and 'a\\b' to a\b.
func (l *Lexer) readString() (Token, error) {
	start, line, col := l.pos, l.line, l.column
	quote := l.ch
	l.readChar() // consume opening quote

	var sb strings.Builder
	for {
		if l.atEnd() {
			return l.makeToken(TokenIllegal, start, line, col),
				&Error{Kind: ErrUnterminatedString, Char: quote, Line: line, Column: col}
		}
		switch l.ch {
		case quote:
			l.readChar()
			tok := l.makeToken(TokenString, start, line, col)
			tok.Literal = sb.String()
			return tok, nil
		case '\\':
			l.readChar()
			if l.atEnd() {
				continue
			}
			sb.WriteRune(l.ch)
			l.readChar()
		default:
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
}

// Tokenize returns all tokens from the input, ending with TokenEOF.
// The first lexical error aborts the scan and no tokens are returned.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// isLetter checks if the character can start an identifier. Only ASCII
// letters and '_' qualify; other letters may follow but never lead.
func isLetter(ch rune) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

// isIdentChar checks if the character can continue an identifier.
func isIdentChar(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

// isDigit checks if the character is a decimal digit.
func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
