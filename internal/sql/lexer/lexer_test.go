package lexer

import (
	"errors"
	"testing"
)

func TestLexerBasicTokens(t *testing.T) {
	input := "SELECT * FROM users;"

	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", input, err)
	}

	expected := []struct {
		tokenType TokenType
		literal   string
	}{
		{TokenSelect, "SELECT"},
		{TokenAsterisk, "*"},
		{TokenFrom, "FROM"},
		{TokenIdent, "users"},
		{TokenSemicolon, ";"},
		{TokenEOF, ""},
	}

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Type != exp.tokenType {
			t.Errorf("token %d: expected type %s, got %s", i, exp.tokenType, tokens[i].Type)
		}
		if tokens[i].Literal != exp.literal {
			t.Errorf("token %d: expected literal %q, got %q", i, exp.literal, tokens[i].Literal)
		}
	}
}

func TestLexerSingleCharTokens(t *testing.T) {
	tokens, err := Tokenize("( ) , ; + - * / =")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}

	expected := []TokenType{
		TokenLeftParen,
		TokenRightParen,
		TokenComma,
		TokenSemicolon,
		TokenPlus,
		TokenMinus,
		TokenAsterisk,
		TokenSlash,
		TokenEquals,
		TokenEOF,
	}
	assertTypes(t, tokens, expected)
}

func TestLexerMultiCharOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenType
	}{
		{">", []TokenType{TokenGreaterThan, TokenEOF}},
		{">=", []TokenType{TokenGreaterOrEqual, TokenEOF}},
		{"<", []TokenType{TokenLessThan, TokenEOF}},
		{"<=", []TokenType{TokenLessOrEqual, TokenEOF}},
		{"!=", []TokenType{TokenNotEquals, TokenEOF}},
		{"> =", []TokenType{TokenGreaterThan, TokenEquals, TokenEOF}},
		{"<=>=", []TokenType{TokenLessOrEqual, TokenGreaterOrEqual, TokenEOF}},
		{"a>=b", []TokenType{TokenIdent, TokenGreaterOrEqual, TokenIdent, TokenEOF}},
	}

	for _, tt := range tests {
		tokens, err := Tokenize(tt.input)
		if err != nil {
			t.Errorf("Tokenize(%q) error: %v", tt.input, err)
			continue
		}
		assertTypes(t, tokens, tt.expected)
	}
}

func TestLexerComplexQuery(t *testing.T) {
	input := "SELECT name, age FROM users WHERE age >= 18 AND name != 'admin' ORDER BY age DESC;"

	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}

	expected := []TokenType{
		TokenSelect,
		TokenIdent, // name
		TokenComma,
		TokenIdent, // age
		TokenFrom,
		TokenIdent, // users
		TokenWhere,
		TokenIdent, // age
		TokenGreaterOrEqual,
		TokenNumber, // 18
		TokenAnd,
		TokenIdent, // name
		TokenNotEquals,
		TokenString, // 'admin'
		TokenOrder,
		TokenBy,
		TokenIdent, // age
		TokenDesc,
		TokenSemicolon,
		TokenEOF,
	}
	assertTypes(t, tokens, expected)
}

func TestLexerCreateTable(t *testing.T) {
	input := "CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(50) NOT NULL, ok BOOL CHECK (ok = TRUE));"

	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}

	expected := []TokenType{
		TokenCreate,
		TokenTable,
		TokenIdent, // users
		TokenLeftParen,
		TokenIdent, // id
		TokenInt,
		TokenPrimary,
		TokenKey,
		TokenComma,
		TokenIdent, // name
		TokenVarchar,
		TokenLeftParen,
		TokenNumber,
		TokenRightParen,
		TokenNot,
		TokenNull,
		TokenComma,
		TokenIdent, // ok
		TokenBool,
		TokenCheck,
		TokenLeftParen,
		TokenIdent,
		TokenEquals,
		TokenTrue,
		TokenRightParen,
		TokenRightParen,
		TokenSemicolon,
		TokenEOF,
	}
	assertTypes(t, tokens, expected)
}

func TestLexerKeywordsCaseInsensitive(t *testing.T) {
	tests := []struct {
		input     string
		tokenType TokenType
	}{
		{"select", TokenSelect},
		{"SeLeCt", TokenSelect},
		{"varchar", TokenVarchar},
		{"False", TokenFalse},
		{"null", TokenNull},
		{"Users", TokenIdent},
		{"_tmp1", TokenIdent},
		{"selection", TokenIdent},
		// Keywords match on lowercasing only, not full case folding.
		{"aſc", TokenIdent},
		{"deſc", TokenIdent},
		// Letters beyond ASCII may continue an identifier.
		{"naïve", TokenIdent},
		{"_ém", TokenIdent},
	}

	for _, tt := range tests {
		tokens, err := Tokenize(tt.input)
		if err != nil {
			t.Errorf("Tokenize(%q) error: %v", tt.input, err)
			continue
		}
		if tokens[0].Type != tt.tokenType {
			t.Errorf("Tokenize(%q): expected %s, got %s", tt.input, tt.tokenType, tokens[0].Type)
		}
		if tokens[0].Literal != tt.input {
			t.Errorf("Tokenize(%q): literal should keep original casing, got %q", tt.input, tokens[0].Literal)
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input    string
		expected uint64
	}{
		{"0", 0},
		{"42", 42},
		{"007", 7},
		{"18446744073709551615", 18446744073709551615},
	}

	for _, tt := range tests {
		tokens, err := Tokenize(tt.input)
		if err != nil {
			t.Errorf("Tokenize(%q) error: %v", tt.input, err)
			continue
		}
		if tokens[0].Type != TokenNumber {
			t.Errorf("Tokenize(%q): expected NUMBER, got %s", tt.input, tokens[0].Type)
		}
		if tokens[0].Number != tt.expected {
			t.Errorf("Tokenize(%q): expected %d, got %d", tt.input, tt.expected, tokens[0].Number)
		}
	}

	// A digit run followed by letters is two tokens.
	tokens, err := Tokenize("12abc")
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	assertTypes(t, tokens, []TokenType{TokenNumber, TokenIdent, TokenEOF})
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`'hello'`, "hello"},
		{`"Voldemort"`, "Voldemort"},
		{`''`, ""},
		{`'say "hi"'`, `say "hi"`},
		{`"it's"`, "it's"},
		{`'it\'s'`, "it's"},
		{`"a\"b"`, `a"b`},
		{`'back\\slash'`, `back\slash`},
		{`'\n'`, "n"},
		{`'héllo wörld'`, "héllo wörld"},
		{`'SELECT'`, "SELECT"},
	}

	for _, tt := range tests {
		tokens, err := Tokenize(tt.input)
		if err != nil {
			t.Errorf("Tokenize(%s) error: %v", tt.input, err)
			continue
		}
		if len(tokens) != 2 {
			t.Errorf("Tokenize(%s): expected 2 tokens, got %d", tt.input, len(tokens))
			continue
		}
		if tokens[0].Type != TokenString {
			t.Errorf("Tokenize(%s): expected STRING, got %s", tt.input, tokens[0].Type)
		}
		if tokens[0].Literal != tt.expected {
			t.Errorf("Tokenize(%s): expected %q, got %q", tt.input, tt.expected, tokens[0].Literal)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  ErrorKind
		char  rune
	}{
		{"SELECT # FROM t;", ErrUnexpectedChar, '#'},
		{"a ! b", ErrUnexpectedChar, '!'},
		{"!", ErrUnexpectedChar, '!'},
		{"price $", ErrUnexpectedChar, '$'},
		{"1.5", ErrUnexpectedChar, '.'},
		{"ſelect a from t;", ErrUnexpectedChar, 'ſ'},
		{"SELECT é FROM t;", ErrUnexpectedChar, 'é'},
		{"'unterminated", ErrUnterminatedString, '\''},
		{`"unterminated`, ErrUnterminatedString, '"'},
		{`'`, ErrUnterminatedString, '\''},
		{`'mixed"`, ErrUnterminatedString, '\''},
		{`'trailing\`, ErrUnterminatedString, '\''},
		{`'escaped\'`, ErrUnterminatedString, '\''},
		{"18446744073709551616", ErrInvalidNumber, 0},
	}

	for _, tt := range tests {
		tokens, err := Tokenize(tt.input)
		if err == nil {
			t.Errorf("Tokenize(%q): expected error, got tokens %v", tt.input, tokens)
			continue
		}
		if tokens != nil {
			t.Errorf("Tokenize(%q): expected no tokens on error, got %d", tt.input, len(tokens))
		}

		var lexErr *Error
		if !errors.As(err, &lexErr) {
			t.Errorf("Tokenize(%q): expected *Error, got %T", tt.input, err)
			continue
		}
		if lexErr.Kind != tt.kind {
			t.Errorf("Tokenize(%q): expected %s, got %s", tt.input, tt.kind, lexErr.Kind)
		}
		if lexErr.Char != tt.char {
			t.Errorf("Tokenize(%q): expected char %q, got %q", tt.input, tt.char, lexErr.Char)
		}
	}
}

func TestLexerErrorMessages(t *testing.T) {
	_, err := Tokenize("SELECT #")
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := err.Error(), `unexpected character '#' at line 1, column 8`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	_, err = Tokenize("99999999999999999999")
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := err.Error(), "invalid number 99999999999999999999 at line 1, column 1"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLexerEndsWithSingleEOF(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"\t\n",
		"SELECT",
		"SELECT a FROM b;",
		"CREATE TABLE t (x INT);   ",
	}

	for _, input := range inputs {
		tokens, err := Tokenize(input)
		if err != nil {
			t.Errorf("Tokenize(%q) error: %v", input, err)
			continue
		}
		if len(tokens) == 0 {
			t.Errorf("Tokenize(%q): no tokens", input)
			continue
		}
		for i, tok := range tokens {
			isLast := i == len(tokens)-1
			if (tok.Type == TokenEOF) != isLast {
				t.Errorf("Tokenize(%q): EOF must be exactly the last token, found %s at %d", input, tok.Type, i)
			}
		}
	}
}

func TestLexerPositions(t *testing.T) {
	input := "SELECT name\nFROM  users;"

	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}

	expected := []struct {
		line, column, pos, end int
	}{
		{1, 1, 0, 6},    // SELECT
		{1, 8, 7, 11},   // name
		{2, 1, 12, 16},  // FROM
		{2, 7, 18, 23},  // users
		{2, 12, 23, 24}, // ;
		{2, 13, 24, 24}, // EOF
	}

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, exp := range expected {
		tok := tokens[i]
		if tok.Line != exp.line || tok.Column != exp.column {
			t.Errorf("token %d (%s): expected %d:%d, got %d:%d", i, tok.Type, exp.line, exp.column, tok.Line, tok.Column)
		}
		if tok.Pos != exp.pos || tok.End != exp.end {
			t.Errorf("token %d (%s): expected span [%d,%d), got [%d,%d)", i, tok.Type, exp.pos, exp.end, tok.Pos, tok.End)
		}
	}
}

func TestNextTokenStopsOnError(t *testing.T) {
	l := New("a # b")

	tok, err := l.NextToken()
	if err != nil || tok.Type != TokenIdent {
		t.Fatalf("expected identifier, got %v (err %v)", tok, err)
	}

	tok, err = l.NextToken()
	if err == nil {
		t.Fatal("expected error for '#'")
	}
	if tok.Type != TokenIllegal || tok.Literal != "#" {
		t.Errorf("expected ILLEGAL '#', got %s %q", tok.Type, tok.Literal)
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok      Token
		expected string
	}{
		{Token{Type: TokenEOF}, "end of input"},
		{Token{Type: TokenSelect, Literal: "select"}, "SELECT"},
		{Token{Type: TokenIdent, Literal: "Users"}, "Users"},
		{Token{Type: TokenString, Literal: "hi"}, `"hi"`},
		{Token{Type: TokenNumber, Literal: "42", Number: 42}, "42"},
		{Token{Type: TokenGreaterOrEqual, Literal: ">="}, ">="},
	}

	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}

func assertTypes(t *testing.T, tokens []Token, expected []TokenType) {
	t.Helper()

	if len(tokens) != len(expected) {
		for i, tok := range tokens {
			t.Logf("  %d: %s %q", i, tok.Type, tok.Literal)
		}
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("token %d: expected type %s, got %s (literal: %q)",
				i, exp, tokens[i].Type, tokens[i].Literal)
		}
	}
}
