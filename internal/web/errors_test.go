package web

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/cabewaldrop/sqlparse/internal/sql/lexer"
	"github.com/cabewaldrop/sqlparse/internal/sql/parser"
)

func TestGetErrorHint(t *testing.T) {
	tests := []struct {
		sql      string
		contains string
	}{
		{"SELECT name;", "missing FROM"},
		{"SELECT FROM t;", "at least one column"},
		{"SELECT a FROM t ORDER name;", "SQL syntax"},
		{"CREATE TABLE t (a INT,);", "trailing comma"},
		{"UPDATE t;", "Only SELECT and CREATE TABLE"},
		{"SELECT a FROM t", "semicolon"},
		{"CREATE TABLE t (a TEXT);", "INT, BOOL and VARCHAR"},
		{"CREATE TABLE t (a VARCHAR(70000));", "between 1 and 65535"},
		{"CREATE TABLE t (a VARCHAR(18446744073709551615));", "too large"},
		{"SELECT a FROM t WHERE a ! b;", "!="},
		{"SELECT @ FROM t;", "Only letters"},
		{"SELECT 'x FROM t;", "Close the string"},
		{"SELECT 99999999999999999999 FROM t;", "64-bit"},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			_, err := parser.Parse(tt.sql)
			if err == nil {
				t.Fatalf("expected error for %q", tt.sql)
			}
			hint := GetErrorHint(err)
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint for %q to contain %q, got %q", tt.sql, tt.contains, hint)
			}
		})
	}
}

func TestGetErrorHintUnrelatedError(t *testing.T) {
	if hint := GetErrorHint(errors.New("random error")); hint != "" {
		t.Errorf("expected empty hint, got %q", hint)
	}
	if hint := GetErrorHint(nil); hint != "" {
		t.Errorf("expected empty hint for nil, got %q", hint)
	}
}

func TestGetErrorHintWrapped(t *testing.T) {
	_, err := parser.Parse("CREATE TABLE t (a TEXT);")
	wrapped := errors.Wrap(err, "parse request")

	if hint := GetErrorHint(wrapped); !strings.Contains(hint, "INT, BOOL") {
		t.Errorf("expected hint through wrapping, got %q", hint)
	}
}

func TestErrorDetailsFor(t *testing.T) {
	_, err := parser.Parse("SELECT a\nFROM 42;")
	details := ErrorDetailsFor(err)

	if details.Kind != "UnexpectedToken" || details.Line != 2 || details.Column != 6 {
		t.Errorf("unexpected details %+v", details)
	}
	if details.Hint == "" {
		t.Error("expected a hint")
	}

	_, err = lexer.Tokenize("a\n  'b")
	details = ErrorDetailsFor(err)
	if details.Kind != "UnterminatedString" || details.Line != 2 || details.Column != 3 {
		t.Errorf("unexpected lexer details %+v", details)
	}

	details = ErrorDetailsFor(errors.New("boom"))
	if details.Kind != "InvalidRequest" {
		t.Errorf("expected InvalidRequest, got %s", details.Kind)
	}
}
