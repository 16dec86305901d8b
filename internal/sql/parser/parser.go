// Package parser - SQL Parser implementation
//
// EDUCATIONAL NOTES:
// ------------------
// A parser reads tokens from the lexer and builds an Abstract Syntax Tree (AST).
// This is the second phase of compilation/interpretation, after lexing.
//
// We use a "recursive descent" parser, which is one of the simplest and most
// intuitive parsing techniques. Each grammar rule becomes a function:
// - parseStatement() dispatches on SELECT or CREATE
// - parseExpression() handles expressions with proper operator precedence
// - parseSelectStatement() handles the SELECT grammar specifically
//
// The whole statement is tokenized up front. The parser then walks the
// token slice with a cursor index; peeking never consumes, and no rule
// ever moves the cursor backwards. The first error aborts the parse.

package parser

import (
	"math"

	"github.com/cabewaldrop/sqlparse/internal/sql/lexer"
)

// Parser parses SQL tokens into an AST.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New creates a new Parser over a token slice produced by lexer.Tokenize.
// A slice that does not end in TokenEOF is terminated with one.
func New(tokens []lexer.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.TokenEOF {
		eof := lexer.Token{Type: lexer.TokenEOF}
		if n := len(tokens); n > 0 {
			last := tokens[n-1]
			eof.Line, eof.Column, eof.Pos, eof.End = last.Line, last.Column+1, last.End, last.End
		}
		tokens = append(tokens[:len(tokens):len(tokens)], eof)
	}
	return &Parser{tokens: tokens}
}

// Parse tokenizes and parses a single statement. Text after the statement's
// terminating semicolon is not inspected.
//
// Every error is a *Error; lexical errors are reported with Kind ErrLex.
func Parse(input string) (Statement, error) {
	p, err := newFromInput(input)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// ParseExpression tokenizes and parses one complete expression, optionally
// followed by ASC or DESC, and requires the input to end there.
func ParseExpression(input string) (Expression, error) {
	p, err := newFromInput(input)
	if err != nil {
		return nil, err
	}
	expr, err := p.parseFullExpression()
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(lexer.TokenEOF) {
		return nil, p.unexpected()
	}
	return expr, nil
}

func newFromInput(input string) (*Parser, error) {
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		lexErr, _ := err.(*lexer.Error)
		return nil, &Error{Kind: ErrLex, Lex: lexErr}
	}
	return New(tokens), nil
}

// Parse parses the statement at the cursor and returns the AST.
func (p *Parser) Parse() (Statement, error) {
	return p.parseStatement()
}

// curToken returns the token at the cursor. The cursor never passes EOF.
func (p *Parser) curToken() lexer.Token {
	return p.tokens[p.pos]
}

// nextToken advances the cursor, stopping at EOF.
func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// curTokenIs checks if the current token is of the given type.
func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken().Type == t
}

// expect consumes the current token if it is of the given type and fails
// otherwise. It is the only way a rule demands a specific token.
func (p *Parser) expect(t lexer.TokenType) (lexer.Token, error) {
	tok := p.curToken()
	if tok.Type != t {
		return tok, p.unexpected()
	}
	p.nextToken()
	return tok, nil
}

// unexpected reports the current token as wrong for its position.
func (p *Parser) unexpected() error {
	tok := p.curToken()
	if tok.Type == lexer.TokenEOF {
		return &Error{Kind: ErrUnexpectedEnd, Token: tok}
	}
	return &Error{Kind: ErrUnexpectedToken, Token: tok}
}

// parseStatement parses a SQL statement.
//
// EDUCATIONAL NOTE:
// -----------------
// This is the entry point for parsing. We look at the first token
// to determine what kind of statement we're parsing.
func (p *Parser) parseStatement() (Statement, error) {
	switch p.curToken().Type {
	case lexer.TokenSelect:
		p.nextToken()
		return p.parseSelectStatement()
	case lexer.TokenCreate:
		p.nextToken()
		return p.parseCreateTableStatement()
	default:
		return nil, p.unexpected()
	}
}

// parseSelectStatement parses:
//
//	SELECT * | expr [, expr ...] FROM table [WHERE expr] [ORDER BY expr [, expr ...]] ;
func (p *Parser) parseSelectStatement() (*SelectStatement, error) {
	stmt := &SelectStatement{}

	if p.curTokenIs(lexer.TokenAsterisk) {
		p.nextToken()
		stmt.Columns = []Expression{&StarExpression{}}
	} else {
		// At least one column is required.
		if p.curTokenIs(lexer.TokenFrom) {
			return nil, p.unexpected()
		}
		columns, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		stmt.Columns = columns
	}

	// Expect FROM
	if _, err := p.expect(lexer.TokenFrom); err != nil {
		return nil, err
	}

	// Parse table name
	table, err := p.expect(lexer.TokenIdent)
	if err != nil {
		return nil, err
	}
	stmt.From = table.Literal

	// Optional WHERE clause
	if p.curTokenIs(lexer.TokenWhere) {
		p.nextToken()
		where, err := p.parseFullExpression()
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}

	// Optional ORDER BY clause
	if p.curTokenIs(lexer.TokenOrder) {
		p.nextToken()
		if _, err := p.expect(lexer.TokenBy); err != nil {
			return nil, err
		}
		orderBy, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = orderBy
	}

	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}

	return stmt, nil
}

// parseExpressionList parses a comma-separated list of expressions.
// A trailing comma is an error: after a comma another expression must follow.
func (p *Parser) parseExpressionList() ([]Expression, error) {
	var expressions []Expression

	for {
		expr, err := p.parseFullExpression()
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, expr)

		if !p.curTokenIs(lexer.TokenComma) {
			break
		}
		p.nextToken() // consume comma
	}

	return expressions, nil
}

// parseCreateTableStatement parses: CREATE TABLE name (column_definitions) ;
func (p *Parser) parseCreateTableStatement() (*CreateTableStatement, error) {
	stmt := &CreateTableStatement{}

	// Expect TABLE
	if _, err := p.expect(lexer.TokenTable); err != nil {
		return nil, err
	}

	// Parse table name
	table, err := p.expect(lexer.TokenIdent)
	if err != nil {
		return nil, err
	}
	stmt.Table = table.Literal

	// Expect (
	if _, err := p.expect(lexer.TokenLeftParen); err != nil {
		return nil, err
	}

	// Parse column definitions
	for {
		col, err := p.parseColumnDefinition()
		if err != nil {
			return nil, err
		}
		stmt.Columns = append(stmt.Columns, col)

		if !p.curTokenIs(lexer.TokenComma) {
			break
		}
		p.nextToken() // consume comma
	}

	// Expect ) ;
	if _, err := p.expect(lexer.TokenRightParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}

	return stmt, nil
}

// parseColumnDefinition parses: name type [constraint ...]
func (p *Parser) parseColumnDefinition() (ColumnDefinition, error) {
	name, err := p.expect(lexer.TokenIdent)
	if err != nil {
		return ColumnDefinition{}, err
	}

	col := ColumnDefinition{Name: name.Literal}

	col.Type, err = p.parseColumnType()
	if err != nil {
		return ColumnDefinition{}, err
	}

	col.Constraints, err = p.parseConstraints()
	if err != nil {
		return ColumnDefinition{}, err
	}

	return col, nil
}

// parseColumnType parses INT, BOOL or VARCHAR(n).
func (p *Parser) parseColumnType() (ColumnType, error) {
	tok := p.curToken()
	switch tok.Type {
	case lexer.TokenInt:
		p.nextToken()
		return IntType(), nil
	case lexer.TokenBool:
		p.nextToken()
		return BoolType(), nil
	case lexer.TokenVarchar:
		p.nextToken()
		return p.parseVarcharLength()
	case lexer.TokenEOF:
		return ColumnType{}, p.unexpected()
	default:
		return ColumnType{}, &Error{Kind: ErrInvalidColumnType, Token: tok}
	}
}

// parseVarcharLength parses the "(n)" that follows VARCHAR.
func (p *Parser) parseVarcharLength() (ColumnType, error) {
	if _, err := p.expect(lexer.TokenLeftParen); err != nil {
		return ColumnType{}, err
	}

	num, err := p.expect(lexer.TokenNumber)
	if err != nil {
		return ColumnType{}, err
	}
	if num.Number > math.MaxInt {
		return ColumnType{}, &Error{Kind: ErrNumberTooLarge, Token: num}
	}
	colType, err := VarcharType(int(num.Number))
	if err != nil {
		return ColumnType{}, &Error{Kind: ErrInvalidVarcharLength, Token: num}
	}

	if _, err := p.expect(lexer.TokenRightParen); err != nil {
		return ColumnType{}, err
	}
	return colType, nil
}

// parseConstraints consumes constraints until the first token that does
// not start one.
func (p *Parser) parseConstraints() ([]Constraint, error) {
	var constraints []Constraint

	for {
		switch p.curToken().Type {
		case lexer.TokenPrimary:
			p.nextToken()
			if _, err := p.expect(lexer.TokenKey); err != nil {
				return nil, err
			}
			constraints = append(constraints, &PrimaryKeyConstraint{})

		case lexer.TokenNot:
			p.nextToken()
			if _, err := p.expect(lexer.TokenNull); err != nil {
				return nil, err
			}
			constraints = append(constraints, &NotNullConstraint{})

		case lexer.TokenCheck:
			p.nextToken()
			if _, err := p.expect(lexer.TokenLeftParen); err != nil {
				return nil, err
			}
			expr, err := p.parseFullExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokenRightParen); err != nil {
				return nil, err
			}
			constraints = append(constraints, &CheckConstraint{Expr: expr})

		default:
			return constraints, nil
		}
	}
}
