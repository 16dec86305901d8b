package parser

import (
	"github.com/cabewaldrop/sqlparse/internal/sql/lexer"
)

// ============================================================================
// Expression Parsing with Operator Precedence
// ============================================================================

// EDUCATIONAL NOTE:
// -----------------
// Operator precedence determines which operators bind more tightly.
// For example, in "1 + 2 * 3", multiplication has higher precedence,
// so it's parsed as "1 + (2 * 3)" = 7, not "(1 + 2) * 3" = 9.
//
// We use precedence climbing (Pratt parsing):
// - Each binary operator has a precedence number
// - Higher numbers bind more tightly
// - parseExpression(min) only consumes operators whose precedence is
//   strictly greater than min, and parses each right-hand side at the
//   operator's own precedence. Operators of equal precedence therefore
//   associate to the left: 1 - 2 - 3 is (1 - 2) - 3.
//
// Any token that is not a binary operator ends the expression without an
// error. That is how FROM, WHERE, ORDER, commas, ')' and ';' hand control
// back to the statement parser.

// Precedence levels
const (
	PrecedenceLowest     = 0
	PrecedenceOr         = 10 // OR
	PrecedenceAnd        = 20 // AND
	PrecedenceEquality   = 30 // =, !=
	PrecedenceComparison = 40 // <, >, <=, >=
	PrecedenceAddSub     = 50 // +, -
	PrecedenceMulDiv     = 60 // *, /
	PrecedenceUnary      = 80 // -x, +x, NOT x
)

// binaryOperator describes how a token behaves in infix position.
type binaryOperator struct {
	op         BinaryOp
	precedence int
}

// binaryOperators maps token types to their infix operator.
var binaryOperators = map[lexer.TokenType]binaryOperator{
	lexer.TokenOr:             {OpOr, PrecedenceOr},
	lexer.TokenAnd:            {OpAnd, PrecedenceAnd},
	lexer.TokenEquals:         {OpEquals, PrecedenceEquality},
	lexer.TokenNotEquals:      {OpNotEquals, PrecedenceEquality},
	lexer.TokenLessThan:       {OpLessThan, PrecedenceComparison},
	lexer.TokenGreaterThan:    {OpGreaterThan, PrecedenceComparison},
	lexer.TokenLessOrEqual:    {OpLessOrEqual, PrecedenceComparison},
	lexer.TokenGreaterOrEqual: {OpGreaterOrEqual, PrecedenceComparison},
	lexer.TokenPlus:           {OpAdd, PrecedenceAddSub},
	lexer.TokenMinus:          {OpSubtract, PrecedenceAddSub},
	lexer.TokenAsterisk:       {OpMultiply, PrecedenceMulDiv},
	lexer.TokenSlash:          {OpDivide, PrecedenceMulDiv},
}

// prefixOperators maps token types to their unary prefix operator.
var prefixOperators = map[lexer.TokenType]UnaryOp{
	lexer.TokenMinus: UnaryOpNegate,
	lexer.TokenPlus:  UnaryOpPlus,
	lexer.TokenNot:   UnaryOpNot,
}

// curPrecedence returns the infix precedence of the current token, or
// PrecedenceLowest when it is not a binary operator.
func (p *Parser) curPrecedence() int {
	if op, ok := binaryOperators[p.curToken().Type]; ok {
		return op.precedence
	}
	return PrecedenceLowest
}

// parseFullExpression parses an expression at the lowest precedence and
// then an optional ASC or DESC.
//
// The sort direction is not an operator: it is checked once, after the
// expression is complete, and wraps the whole thing. Statement rules call
// this for every expression position (select columns, WHERE, ORDER BY keys,
// CHECK bodies).
func (p *Parser) parseFullExpression() (Expression, error) {
	expr, err := p.parseExpression(PrecedenceLowest)
	if err != nil {
		return nil, err
	}

	switch p.curToken().Type {
	case lexer.TokenAsc:
		p.nextToken()
		return &UnaryExpression{Operator: UnaryOpAsc, Operand: expr}, nil
	case lexer.TokenDesc:
		p.nextToken()
		return &UnaryExpression{Operator: UnaryOpDesc, Operand: expr}, nil
	default:
		return expr, nil
	}
}

// parseExpression parses an expression using precedence climbing.
func (p *Parser) parseExpression(precedence int) (Expression, error) {
	// Parse prefix expression (literal, identifier, unary op, etc.)
	left, err := p.parsePrefixExpression()
	if err != nil {
		return nil, err
	}

	// Parse infix expressions while we see operators with higher precedence
	for precedence < p.curPrecedence() {
		left, err = p.parseInfixExpression(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

// parsePrefixExpression parses prefix expressions (literals, identifiers,
// unary ops, parenthesized groups).
func (p *Parser) parsePrefixExpression() (Expression, error) {
	tok := p.curToken()

	switch tok.Type {
	case lexer.TokenIdent:
		p.nextToken()
		return &Identifier{Name: tok.Literal}, nil

	case lexer.TokenNumber:
		p.nextToken()
		return &IntegerLiteral{Value: tok.Number}, nil

	case lexer.TokenString:
		p.nextToken()
		return &StringLiteral{Value: tok.Literal}, nil

	case lexer.TokenTrue:
		p.nextToken()
		return &BooleanLiteral{Value: true}, nil

	case lexer.TokenFalse:
		p.nextToken()
		return &BooleanLiteral{Value: false}, nil

	case lexer.TokenLeftParen:
		return p.parseGroupedExpression()
	}

	if op, ok := prefixOperators[tok.Type]; ok {
		return p.parseUnaryExpression(op)
	}

	return nil, p.unexpected()
}

// parseUnaryExpression parses unary expressions (NOT x, -x, +x).
//
// The operand is parsed at PrecedenceUnary, above every binary operator,
// so -5 + 6 is (-5) + 6.
func (p *Parser) parseUnaryExpression(op UnaryOp) (Expression, error) {
	p.nextToken()
	operand, err := p.parseExpression(PrecedenceUnary)
	if err != nil {
		return nil, err
	}
	return &UnaryExpression{
		Operator: op,
		Operand:  operand,
	}, nil
}

// parseGroupedExpression parses expressions in parentheses.
func (p *Parser) parseGroupedExpression() (Expression, error) {
	p.nextToken() // consume (
	expr, err := p.parseExpression(PrecedenceLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRightParen); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseInfixExpression parses binary expressions (a + b, a = b, etc.).
// The current token must be a binary operator.
func (p *Parser) parseInfixExpression(left Expression) (Expression, error) {
	op := binaryOperators[p.curToken().Type]
	p.nextToken()

	right, err := p.parseExpression(op.precedence)
	if err != nil {
		return nil, err
	}

	return &BinaryExpression{
		Left:     left,
		Operator: op.op,
		Right:    right,
	}, nil
}
