// Package parser implements a SQL parser that builds an Abstract Syntax Tree (AST).
//
// EDUCATIONAL NOTES:
// ------------------
// An Abstract Syntax Tree (AST) is a tree representation of the structure
// of source code. Each node in the tree represents a construct in the code.
//
// For example, the SQL:
//   SELECT name, age FROM users WHERE age > 18;
//
// Becomes an AST like:
//   SelectStatement
//   ├── Columns: [name, age]
//   ├── From: users
//   └── Where: BinaryExpr(age > 18)
//
// Every node owns its children outright: no node is shared between two
// parents, so walking the tree always terminates. Nodes are built once by
// a single Parse call and never modified afterwards.

package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is the base interface for all AST nodes.
//
// String renders the node as canonical SQL text that parses back into an
// equal tree.
type Node interface {
	node()
	String() string
}

// Statement represents a SQL statement.
type Statement interface {
	Node
	statement()
}

// Expression represents an expression.
type Expression interface {
	Node
	expression()
}

// ============================================================================
// Statements
// ============================================================================

// SelectStatement represents a SELECT query.
//
// Example: SELECT name, age FROM users WHERE age > 18 ORDER BY name DESC;
//
// SELECT * is represented by a single StarExpression column. Columns is
// never empty. OrderBy keys carry their ASC/DESC modifier as a
// UnaryExpression with UnaryOpAsc or UnaryOpDesc.
type SelectStatement struct {
	Columns []Expression
	From    string
	Where   Expression // nil when there is no WHERE clause
	OrderBy []Expression
}

func (s *SelectStatement) node()      {}
func (s *SelectStatement) statement() {}
func (s *SelectStatement) String() string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	writeList(&sb, s.Columns)
	sb.WriteString(" FROM ")
	sb.WriteString(s.From)
	if s.Where != nil {
		sb.WriteString(" WHERE ")
		sb.WriteString(s.Where.String())
	}
	if len(s.OrderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		writeList(&sb, s.OrderBy)
	}
	sb.WriteString(";")
	return sb.String()
}

// SelectsAll reports whether the statement is the SELECT * form.
func (s *SelectStatement) SelectsAll() bool {
	if len(s.Columns) != 1 {
		return false
	}
	_, ok := s.Columns[0].(*StarExpression)
	return ok
}

// CreateTableStatement represents a CREATE TABLE query.
//
// Example: CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(50) NOT NULL);
type CreateTableStatement struct {
	Table   string
	Columns []ColumnDefinition
}

func (s *CreateTableStatement) node()      {}
func (s *CreateTableStatement) statement() {}
func (s *CreateTableStatement) String() string {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(s.Table)
	sb.WriteString(" (")
	for i, col := range s.Columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(col.String())
	}
	sb.WriteString(");")
	return sb.String()
}

// ColumnDefinition represents a column definition in CREATE TABLE.
// Constraints keep the order in which they were written.
type ColumnDefinition struct {
	Name        string
	Type        ColumnType
	Constraints []Constraint
}

func (c ColumnDefinition) String() string {
	s := fmt.Sprintf("%s %s", c.Name, c.Type)
	for _, con := range c.Constraints {
		s += " " + con.String()
	}
	return s
}

// DataType represents a SQL data type.
type DataType int

const (
	TypeInt DataType = iota + 1
	TypeBool
	TypeVarchar
)

func (d DataType) String() string {
	switch d {
	case TypeInt:
		return "INT"
	case TypeBool:
		return "BOOL"
	case TypeVarchar:
		return "VARCHAR"
	default:
		return "UNKNOWN"
	}
}

// MaxVarcharLength is the largest length accepted by VARCHAR(n).
const MaxVarcharLength = 65535

// ColumnType is the declared type of a column. Values are comparable with ==.
//
// The fields are unexported so that a VARCHAR type can only come from
// VarcharType, which enforces 1 <= length <= MaxVarcharLength.
type ColumnType struct {
	kind   DataType
	length int
}

// IntType returns the INT column type.
func IntType() ColumnType { return ColumnType{kind: TypeInt} }

// BoolType returns the BOOL column type.
func BoolType() ColumnType { return ColumnType{kind: TypeBool} }

// VarcharType returns VARCHAR(n). It fails with ErrInvalidVarcharLength when
// n is outside [1, MaxVarcharLength].
func VarcharType(n int) (ColumnType, error) {
	if n < 1 || n > MaxVarcharLength {
		return ColumnType{}, &Error{Kind: ErrInvalidVarcharLength}
	}
	return ColumnType{kind: TypeVarchar, length: n}, nil
}

// Kind returns the data type.
func (t ColumnType) Kind() DataType { return t.kind }

// Length returns the VARCHAR length, or 0 for other types.
func (t ColumnType) Length() int { return t.length }

func (t ColumnType) String() string {
	if t.kind == TypeVarchar {
		return fmt.Sprintf("VARCHAR(%d)", t.length)
	}
	return t.kind.String()
}

// Constraint represents a column constraint.
type Constraint interface {
	Node
	constraint()
}

// PrimaryKeyConstraint is PRIMARY KEY.
type PrimaryKeyConstraint struct{}

func (c *PrimaryKeyConstraint) node()          {}
func (c *PrimaryKeyConstraint) constraint()    {}
func (c *PrimaryKeyConstraint) String() string { return "PRIMARY KEY" }

// NotNullConstraint is NOT NULL.
type NotNullConstraint struct{}

func (c *NotNullConstraint) node()          {}
func (c *NotNullConstraint) constraint()    {}
func (c *NotNullConstraint) String() string { return "NOT NULL" }

// CheckConstraint is CHECK (expr).
type CheckConstraint struct {
	Expr Expression
}

func (c *CheckConstraint) node()       {}
func (c *CheckConstraint) constraint() {}
func (c *CheckConstraint) String() string {
	return fmt.Sprintf("CHECK (%s)", c.Expr)
}

// ============================================================================
// Expressions
// ============================================================================

// Identifier represents a column name.
type Identifier struct {
	Name string
}

func (e *Identifier) node()       {}
func (e *Identifier) expression() {}
func (e *Identifier) String() string {
	return e.Name
}

// IntegerLiteral represents an unsigned integer value.
type IntegerLiteral struct {
	Value uint64
}

func (e *IntegerLiteral) node()       {}
func (e *IntegerLiteral) expression() {}
func (e *IntegerLiteral) String() string {
	return strconv.FormatUint(e.Value, 10)
}

// StringLiteral represents a string value.
type StringLiteral struct {
	Value string
}

func (e *StringLiteral) node()       {}
func (e *StringLiteral) expression() {}
func (e *StringLiteral) String() string {
	return quoteString(e.Value)
}

// BooleanLiteral represents a boolean value.
type BooleanLiteral struct {
	Value bool
}

func (e *BooleanLiteral) node()       {}
func (e *BooleanLiteral) expression() {}
func (e *BooleanLiteral) String() string {
	if e.Value {
		return "TRUE"
	}
	return "FALSE"
}

// StarExpression represents * (all columns). It only appears as the sole
// column of a SELECT * statement.
type StarExpression struct{}

func (e *StarExpression) node()       {}
func (e *StarExpression) expression() {}
func (e *StarExpression) String() string {
	return "*"
}

// BinaryExpression represents a binary operation (e.g., a = b, a + b).
//
// EDUCATIONAL NOTE:
// -----------------
// Binary expressions have two operands and an operator.
// They can be:
// - Comparison: =, !=, <, >, <=, >=
// - Logical: AND, OR
// - Arithmetic: +, -, *, /
//
// String always parenthesizes, so the rendered text carries the tree
// shape explicitly and never depends on precedence.
type BinaryExpression struct {
	Left     Expression
	Operator BinaryOp
	Right    Expression
}

func (e *BinaryExpression) node()       {}
func (e *BinaryExpression) expression() {}
func (e *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Operator, e.Right)
}

// BinaryOp represents a binary operator.
type BinaryOp int

const (
	OpUnknown BinaryOp = iota
	// Comparison operators
	OpEquals
	OpNotEquals
	OpLessThan
	OpGreaterThan
	OpLessOrEqual
	OpGreaterOrEqual
	// Logical operators
	OpAnd
	OpOr
	// Arithmetic operators
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

func (op BinaryOp) String() string {
	switch op {
	case OpEquals:
		return "="
	case OpNotEquals:
		return "!="
	case OpLessThan:
		return "<"
	case OpGreaterThan:
		return ">"
	case OpLessOrEqual:
		return "<="
	case OpGreaterOrEqual:
		return ">="
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return "?"
	}
}

// UnaryExpression represents a unary operation (e.g., NOT x, -5) or an
// ORDER BY key with its sort direction (name DESC).
type UnaryExpression struct {
	Operator UnaryOp
	Operand  Expression
}

func (e *UnaryExpression) node()       {}
func (e *UnaryExpression) expression() {}
func (e *UnaryExpression) String() string {
	switch e.Operator {
	case UnaryOpAsc, UnaryOpDesc:
		return fmt.Sprintf("%s %s", e.Operand, e.Operator)
	default:
		return fmt.Sprintf("(%s %s)", e.Operator, e.Operand)
	}
}

// UnaryOp represents a unary operator.
type UnaryOp int

const (
	UnaryOpNot UnaryOp = iota
	UnaryOpNegate
	UnaryOpPlus
	// Sort direction of an ORDER BY key.
	UnaryOpAsc
	UnaryOpDesc
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryOpNot:
		return "NOT"
	case UnaryOpNegate:
		return "-"
	case UnaryOpPlus:
		return "+"
	case UnaryOpAsc:
		return "ASC"
	case UnaryOpDesc:
		return "DESC"
	default:
		return "?"
	}
}

// IsOrdering reports whether op is a sort direction rather than an
// arithmetic or logical operator.
func (op UnaryOp) IsOrdering() bool {
	return op == UnaryOpAsc || op == UnaryOpDesc
}

func writeList(sb *strings.Builder, exprs []Expression) {
	for i, expr := range exprs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(expr.String())
	}
}

// quoteString renders s as a single-quoted literal the lexer reads back
// unchanged.
func quoteString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('\'')
	for _, r := range s {
		if r == '\'' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('\'')
	return sb.String()
}

// StatementKind returns a short, stable name for the statement's form:
// "select" or "create_table".
func StatementKind(stmt Statement) string {
	switch stmt.(type) {
	case *SelectStatement:
		return "select"
	case *CreateTableStatement:
		return "create_table"
	default:
		return "unknown"
	}
}
