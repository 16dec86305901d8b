package web

import (
	"fmt"

	"github.com/cabewaldrop/sqlparse/internal/sql/parser"
)

// EncodeStatement converts a statement into plain maps and slices that
// encoding/json renders as a self-describing tree. Every object carries a
// "type" field naming the node.
//
//	SELECT a FROM t WHERE a > 1;
//
// becomes
//
//	{"type": "select", "columns": [{"type": "identifier", "name": "a"}],
//	 "from": "t", "where": {"type": "binary", "operator": ">", ...},
//	 "order_by": []}
func EncodeStatement(stmt parser.Statement) map[string]any {
	switch s := stmt.(type) {
	case *parser.SelectStatement:
		var where any
		if s.Where != nil {
			where = EncodeExpression(s.Where)
		}
		return map[string]any{
			"type":     parser.StatementKind(s),
			"columns":  encodeExpressions(s.Columns),
			"from":     s.From,
			"where":    where,
			"order_by": encodeExpressions(s.OrderBy),
		}

	case *parser.CreateTableStatement:
		columns := make([]any, 0, len(s.Columns))
		for _, col := range s.Columns {
			columns = append(columns, encodeColumn(col))
		}
		return map[string]any{
			"type":    parser.StatementKind(s),
			"table":   s.Table,
			"columns": columns,
		}

	default:
		return map[string]any{"type": fmt.Sprintf("%T", stmt)}
	}
}

// EncodeExpression converts one expression node, recursively.
func EncodeExpression(expr parser.Expression) map[string]any {
	switch e := expr.(type) {
	case *parser.Identifier:
		return map[string]any{"type": "identifier", "name": e.Name}
	case *parser.IntegerLiteral:
		return map[string]any{"type": "integer", "value": e.Value}
	case *parser.StringLiteral:
		return map[string]any{"type": "string", "value": e.Value}
	case *parser.BooleanLiteral:
		return map[string]any{"type": "boolean", "value": e.Value}
	case *parser.StarExpression:
		return map[string]any{"type": "star"}
	case *parser.BinaryExpression:
		return map[string]any{
			"type":     "binary",
			"operator": e.Operator.String(),
			"left":     EncodeExpression(e.Left),
			"right":    EncodeExpression(e.Right),
		}
	case *parser.UnaryExpression:
		typ := "unary"
		if e.Operator.IsOrdering() {
			typ = "ordering"
		}
		return map[string]any{
			"type":     typ,
			"operator": e.Operator.String(),
			"operand":  EncodeExpression(e.Operand),
		}
	default:
		return map[string]any{"type": fmt.Sprintf("%T", expr)}
	}
}

func encodeExpressions(exprs []parser.Expression) []any {
	out := make([]any, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, EncodeExpression(expr))
	}
	return out
}

func encodeColumn(col parser.ColumnDefinition) map[string]any {
	constraints := make([]any, 0, len(col.Constraints))
	for _, con := range col.Constraints {
		switch c := con.(type) {
		case *parser.PrimaryKeyConstraint:
			constraints = append(constraints, map[string]any{"type": "primary_key"})
		case *parser.NotNullConstraint:
			constraints = append(constraints, map[string]any{"type": "not_null"})
		case *parser.CheckConstraint:
			constraints = append(constraints, map[string]any{
				"type": "check",
				"expr": EncodeExpression(c.Expr),
			})
		}
	}

	typ := map[string]any{"name": col.Type.Kind().String()}
	if col.Type.Kind() == parser.TypeVarchar {
		typ["length"] = col.Type.Length()
	}

	return map[string]any{
		"name":        col.Name,
		"type":        typ,
		"constraints": constraints,
	}
}
