package repl

import (
	"fmt"
	"strings"

	"github.com/cabewaldrop/sqlparse/internal/sql/parser"
)

// treeNode is one labelled line of a tree dump.
type treeNode struct {
	label    string
	children []treeNode
}

// FormatTree renders an AST node as an indented tree:
//
//	SelectStatement
//	├── Columns
//	│   └── Identifier name
//	├── From: users
//	└── Where
//	    └── BinaryExpression >
//	        ├── Identifier age
//	        └── IntegerLiteral 18
func FormatTree(n parser.Node) string {
	var sb strings.Builder
	root := buildTree(n)
	sb.WriteString(root.label)
	sb.WriteByte('\n')
	writeChildren(&sb, root.children, "")
	return sb.String()
}

func writeChildren(sb *strings.Builder, children []treeNode, prefix string) {
	for i, child := range children {
		branch, indent := "├── ", "│   "
		if i == len(children)-1 {
			branch, indent = "└── ", "    "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(child.label)
		sb.WriteByte('\n')
		writeChildren(sb, child.children, prefix+indent)
	}
}

func buildTree(n parser.Node) treeNode {
	switch n := n.(type) {
	case *parser.SelectStatement:
		node := treeNode{label: "SelectStatement"}
		node.children = append(node.children, listNode("Columns", n.Columns))
		node.children = append(node.children, treeNode{label: "From: " + n.From})
		if n.Where != nil {
			node.children = append(node.children, treeNode{
				label:    "Where",
				children: []treeNode{buildTree(n.Where)},
			})
		}
		if len(n.OrderBy) > 0 {
			node.children = append(node.children, listNode("OrderBy", n.OrderBy))
		}
		return node

	case *parser.CreateTableStatement:
		node := treeNode{label: "CreateTableStatement"}
		node.children = append(node.children, treeNode{label: "Table: " + n.Table})
		columns := treeNode{label: "Columns"}
		for _, col := range n.Columns {
			columns.children = append(columns.children, columnNode(col))
		}
		node.children = append(node.children, columns)
		return node

	case *parser.BinaryExpression:
		return treeNode{
			label:    "BinaryExpression " + n.Operator.String(),
			children: []treeNode{buildTree(n.Left), buildTree(n.Right)},
		}

	case *parser.UnaryExpression:
		return treeNode{
			label:    "UnaryExpression " + n.Operator.String(),
			children: []treeNode{buildTree(n.Operand)},
		}

	case *parser.Identifier:
		return treeNode{label: "Identifier " + n.Name}
	case *parser.IntegerLiteral:
		return treeNode{label: "IntegerLiteral " + n.String()}
	case *parser.StringLiteral:
		return treeNode{label: "StringLiteral " + n.String()}
	case *parser.BooleanLiteral:
		return treeNode{label: "BooleanLiteral " + n.String()}
	case *parser.StarExpression:
		return treeNode{label: "StarExpression"}

	case *parser.CheckConstraint:
		return treeNode{
			label:    "Check",
			children: []treeNode{buildTree(n.Expr)},
		}
	case *parser.PrimaryKeyConstraint:
		return treeNode{label: "PrimaryKey"}
	case *parser.NotNullConstraint:
		return treeNode{label: "NotNull"}

	default:
		return treeNode{label: fmt.Sprintf("%T", n)}
	}
}

func listNode(label string, exprs []parser.Expression) treeNode {
	node := treeNode{label: label}
	for _, expr := range exprs {
		node.children = append(node.children, buildTree(expr))
	}
	return node
}

func columnNode(col parser.ColumnDefinition) treeNode {
	node := treeNode{label: fmt.Sprintf("Column %s %s", col.Name, col.Type)}
	for _, con := range col.Constraints {
		node.children = append(node.children, buildTree(con))
	}
	return node
}
