package ast

import "strings"

// Describe renders a short, source-like name for n, used in diagnostics
// such as "a.b is undefined". Deep or complex nodes collapse to "...".
func Describe(n Node) string {
	var sb strings.Builder
	describe(&sb, n, 0)
	return sb.String()
}

func describe(sb *strings.Builder, n Node, depth int) {
	if depth > 4 {
		sb.WriteString("...")
		return
	}
	switch n := n.(type) {
	case nil:
		sb.WriteString("undefined")
	case *Identifier:
		sb.WriteString(n.Name)
	case *Literal:
		sb.WriteString(n.Raw)
	case *MemberExpression:
		describe(sb, n.Object, depth+1)
		if n.Computed {
			sb.WriteByte('[')
			describe(sb, n.Property, depth+1)
			sb.WriteByte(']')
		} else {
			sb.WriteByte('.')
			describe(sb, n.Property, depth+1)
		}
	case *CallExpression:
		describe(sb, n.Callee, depth+1)
		sb.WriteString("(...)")
	case *NewExpression:
		sb.WriteString("new ")
		describe(sb, n.Callee, depth+1)
		sb.WriteString("(...)")
	case *UnaryExpression:
		sb.WriteString(n.Operator)
		if len(n.Operator) > 1 {
			sb.WriteByte(' ')
		}
		describe(sb, n.Argument, depth+1)
	case *BinaryExpression:
		describeInfix(sb, n.Left, n.Operator, n.Right, depth)
	case *LogicalExpression:
		describeInfix(sb, n.Left, n.Operator, n.Right, depth)
	case *AssignmentExpression:
		describeInfix(sb, n.Left, n.Operator, n.Right, depth)
	default:
		sb.WriteString("...")
	}
}

func describeInfix(sb *strings.Builder, l Node, op string, r Node, depth int) {
	sb.WriteByte('(')
	describe(sb, l, depth+1)
	sb.WriteString(" " + op + " ")
	describe(sb, r, depth+1)
	sb.WriteByte(')')
}
