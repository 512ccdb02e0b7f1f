package ast

// Visitor has one method per node kind. Accept dispatches to it.
type Visitor interface {
	VisitProgram(*Program) error
	VisitExpressionStatement(*ExpressionStatement) error
	VisitVariableDeclaration(*VariableDeclaration) error
	VisitVariableDeclarator(*VariableDeclarator) error
	VisitReturnStatement(*ReturnStatement) error
	VisitIdentifier(*Identifier) error
	VisitLiteral(*Literal) error
	VisitArrayExpression(*ArrayExpression) error
	VisitUnaryExpression(*UnaryExpression) error
	VisitUpdateExpression(*UpdateExpression) error
	VisitBinaryExpression(*BinaryExpression) error
	VisitLogicalExpression(*LogicalExpression) error
	VisitAssignmentExpression(*AssignmentExpression) error
	VisitConditionalExpression(*ConditionalExpression) error
	VisitMemberExpression(*MemberExpression) error
	VisitCallExpression(*CallExpression) error
	VisitNewExpression(*NewExpression) error
}

// Walk traverses the tree rooted at n depth-first. enter runs before a
// node's children and leave runs strictly after all of them, exactly once
// per node. Either hook may be nil. The first error stops the walk.
func Walk(n Node, enter, leave func(Node) error) error {
	if n == nil {
		return nil
	}
	if enter != nil {
		if err := enter(n); err != nil {
			return err
		}
	}
	for _, child := range Children(n) {
		if err := Walk(child, enter, leave); err != nil {
			return err
		}
	}
	if leave != nil {
		return leave(n)
	}
	return nil
}

// PostOrder visits every node with v after its children.
func PostOrder(n Node, v Visitor) error {
	return Walk(n, nil, func(n Node) error { return n.Accept(v) })
}

// Children returns the direct, non-nil children of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	switch n := n.(type) {
	case *Program:
		for _, s := range n.Body {
			add(s)
		}
	case *ExpressionStatement:
		add(n.Expression)
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			add(d)
		}
	case *VariableDeclarator:
		if n.Name != nil {
			add(n.Name)
		}
		add(n.Init)
	case *ReturnStatement:
		add(n.Argument)
	case *ArrayExpression:
		for _, e := range n.Elements {
			add(e)
		}
	case *UnaryExpression:
		add(n.Argument)
	case *UpdateExpression:
		add(n.Argument)
	case *BinaryExpression:
		add(n.Left)
		add(n.Right)
	case *LogicalExpression:
		add(n.Left)
		add(n.Right)
	case *AssignmentExpression:
		add(n.Left)
		add(n.Right)
	case *ConditionalExpression:
		add(n.Test)
		add(n.Consequent)
		add(n.Alternate)
	case *MemberExpression:
		add(n.Object)
		add(n.Property)
	case *CallExpression:
		add(n.Callee)
		for _, a := range n.Arguments {
			add(a)
		}
	case *NewExpression:
		add(n.Callee)
		for _, a := range n.Arguments {
			add(a)
		}
	}
	return out
}
