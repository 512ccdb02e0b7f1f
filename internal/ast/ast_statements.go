package ast

type ExpressionStatement struct {
	base
	Expression Expression
}

func (es *ExpressionStatement) Kind() NodeKind         { return KindExpressionStatement }
func (es *ExpressionStatement) Accept(v Visitor) error { return v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()         {}

// VariableDeclaration is var/let/const with one or more declarators.
type VariableDeclaration struct {
	base
	DeclKind     string // "var", "let" or "const"
	Declarations []*VariableDeclarator
}

func (vd *VariableDeclaration) Kind() NodeKind         { return KindVariableDeclaration }
func (vd *VariableDeclaration) Accept(v Visitor) error { return v.VisitVariableDeclaration(vd) }
func (vd *VariableDeclaration) statementNode()         {}

type VariableDeclarator struct {
	base
	Name *Identifier
	Init Expression // may be nil
}

func (vd *VariableDeclarator) Kind() NodeKind         { return KindVariableDeclarator }
func (vd *VariableDeclarator) Accept(v Visitor) error { return v.VisitVariableDeclarator(vd) }

type ReturnStatement struct {
	base
	Argument Expression // may be nil
}

func (rs *ReturnStatement) Kind() NodeKind         { return KindReturnStatement }
func (rs *ReturnStatement) Accept(v Visitor) error { return v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()         {}
