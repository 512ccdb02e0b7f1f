package ast

// Identifier is a bare name reference, declaration target or property name.
type Identifier struct {
	base
	Name string
}

func (i *Identifier) Kind() NodeKind         { return KindIdentifier }
func (i *Identifier) Accept(v Visitor) error { return v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()        {}

// Literal keeps the raw source text next to the decoded value.
// Value is float64, string, bool or nil.
type Literal struct {
	base
	Raw   string
	Value any
}

func (l *Literal) Kind() NodeKind         { return KindLiteral }
func (l *Literal) Accept(v Visitor) error { return v.VisitLiteral(l) }
func (l *Literal) expressionNode()        {}

// ArrayExpression is [a, b, c]. A nil element is a hole.
type ArrayExpression struct {
	base
	Elements []Expression
}

func (ae *ArrayExpression) Kind() NodeKind         { return KindArrayExpression }
func (ae *ArrayExpression) Accept(v Visitor) error { return v.VisitArrayExpression(ae) }
func (ae *ArrayExpression) expressionNode()        {}

// UnaryExpression is !x, -x, +x, ~x, typeof x, void x or delete x.
type UnaryExpression struct {
	base
	Operator string
	Argument Expression
	Prefix   bool
}

func (ue *UnaryExpression) Kind() NodeKind         { return KindUnaryExpression }
func (ue *UnaryExpression) Accept(v Visitor) error { return v.VisitUnaryExpression(ue) }
func (ue *UnaryExpression) expressionNode()        {}

// UpdateExpression is ++x, --x, x++ or x--.
type UpdateExpression struct {
	base
	Operator string
	Argument Expression
	Prefix   bool
}

func (ue *UpdateExpression) Kind() NodeKind         { return KindUpdateExpression }
func (ue *UpdateExpression) Accept(v Visitor) error { return v.VisitUpdateExpression(ue) }
func (ue *UpdateExpression) expressionNode()        {}

type BinaryExpression struct {
	base
	Operator string
	Left     Expression
	Right    Expression
}

func (be *BinaryExpression) Kind() NodeKind         { return KindBinaryExpression }
func (be *BinaryExpression) Accept(v Visitor) error { return v.VisitBinaryExpression(be) }
func (be *BinaryExpression) expressionNode()        {}

// LogicalExpression is a || b or a && b.
type LogicalExpression struct {
	base
	Operator string
	Left     Expression
	Right    Expression
}

func (le *LogicalExpression) Kind() NodeKind         { return KindLogicalExpression }
func (le *LogicalExpression) Accept(v Visitor) error { return v.VisitLogicalExpression(le) }
func (le *LogicalExpression) expressionNode()        {}

// AssignmentExpression is a = b or a op= b.
type AssignmentExpression struct {
	base
	Operator string
	Left     Expression
	Right    Expression
}

func (ae *AssignmentExpression) Kind() NodeKind         { return KindAssignmentExpression }
func (ae *AssignmentExpression) Accept(v Visitor) error { return v.VisitAssignmentExpression(ae) }
func (ae *AssignmentExpression) expressionNode()        {}

// ConditionalExpression is test ? consequent : alternate.
type ConditionalExpression struct {
	base
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

func (ce *ConditionalExpression) Kind() NodeKind         { return KindConditionalExpression }
func (ce *ConditionalExpression) Accept(v Visitor) error { return v.VisitConditionalExpression(ce) }
func (ce *ConditionalExpression) expressionNode()        {}

// MemberExpression is object.property or object[property] when Computed.
type MemberExpression struct {
	base
	Object   Expression
	Property Expression
	Computed bool
}

func (me *MemberExpression) Kind() NodeKind         { return KindMemberExpression }
func (me *MemberExpression) Accept(v Visitor) error { return v.VisitMemberExpression(me) }
func (me *MemberExpression) expressionNode()        {}

// PropertyName returns the name of a non-computed property, or "".
func (me *MemberExpression) PropertyName() string {
	if me.Computed {
		return ""
	}
	if id, ok := me.Property.(*Identifier); ok {
		return id.Name
	}
	return ""
}

type CallExpression struct {
	base
	Callee    Expression
	Arguments []Expression
}

func (ce *CallExpression) Kind() NodeKind         { return KindCallExpression }
func (ce *CallExpression) Accept(v Visitor) error { return v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()        {}

type NewExpression struct {
	base
	Callee    Expression
	Arguments []Expression
}

func (ne *NewExpression) Kind() NodeKind         { return KindNewExpression }
func (ne *NewExpression) Accept(v Visitor) error { return v.VisitNewExpression(ne) }
func (ne *NewExpression) expressionNode()        {}
