package ast

import (
	"strconv"
	"strings"
)

// Builder constructs nodes without a parser. It is used by tests and by
// tools that synthesize trees; call Tree to register the result.
type Builder struct {
	Source string
}

func NewBuilder() *Builder { return &Builder{} }

// Tree wraps the given statements (expressions become ExpressionStatements)
// in a Program and registers it.
func (b *Builder) Tree(items ...Node) *Tree {
	p := &Program{}
	for _, it := range items {
		switch n := it.(type) {
		case Statement:
			p.Body = append(p.Body, n)
		case Expression:
			p.Body = append(p.Body, b.ExprStmt(n))
		}
	}
	return NewTree(p)
}

func (b *Builder) ExprStmt(e Expression) *ExpressionStatement {
	return &ExpressionStatement{Expression: e}
}

func (b *Builder) Ident(name string) *Identifier {
	return &Identifier{Name: name}
}

// Lit builds a literal from its raw source text, decoding the value the way
// an ESTree parser would.
func (b *Builder) Lit(raw string) *Literal {
	l := &Literal{Raw: raw}
	switch {
	case raw == "true":
		l.Value = true
	case raw == "false":
		l.Value = false
	case raw == "null":
		l.Value = nil
	case len(raw) >= 2 && (raw[0] == '\'' || raw[0] == '"'):
		l.Value = unquote(raw)
	default:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			l.Value = f
		} else {
			l.Value = raw
		}
	}
	return l
}

// Str builds a single-quoted string literal.
func (b *Builder) Str(s string) *Literal {
	return &Literal{Raw: "'" + strings.ReplaceAll(s, "'", `\'`) + "'", Value: s}
}

func (b *Builder) Array(elems ...Expression) *ArrayExpression {
	return &ArrayExpression{Elements: elems}
}

func (b *Builder) Unary(op string, arg Expression) *UnaryExpression {
	return &UnaryExpression{Operator: op, Argument: arg, Prefix: true}
}

func (b *Builder) Update(op string, arg Expression, prefix bool) *UpdateExpression {
	return &UpdateExpression{Operator: op, Argument: arg, Prefix: prefix}
}

func (b *Builder) Binary(op string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{Operator: op, Left: left, Right: right}
}

func (b *Builder) Logical(op string, left, right Expression) *LogicalExpression {
	return &LogicalExpression{Operator: op, Left: left, Right: right}
}

func (b *Builder) Assign(op string, left, right Expression) *AssignmentExpression {
	return &AssignmentExpression{Operator: op, Left: left, Right: right}
}

func (b *Builder) Cond(test, cons, alt Expression) *ConditionalExpression {
	return &ConditionalExpression{Test: test, Consequent: cons, Alternate: alt}
}

// Member builds object.name.
func (b *Builder) Member(object Expression, name string) *MemberExpression {
	return &MemberExpression{Object: object, Property: b.Ident(name)}
}

// Index builds object[index].
func (b *Builder) Index(object, index Expression) *MemberExpression {
	return &MemberExpression{Object: object, Property: index, Computed: true}
}

func (b *Builder) Call(callee Expression, args ...Expression) *CallExpression {
	return &CallExpression{Callee: callee, Arguments: args}
}

func (b *Builder) New(callee Expression, args ...Expression) *NewExpression {
	return &NewExpression{Callee: callee, Arguments: args}
}

// Var builds `var name = init`; init may be nil.
func (b *Builder) Var(name string, init Expression) *VariableDeclaration {
	return &VariableDeclaration{
		DeclKind:     "var",
		Declarations: []*VariableDeclarator{{Name: b.Ident(name), Init: init}},
	}
}

func (b *Builder) Return(arg Expression) *ReturnStatement {
	return &ReturnStatement{Argument: arg}
}

func unquote(raw string) string {
	inner := raw[1 : len(raw)-1]
	if raw[0] == '"' {
		if s, err := strconv.Unquote(raw); err == nil {
			return s
		}
	}
	return strings.NewReplacer(`\'`, `'`, `\"`, `"`, `\\`, `\`, `\n`, "\n", `\t`, "\t").Replace(inner)
}
