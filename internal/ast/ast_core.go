package ast

import "fmt"

// NodeID is the stable arena index of a node inside its Tree.
// Zero means the node has not been registered with a tree yet.
type NodeID int

// Position is a 1-based line and 0-based column, as ESTree reports them.
type Position struct {
	Line   int
	Column int
}

// Location is the source span of a node.
type Location struct {
	Source string
	Start  Position
	End    Position
}

func (l Location) IsZero() bool {
	return l.Start.Line == 0 && l.End.Line == 0
}

func (l Location) String() string {
	if l.IsZero() {
		return "<unknown>"
	}
	if l.Source != "" {
		return fmt.Sprintf("%s:%d:%d", l.Source, l.Start.Line, l.Start.Column)
	}
	return fmt.Sprintf("%d:%d", l.Start.Line, l.Start.Column)
}

// Node is the base interface for all syntax nodes.
type Node interface {
	ID() NodeID
	Kind() NodeKind
	Loc() Location
	Accept(v Visitor) error
	setID(id NodeID)
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// base carries the fields shared by every node.
type base struct {
	id       NodeID
	Location Location
}

func (b *base) ID() NodeID        { return b.id }
func (b *base) Loc() Location     { return b.Location }
func (b *base) setID(id NodeID)   { b.id = id }
func (b *base) SetLoc(l Location) { b.Location = l }

// Tree owns the arena of nodes reachable from Root. IDs are assigned in
// pre-order starting at 1, so registering the same nodes twice yields the
// same IDs.
type Tree struct {
	Root  Node
	nodes []Node // index 0 unused
}

// NewTree registers every node reachable from root and returns the tree.
func NewTree(root Node) *Tree {
	t := &Tree{Root: root, nodes: []Node{nil}}
	_ = Walk(root, func(n Node) error {
		n.setID(NodeID(len(t.nodes)))
		t.nodes = append(t.nodes, n)
		return nil
	}, nil)
	return t
}

// Len returns the number of registered nodes.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// Node returns the node with the given id, or nil.
func (t *Tree) Node(id NodeID) Node {
	if id <= 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Nodes returns all registered nodes in pre-order.
func (t *Tree) Nodes() []Node {
	return t.nodes[1:]
}

// FirstExpression returns the expression of the first ExpressionStatement
// of a Program root. Handy for single-expression inputs.
func (t *Tree) FirstExpression() Expression {
	p, ok := t.Root.(*Program)
	if !ok || len(p.Body) == 0 {
		return nil
	}
	if es, ok := p.Body[0].(*ExpressionStatement); ok {
		return es.Expression
	}
	return nil
}

// Program is the root node of every decoded tree.
type Program struct {
	base
	Body []Statement
}

func (p *Program) Kind() NodeKind         { return KindProgram }
func (p *Program) Accept(v Visitor) error { return v.VisitProgram(p) }
