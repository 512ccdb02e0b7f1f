package analyzer

import (
	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/diagnostics"
	"github.com/funvibe/jsti/internal/symbols"
	"github.com/funvibe/jsti/internal/typesystem"
)

// Result is an annotated tree.
type Result struct {
	Tree  *ast.Tree
	Types *typesystem.Table
	Scope *symbols.Scope
}

// TypeOf returns the annotation of n, or nil when the pass left n
// unannotated (plain identifier references are never annotated).
func (r *Result) TypeOf(n ast.Node) *typesystem.Annotation {
	a, ok := r.Types.Lookup(n)
	if !ok {
		return nil
	}
	return a
}

// Invalid lists the nodes whose inference failed, in pre-order.
func (r *Result) Invalid() []ast.Node {
	return Invalid(r.Tree, r.Types)
}

// Diagnostics lists the soft failures recorded on the tree, in pre-order.
// Nodes poisoned by an invalid operand carry no diagnostic of their own.
func (r *Result) Diagnostics() []*diagnostics.Diagnostic {
	var out []*diagnostics.Diagnostic
	for _, n := range r.Invalid() {
		if d := r.Types.ByID(n.ID()).Error(); d != nil {
			out = append(out, d)
		}
	}
	return out
}

// OK reports whether every node was inferred successfully.
func (r *Result) OK() bool {
	return len(r.Invalid()) == 0
}

// Invalid lists the nodes of tree annotated INVALID in types.
func Invalid(tree *ast.Tree, types *typesystem.Table) []ast.Node {
	var out []ast.Node
	for _, n := range tree.Nodes() {
		if a, ok := types.Lookup(n); ok && !a.IsValid() {
			out = append(out, n)
		}
	}
	return out
}
