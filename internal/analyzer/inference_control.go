package analyzer

import (
	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/diagnostics"
	"github.com/funvibe/jsti/internal/typesystem"
)

// VisitLogicalExpression decides || and && from static truth values when
// it can, and unifies both sides otherwise.
func (w *walker) VisitLogicalExpression(n *ast.LogicalExpression) error {
	left, err := w.resolve(n.Left)
	if err != nil {
		return err
	}
	right, err := w.resolve(n.Right)
	if err != nil {
		return err
	}
	if !left.IsValid() {
		w.set(n, poisoned())
		return nil
	}
	if n.Operator != "||" && n.Operator != "&&" {
		w.set(n, invalid(n, diagnostics.EngineError, n.Operator, "is not supported."))
		return nil
	}

	// For ||, a falsy left yields the right side. For &&, a truthy one does.
	// The side that is never evaluated does not affect the result.
	pass := n.Operator == "&&"
	if lt, ok := left.StaticTruthValue(); ok {
		taken := left
		if lt == pass {
			taken = right
		}
		if !taken.IsValid() {
			taken = poisoned()
		}
		w.set(n, taken)
		return nil
	}
	if !right.IsValid() {
		w.set(n, poisoned())
		return nil
	}
	// The result is either left or a constant that does not change the type.
	if rt, ok := right.StaticTruthValue(); ok && rt == pass {
		w.set(n, left)
		return nil
	}

	res := &typesystem.Annotation{}
	if !res.SetCommonType(left, right) {
		w.set(n, invalid(n, diagnostics.EngineError, "polymorphic logical expression:",
			left.TypeString(), n.Operator, right.TypeString()))
		return nil
	}
	res.SetDynamicValue()
	w.propagateUniforms(res, left, right)
	w.set(n, res)
	return nil
}

func (w *walker) VisitConditionalExpression(n *ast.ConditionalExpression) error {
	test, err := w.resolve(n.Test)
	if err != nil {
		return err
	}
	consequent, err := w.resolve(n.Consequent)
	if err != nil {
		return err
	}
	alternate, err := w.resolve(n.Alternate)
	if err != nil {
		return err
	}
	if !test.IsValid() {
		w.set(n, poisoned())
		return nil
	}

	if truth, ok := test.StaticTruthValue(); ok {
		taken := alternate
		if truth {
			taken = consequent
		}
		if !taken.IsValid() {
			taken = poisoned()
		}
		w.set(n, taken)
		return nil
	}

	if anyInvalid(consequent, alternate) {
		w.set(n, poisoned())
		return nil
	}
	res := &typesystem.Annotation{}
	if !res.SetCommonType(consequent, alternate) {
		w.set(n, invalid(n, diagnostics.EngineError, "polymorphic conditional expression:",
			consequent.TypeString(), "and", alternate.TypeString()))
		return nil
	}
	res.SetDynamicValue()
	w.propagateUniforms(res, test, consequent, alternate)
	w.set(n, res)
	return nil
}
