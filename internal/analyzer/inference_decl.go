package analyzer

import (
	"strings"

	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/diagnostics"
	"github.com/funvibe/jsti/internal/typesystem"
)

// VisitExpressionStatement copies the result of the expression.
func (w *walker) VisitExpressionStatement(n *ast.ExpressionStatement) error {
	info, err := w.resolve(n.Expression)
	if err != nil {
		return err
	}
	if !info.IsValid() {
		info = poisoned()
	}
	w.set(n, info)
	return nil
}

func (w *walker) VisitVariableDeclaration(*ast.VariableDeclaration) error { return nil }

// VisitVariableDeclarator binds the declared name in the current scope to
// the initializer's annotation, or to undefined.
func (w *walker) VisitVariableDeclarator(n *ast.VariableDeclarator) error {
	res := typesystem.New(typesystem.Undefined)
	if n.Init != nil {
		init, err := w.resolve(n.Init)
		if err != nil {
			return err
		}
		res = init.Clone()
		if !res.IsValid() {
			res = poisoned()
		}
	}
	res.Global = false
	w.set(n, res)
	w.set(n.Name, res)
	w.scope.DeclareAt(n.Name.Name, res.Clone(), n)
	return nil
}

// VisitAssignmentExpression propagates the assigned value. Outside of a
// declaration the binding of an identifier target takes the new type.
func (w *walker) VisitAssignmentExpression(n *ast.AssignmentExpression) error {
	right, err := w.resolve(n.Right)
	if err != nil {
		return err
	}

	var res *typesystem.Annotation
	switch {
	case !right.IsValid():
		res = poisoned()
	case n.Operator == "=":
		res = right.Clone()
	default:
		op, ok := strings.CutSuffix(n.Operator, "=")
		if !ok {
			w.set(n, invalid(n, diagnostics.EngineError, n.Operator, "is not supported."))
			return nil
		}
		left, err := w.resolve(n.Left)
		if err != nil {
			return err
		}
		if !left.IsValid() {
			res = poisoned()
			break
		}
		if res, err = w.binary(n, op, n.Left, n.Right, left, right); err != nil {
			return err
		}
	}
	res.ClearUniformDependencies()
	w.set(n, res)

	id, ok := n.Left.(*ast.Identifier)
	if !ok || w.ctx.InDeclaration || !res.IsValid() {
		return nil
	}
	if !w.scope.Assign(id.Name, res) {
		return diagnostics.Throw(id, diagnostics.ReferenceError, id.Name, "is not defined")
	}
	return nil
}

// VisitReturnStatement reports the returned annotation to the enclosing
// function scope.
func (w *walker) VisitReturnStatement(n *ast.ReturnStatement) error {
	res := typesystem.New(typesystem.Undefined)
	if n.Argument != nil {
		arg, err := w.resolve(n.Argument)
		if err != nil {
			return err
		}
		res = arg.Clone()
		if !res.IsValid() {
			res = poisoned()
		}
	}
	w.set(n, res)
	w.scope.UpdateReturnInfo(n, res)
	return nil
}
