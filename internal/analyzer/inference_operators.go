package analyzer

import (
	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/diagnostics"
	"github.com/funvibe/jsti/internal/typesystem"
)

func (w *walker) VisitUnaryExpression(n *ast.UnaryExpression) error {
	arg, err := w.resolve(n.Argument)
	if err != nil {
		return err
	}

	if n.Operator == "typeof" {
		res := typesystem.New(typesystem.String)
		if arg.IsValid() {
			if s, ok := arg.JSTypeString(); ok {
				res.SetStaticValue(s)
			}
		}
		w.set(n, res)
		return nil
	}
	if !arg.IsValid() {
		w.set(n, poisoned())
		return nil
	}

	var res *typesystem.Annotation
	switch n.Operator {
	case "!":
		res = typesystem.New(typesystem.Boolean)
		if arg.CanObject() {
			truth, _ := arg.StaticTruthValue()
			res.SetStaticValue(!truth)
			w.set(n, res)
			return nil
		}
	case "+", "-":
		switch {
		case arg.CanInt():
			res = typesystem.New(typesystem.Int)
		case arg.CanNumber():
			res = typesystem.New(typesystem.Number)
		default:
			w.set(n, invalid(n, diagnostics.NaNError, nanReason(n.Argument, arg)))
			return nil
		}
	default:
		// ~, void, delete
		w.set(n, invalid(n, diagnostics.EngineError, n.Operator, "is not supported."))
		return nil
	}

	if arg.HasStaticValue() {
		v, err := w.eval.UnaryStaticValue(n, arg)
		if err != nil {
			return err
		}
		res.SetStaticValue(v)
	}
	w.propagateUniforms(res, arg)
	w.set(n, res)
	return nil
}

func (w *walker) VisitBinaryExpression(n *ast.BinaryExpression) error {
	left, err := w.resolve(n.Left)
	if err != nil {
		return err
	}
	right, err := w.resolve(n.Right)
	if err != nil {
		return err
	}
	if anyInvalid(left, right) {
		w.set(n, poisoned())
		return nil
	}
	res, err := w.binary(n, n.Operator, n.Left, n.Right, left, right)
	if err != nil {
		return err
	}
	w.set(n, res)
	return nil
}

// binary types `left op right` for node n and folds it when both operands
// are static. Compound assignments reuse it with the bare operator.
func (w *walker) binary(n ast.Node, op string, leftNode, rightNode ast.Expression, left, right *typesystem.Annotation) (*typesystem.Annotation, error) {
	res := &typesystem.Annotation{}
	switch op {
	case "+", "-", "*", "/", "%":
		t, ok := arithmeticType(op, left, right)
		if !ok {
			reason := ""
			switch {
			case left.IsNullOrUndefined():
				reason = ast.Describe(leftNode) + " is " + left.TypeString()
			case right.IsNullOrUndefined():
				reason = ast.Describe(rightNode) + " is " + right.TypeString()
			}
			return invalid(n, diagnostics.NaNError, reason), nil
		}
		res.SetType(t)
	case "===", "!==", "==", "!=":
		res.SetType(typesystem.Boolean)
		if left.IsUndefined() || right.IsUndefined() {
			both := left.IsUndefined() && right.IsUndefined()
			res.SetStaticValue(both == (op == "===" || op == "=="))
			return res, nil
		}
	case "<", "<=", ">", ">=":
		res.SetType(typesystem.Boolean)
		if left.IsUndefined() || right.IsUndefined() {
			res.SetStaticValue(false)
			return res, nil
		}
	default:
		return invalid(n, diagnostics.EngineError, op, "is not supported."), nil
	}

	if left.HasStaticValue() && right.HasStaticValue() {
		v, err := w.eval.BinaryStaticValue(n, op, left, right)
		if err != nil {
			return nil, err
		}
		res.SetStaticValue(v)
	}
	w.propagateUniforms(res, left, right)
	return res, nil
}

// arithmeticType promotes the operand types of an arithmetic operator.
// null coerces to 0 next to a number; any other mix yields NaN.
func arithmeticType(op string, left, right *typesystem.Annotation) (typesystem.Type, bool) {
	switch {
	case left.CanInt() && right.CanInt():
		if op == "/" {
			return typesystem.Number, true
		}
		return typesystem.Int, true
	case left.CanInt() && right.IsNumber(), right.CanInt() && left.IsNumber(), left.IsNumber() && right.IsNumber():
		return typesystem.Number, true
	case left.IsInt() && right.IsNull(), right.IsInt() && left.IsNull():
		if op == "/" {
			return typesystem.Number, true
		}
		return typesystem.Int, true
	case left.IsNumber() && right.IsNull(), right.IsNumber() && left.IsNull():
		return typesystem.Number, true
	}
	return typesystem.Invalid, false
}

func (w *walker) VisitUpdateExpression(n *ast.UpdateExpression) error {
	arg, err := w.resolve(n.Argument)
	if err != nil {
		return err
	}
	if !arg.IsValid() {
		w.set(n, poisoned())
		return nil
	}
	if !arg.CanNumber() {
		// e.g. var a = {}; a++;
		w.set(n, invalid(n, diagnostics.NaNError, nanReason(n.Argument, arg)))
		return nil
	}

	updated := arg.Clone()
	if updated.IsBool() {
		updated.SetType(typesystem.Int)
	}
	updated.SetDynamicValue()
	if arg.HasStaticValue() {
		v, err := w.eval.UpdateStaticValue(n, arg)
		if err != nil {
			return err
		}
		updated.SetStaticValue(v)
	}

	// The prefix form evaluates to the new value, the postfix form to the old one.
	res := updated
	if !n.Prefix {
		res = arg.Clone()
		if res.IsBool() {
			res.SetType(typesystem.Int)
			if v, ok := arg.StaticValue(); ok {
				res.SetStaticValue(typesystem.ToNumber(v))
			}
		}
	}
	w.set(n, res)

	if id, ok := n.Argument.(*ast.Identifier); ok && !w.ctx.InDeclaration {
		w.scope.Assign(id.Name, updated)
	}
	return nil
}

func nanReason(n ast.Node, info *typesystem.Annotation) string {
	return ast.Describe(n) + " is " + info.TypeString()
}
