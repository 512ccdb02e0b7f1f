// Package evaluator replays operators on constant values. It runs only
// when every operand of a node is statically known.
package evaluator

import (
	"fmt"

	"github.com/funvibe/jsti/internal/ast"
	"github.com/funvibe/jsti/internal/diagnostics"
	"github.com/funvibe/jsti/internal/typesystem"
)

type Evaluator struct{}

func New() *Evaluator {
	return &Evaluator{}
}

// UnaryStaticValue folds a unary expression whose operand is static.
// typeof reads the operand's inferred type, not its value.
func (e *Evaluator) UnaryStaticValue(n *ast.UnaryExpression, operand *typesystem.Annotation) (any, error) {
	if n.Operator == "typeof" {
		if s, ok := operand.JSTypeString(); ok {
			return s, nil
		}
		return nil, diagnostics.Throwf(n, diagnostics.EngineError, "cannot determine typeof %s", operand.TypeString())
	}
	v, err := staticValue(n, operand)
	if err != nil {
		return nil, err
	}
	out, err := e.EvalPrefixExpression(n.Operator, v)
	if err != nil {
		return nil, diagnostics.Throw(n, diagnostics.EngineError, err.Error())
	}
	return out, nil
}

// BinaryStaticValue folds op over two static operands. n is the binary
// expression or the compound assignment being folded.
func (e *Evaluator) BinaryStaticValue(n ast.Node, op string, left, right *typesystem.Annotation) (any, error) {
	l, err := staticValue(n, left)
	if err != nil {
		return nil, err
	}
	r, err := staticValue(n, right)
	if err != nil {
		return nil, err
	}
	out, err := e.EvalInfixExpression(op, l, r)
	if err != nil {
		return nil, diagnostics.Throw(n, diagnostics.EngineError, err.Error())
	}
	return out, nil
}

// UpdateStaticValue folds ++ and -- against a static operand.
func (e *Evaluator) UpdateStaticValue(n *ast.UpdateExpression, operand *typesystem.Annotation) (any, error) {
	v, err := staticValue(n.Argument, operand)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "++":
		return typesystem.ToNumber(v) + 1, nil
	case "--":
		return typesystem.ToNumber(v) - 1, nil
	}
	return nil, diagnostics.Throwf(n, diagnostics.EngineError, "unknown operator: %s", n.Operator)
}

func staticValue(n ast.Node, a *typesystem.Annotation) (any, error) {
	v, ok := a.StaticValue()
	if !ok {
		return nil, diagnostics.Throw(n, diagnostics.EngineError, "no static value for", ast.Describe(n))
	}
	return v, nil
}

func newError(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
