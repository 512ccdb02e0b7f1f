package evaluator

import (
	"math"
	"strings"

	"github.com/funvibe/jsti/internal/typesystem"
)

// EvalPrefixExpression applies a unary operator to a constant.
func (e *Evaluator) EvalPrefixExpression(operator string, right any) (any, error) {
	switch operator {
	case "!":
		return !typesystem.ToBoolean(right), nil
	case "-":
		return -typesystem.ToNumber(right), nil
	case "+":
		return typesystem.ToNumber(right), nil
	case "typeof":
		return typeOfValue(right), nil
	case "void":
		return typesystem.UndefinedValue, nil
	case "delete":
		return true, nil
	default:
		return nil, newError("unknown operator: %s", operator)
	}
}

// EvalInfixExpression applies a binary operator to two constants.
func (e *Evaluator) EvalInfixExpression(operator string, left, right any) (any, error) {
	switch operator {
	case "+":
		return add(left, right), nil
	case "-":
		return typesystem.ToNumber(left) - typesystem.ToNumber(right), nil
	case "*":
		return typesystem.ToNumber(left) * typesystem.ToNumber(right), nil
	case "/":
		return typesystem.ToNumber(left) / typesystem.ToNumber(right), nil
	case "%":
		return math.Mod(typesystem.ToNumber(left), typesystem.ToNumber(right)), nil
	case "==":
		return looseEquals(left, right), nil
	case "!=":
		return !looseEquals(left, right), nil
	case "===":
		return strictEquals(left, right), nil
	case "!==":
		return !strictEquals(left, right), nil
	case "<":
		return compare(left, right, func(c int) bool { return c < 0 }), nil
	case "<=":
		return compare(left, right, func(c int) bool { return c <= 0 }), nil
	case ">":
		return compare(left, right, func(c int) bool { return c > 0 }), nil
	case ">=":
		return compare(left, right, func(c int) bool { return c >= 0 }), nil
	default:
		return nil, newError("unknown operator: %s", operator)
	}
}

// toPrimitive converts arrays and objects to their string form.
func toPrimitive(v any) any {
	if typesystem.IsPrimitive(v) {
		return v
	}
	return typesystem.ToString(v)
}

func add(left, right any) any {
	l, r := toPrimitive(left), toPrimitive(right)
	_, ls := l.(string)
	_, rs := r.(string)
	if ls || rs {
		return typesystem.ToString(l) + typesystem.ToString(r)
	}
	return typesystem.ToNumber(l) + typesystem.ToNumber(r)
}

// compare orders two primitives. Strings compare lexically, everything
// else numerically; a NaN operand makes every comparison false.
func compare(left, right any, ok func(int) bool) bool {
	l, r := toPrimitive(left), toPrimitive(right)
	if ls, isStr := l.(string); isStr {
		if rs, isStr := r.(string); isStr {
			return ok(strings.Compare(ls, rs))
		}
	}
	a, b := typesystem.ToNumber(l), typesystem.ToNumber(r)
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		return false
	case a < b:
		return ok(-1)
	case a > b:
		return ok(1)
	}
	return ok(0)
}

func typeOfValue(v any) string {
	switch v.(type) {
	case nil:
		return "object"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	}
	if typesystem.IsUndefinedValue(v) {
		return "undefined"
	}
	return "object"
}
