package evaluator

import "github.com/funvibe/jsti/internal/typesystem"

// strictEquals implements ===: no coercion, NaN is unequal to itself and
// non-primitives compare by identity.
func strictEquals(left, right any) bool {
	if typeOfValue(left) != typeOfValue(right) {
		return false
	}
	if !typesystem.IsPrimitive(left) || !typesystem.IsPrimitive(right) {
		if typesystem.IsPrimitive(left) != typesystem.IsPrimitive(right) {
			return false
		}
		return typesystem.SameReference(left, right)
	}
	switch l := left.(type) {
	case float64:
		return l == right.(float64)
	case nil:
		return right == nil
	}
	return left == right
}

// looseEquals implements == with the host coercion rules.
func looseEquals(left, right any) bool {
	lNullish := left == nil || typesystem.IsUndefinedValue(left)
	rNullish := right == nil || typesystem.IsUndefinedValue(right)
	if lNullish || rNullish {
		return lNullish && rNullish
	}
	lPrim, rPrim := typesystem.IsPrimitive(left), typesystem.IsPrimitive(right)
	if !lPrim && !rPrim {
		return typesystem.SameReference(left, right)
	}
	if typeOfValue(left) == typeOfValue(right) && lPrim && rPrim {
		return strictEquals(left, right)
	}
	l, r := toPrimitive(left), toPrimitive(right)
	if ls, ok := l.(string); ok {
		if rs, ok := r.(string); ok {
			return ls == rs
		}
	}
	return typesystem.ToNumber(l) == typesystem.ToNumber(r)
}
