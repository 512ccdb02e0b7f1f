package typesystem

// Equals is structural: same type and same object kind.
func (a *Annotation) Equals(other *Annotation) bool {
	if other == nil {
		return false
	}
	return a.typ == other.typ && a.Kind() == other.Kind()
}

// CanNumber reports whether the value coerces to a number without NaN.
func (a *Annotation) CanNumber() bool {
	return a.IsNumber() || a.IsInt() || a.IsBool()
}

// CanInt reports whether the value coerces to an integer.
func (a *Annotation) CanInt() bool {
	return a.IsInt() || a.IsBool()
}

// CanObject reports whether the value has object identity.
func (a *Annotation) CanObject() bool {
	return a.IsObject() || a.IsArray() || a.IsFunction()
}

// SetCommonType sets a to the join of x and y. Equal operands are copied
// verbatim, constant included. Numeric operands widen to NUMBER and lose
// their constant. Any other pair has no common type and reports false,
// leaving a untouched.
func (a *Annotation) SetCommonType(x, y *Annotation) bool {
	switch {
	case x.Equals(y):
		a.Copy(x)
		return true
	case x.CanNumber() && y.CanNumber():
		a.SetType(Number)
		a.SetDynamicValue()
		return true
	}
	return false
}

// StaticTruthValue returns the truthiness of the value if it is known
// without execution.
//
// NULL and UNDEFINED are false. Objects, arrays and functions are true,
// except when a null constant is stored explicitly: a binding declared as an
// object but seeded with null is falsy.
func (a *Annotation) StaticTruthValue() (truth, known bool) {
	switch {
	case a.IsNullOrUndefined():
		return false, true
	case a.CanObject():
		if a.hasConstant && a.constant == nil {
			return false, true
		}
		return true, true
	case a.hasConstant:
		return ToBoolean(a.constant), true
	}
	return false, false
}
