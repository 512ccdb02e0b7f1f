package typesystem

import "fmt"

// Type is a point in the type lattice.
type Type int

const (
	Any Type = iota
	Int
	Number
	Boolean
	Object
	Array
	Null
	Undefined
	Function
	String
	Invalid
)

var typeNames = [...]string{
	Any:       "any",
	Int:       "int",
	Number:    "number",
	Boolean:   "boolean",
	Object:    "object",
	Array:     "array",
	Null:      "null",
	Undefined: "undefined",
	Function:  "function",
	String:    "string",
	Invalid:   "invalid",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType maps a lattice name ("int", "number", ...) back to its Type.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return Invalid, fmt.Errorf("unknown type %q", name)
}

// JSTypeOf returns what `typeof` yields for a value of type t. It reports
// false when the type alone does not decide it.
func JSTypeOf(t Type) (string, bool) {
	switch t {
	case Int, Number:
		return "number", true
	case Boolean:
		return "boolean", true
	case String:
		return "string", true
	case Undefined:
		return "undefined", true
	case Object, Array, Null:
		return "object", true
	case Function:
		return "function", true
	default:
		return "", false
	}
}
