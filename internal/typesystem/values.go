package typesystem

import (
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Constant values use the host-language shapes: float64 for every number,
// bool, string, nil for null, UndefinedValue, []any for arrays and
// map[string]any for plain objects.

type undefined struct{}

func (undefined) String() string { return "undefined" }

// UndefinedValue is the constant carried by UNDEFINED annotations.
var UndefinedValue = undefined{}

// IsUndefinedValue reports whether v is the undefined constant.
func IsUndefinedValue(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// Normalize converts Go values from decoders (ints, []float64, nested
// interface maps) into the constant shapes above.
func Normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	case []float64:
		out := make([]any, len(x))
		for i, f := range x {
			out[i] = f
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = Normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[ToString(Normalize(k))] = Normalize(e)
		}
		return out
	}
	return v
}

// ToBoolean implements host truthiness.
func ToBoolean(v any) bool {
	switch x := v.(type) {
	case nil, undefined:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	}
	return true
}

// ToNumber implements host numeric coercion.
func ToNumber(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case undefined:
		return math.NaN()
	case bool:
		if x {
			return 1
		}
		return 0
	case float64:
		return x
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		switch s {
		case "Infinity", "+Infinity":
			return math.Inf(1)
		case "-Infinity":
			return math.Inf(-1)
		}
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			if n, err := strconv.ParseUint(s[2:], 16, 64); err == nil {
				return float64(n)
			}
			return math.NaN()
		}
		if strings.ContainsAny(s, "_pPiInN") {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case []any:
		switch len(x) {
		case 0:
			return 0
		case 1:
			return ToNumber(ToString(x[0]))
		}
	}
	return math.NaN()
}

// ToString implements host string conversion.
func ToString(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case undefined:
		return "undefined"
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return FormatNumber(x)
	case string:
		return x
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			if e != nil && !IsUndefinedValue(e) {
				parts[i] = ToString(e)
			}
		}
		return strings.Join(parts, ",")
	}
	return "[object Object]"
}

// FormatNumber prints a number the way the host language does.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// Go writes e+07 / e-07, the host writes e+7 / e-7.
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[0]
		digits := strings.TrimLeft(exp[1:], "0")
		return mant + "e" + string(sign) + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// IsPrimitive reports whether v compares by value.
func IsPrimitive(v any) bool {
	switch v.(type) {
	case nil, undefined, bool, float64, string:
		return true
	}
	return false
}

// SameReference compares two non-primitive constants by identity.
func SameReference(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() != rb.Kind() {
		return false
	}
	switch ra.Kind() {
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	case reflect.Map, reflect.Pointer, reflect.Func:
		return ra.Pointer() == rb.Pointer()
	}
	return false
}

// FromValue derives the annotation of a constant value.
func FromValue(v any) *Annotation {
	v = Normalize(v)
	a := &Annotation{}
	switch x := v.(type) {
	case nil:
		a.SetType(Null)
		return a
	case undefined:
		a.SetType(Undefined)
		return a
	case bool:
		a.SetType(Boolean)
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			a.SetType(Int)
		} else {
			a.SetType(Number)
		}
	case string:
		a.SetType(String)
	case []any:
		a.SetType(Array)
		a.SetElements(commonElementType(x))
	case map[string]any:
		a.SetTypeKind(Object, KindAny)
	default:
		a.SetType(Any)
		return a
	}
	a.SetStaticValue(v)
	return a
}

func commonElementType(elems []any) *Annotation {
	if len(elems) == 0 {
		return New(Any)
	}
	acc := FromValue(elems[0])
	for _, e := range elems[1:] {
		next := &Annotation{}
		if !next.SetCommonType(acc, FromValue(e)) {
			return New(Any)
		}
		acc = next
	}
	acc.SetDynamicValue()
	return acc
}

// SortedKeys lists the keys of a constant object deterministically.
func SortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
