package builtins

import (
	"math"

	"github.com/funvibe/jsti/internal/config"
	"github.com/funvibe/jsti/internal/diagnostics"
	"github.com/funvibe/jsti/internal/registry"
	"github.com/funvibe/jsti/internal/typesystem"
)

// mathFunc is a Math function over numbers that always yields NUMBER.
type mathFunc struct {
	name    string
	minArgs int
	fn      func(args []float64) float64
	dynamic bool // never folded, e.g. random
}

func (f *mathFunc) Evaluate(c *registry.Call) *typesystem.Annotation {
	qualified := config.MathObjectName + "." + f.name
	if d := checkMinParams(c, qualified, f.minArgs); d != nil {
		return invalid(d)
	}
	if !allArgumentsCanNumber(c.Args) {
		return invalid(diagnostics.New(c.Node, diagnostics.TypeError,
			"Invalid parameters for "+qualified+", expected number but found:", argTypes(c.Args)))
	}
	return typesystem.New(typesystem.Number)
}

func (f *mathFunc) ComputeStaticValue(c *registry.Call) (any, bool) {
	if f.dynamic || !allArgumentsAreStatic(c.Args) {
		return nil, false
	}
	return f.fn(staticNumbers(c.Args)), true
}

func unary(fn func(float64) float64) func([]float64) float64 {
	return func(a []float64) float64 { return fn(a[0]) }
}

func binary(fn func(float64, float64) float64) func([]float64) float64 {
	return func(a []float64) float64 { return fn(a[0], a[1]) }
}

// round follows the host rounding: halves go towards +Infinity.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

func minOf(a []float64) float64 {
	r := math.Inf(1)
	for _, v := range a {
		if math.IsNaN(v) {
			return v
		}
		r = math.Min(r, v)
	}
	return r
}

func maxOf(a []float64) float64 {
	r := math.Inf(-1)
	for _, v := range a {
		if math.IsNaN(v) {
			return v
		}
		r = math.Max(r, v)
	}
	return r
}

var mathConstants = map[string]float64{
	"PI":      math.Pi,
	"E":       math.E,
	"LN2":     math.Ln2,
	"LN10":    math.Ln10,
	"LOG2E":   math.Log2E,
	"LOG10E":  math.Log10E,
	"SQRT2":   math.Sqrt2,
	"SQRT1_2": math.Sqrt2 / 2,
}

var mathFunctions = []*mathFunc{
	{name: "abs", minArgs: 1, fn: unary(math.Abs)},
	{name: "acos", minArgs: 1, fn: unary(math.Acos)},
	{name: "asin", minArgs: 1, fn: unary(math.Asin)},
	{name: "atan", minArgs: 1, fn: unary(math.Atan)},
	{name: "atan2", minArgs: 2, fn: binary(math.Atan2)},
	{name: "ceil", minArgs: 1, fn: unary(math.Ceil)},
	{name: "cos", minArgs: 1, fn: unary(math.Cos)},
	{name: "exp", minArgs: 1, fn: unary(math.Exp)},
	{name: "floor", minArgs: 1, fn: unary(math.Floor)},
	{name: "log", minArgs: 1, fn: unary(math.Log)},
	{name: "max", fn: maxOf},
	{name: "min", fn: minOf},
	{name: "pow", minArgs: 2, fn: binary(math.Pow)},
	{name: "random", dynamic: true},
	{name: "round", minArgs: 1, fn: unary(round)},
	{name: "sin", minArgs: 1, fn: unary(math.Sin)},
	{name: "sqrt", minArgs: 1, fn: unary(math.Sqrt)},
	{name: "tan", minArgs: 1, fn: unary(math.Tan)},
}

// Math returns the registry entry of the Math object.
func Math() *registry.Object {
	o := &registry.Object{
		ID:         config.MathObjectName,
		Kind:       typesystem.KindAny,
		Properties: make(map[string]*registry.Descriptor),
	}
	for name, v := range mathConstants {
		o.Properties[name] = &registry.Descriptor{Info: typesystem.NewConstant(typesystem.Number, v)}
	}
	for _, f := range mathFunctions {
		o.Properties[f.name] = &registry.Descriptor{Info: typesystem.New(typesystem.Function), Callable: f}
	}
	return o
}
