package builtins

import (
	"math"
	"strconv"

	"github.com/funvibe/jsti/internal/config"
	"github.com/funvibe/jsti/internal/diagnostics"
	"github.com/funvibe/jsti/internal/registry"
	"github.com/funvibe/jsti/internal/typesystem"
)

var components = []string{"x", "y", "z", "w"}

// vectorConstructor builds VecN values. Arguments are numbers or smaller
// vectors whose components add up to N; a single number fills every
// component and no arguments yield the zero vector.
type vectorConstructor struct {
	name string
	size int
	kind typesystem.Kind
}

func (v *vectorConstructor) Evaluate(c *registry.Call) *typesystem.Annotation {
	count := 0
	for _, arg := range c.Args {
		n, ok := componentCount(arg)
		if !ok {
			return invalid(diagnostics.New(c.Node, diagnostics.TypeError,
				"Invalid parameters for "+v.name+", expected number or vector but found:", argTypes(c.Args)))
		}
		count += n
	}
	if count != 0 && !(count == 1 && len(c.Args) == 1) && count != v.size {
		return invalid(diagnostics.New(c.Node, diagnostics.EngineError,
			"Invalid number of components for "+v.name+", expected", strconv.Itoa(v.size)+", found:", strconv.Itoa(count)))
	}
	return typesystem.NewObject("", v.kind)
}

func (v *vectorConstructor) ComputeStaticValue(c *registry.Call) (any, bool) {
	if !allArgumentsAreStatic(c.Args) {
		return nil, false
	}
	var flat []float64
	for _, arg := range c.Args {
		value, _ := arg.StaticValue()
		if m, ok := value.(map[string]any); ok {
			n, _ := componentCount(arg)
			for _, name := range components[:n] {
				flat = append(flat, typesystem.ToNumber(m[name]))
			}
			continue
		}
		flat = append(flat, typesystem.ToNumber(value))
	}
	switch len(flat) {
	case 0:
		flat = make([]float64, v.size)
	case 1:
		fill := flat[0]
		flat = make([]float64, v.size)
		for i := range flat {
			flat[i] = fill
		}
	}
	return vectorValue(flat[:v.size]), true
}

func componentCount(a *typesystem.Annotation) (int, bool) {
	if a.CanNumber() {
		return 1, true
	}
	switch a.Kind() {
	case typesystem.KindFloat2:
		return 2, true
	case typesystem.KindFloat3, typesystem.KindNormal:
		return 3, true
	case typesystem.KindFloat4:
		return 4, true
	}
	return 0, false
}

func vectorValue(values []float64) map[string]any {
	m := make(map[string]any, len(values))
	for i, f := range values {
		m[components[i]] = f
	}
	return m
}

func vectorComponents(v any, size int) ([]float64, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, size)
	for i := range out {
		f, ok := m[components[i]].(float64)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// vectorMethod is a NUMBER-valued instance method of a vector.
type vectorMethod struct {
	name  string
	size  int
	kind  typesystem.Kind
	arity int
	fn    func(receiver []float64, args [][]float64) float64
}

func (m *vectorMethod) Evaluate(c *registry.Call) *typesystem.Annotation {
	if d := checkParamCount(c, m.name, m.arity); d != nil {
		return invalid(d)
	}
	for _, arg := range c.Args {
		if !arg.IsOfKind(m.kind) {
			return invalid(diagnostics.New(c.Node, diagnostics.TypeError,
				"Invalid parameters for "+m.name+", expected Object #<"+string(m.kind)+"> but found:", argTypes(c.Args)))
		}
	}
	return typesystem.New(typesystem.Number)
}

func (m *vectorMethod) ComputeStaticValue(c *registry.Call) (any, bool) {
	if c.Receiver == nil || !c.Receiver.HasStaticValue() || !allArgumentsAreStatic(c.Args) {
		return nil, false
	}
	rv, _ := c.Receiver.StaticValue()
	recv, ok := vectorComponents(rv, m.size)
	if !ok {
		return nil, false
	}
	args := make([][]float64, len(c.Args))
	for i, a := range c.Args {
		av, _ := a.StaticValue()
		if args[i], ok = vectorComponents(av, m.size); !ok {
			return nil, false
		}
	}
	return m.fn(recv, args), true
}

func length(v []float64, _ [][]float64) float64 {
	sum := 0.0
	for _, f := range v {
		sum += f * f
	}
	return math.Sqrt(sum)
}

func dot(v []float64, args [][]float64) float64 {
	sum := 0.0
	for i, f := range v {
		sum += f * args[0][i]
	}
	return sum
}

// Vector returns the registry entry of the VecN constructor for n in 2..4.
// Its properties describe VecN instances.
func Vector(n int) *registry.Object {
	kind, ok := typesystem.VectorKind(n)
	if !ok {
		panic("builtins: no vector with " + strconv.Itoa(n) + " components")
	}
	name := vectorName(n)
	o := &registry.Object{
		ID:          name,
		Kind:        kind,
		Properties:  make(map[string]*registry.Descriptor),
		Constructor: &vectorConstructor{name: name, size: n, kind: kind},
	}
	for i, comp := range components[:n] {
		o.Properties[comp] = &registry.Descriptor{
			Info: typesystem.New(typesystem.Number),
			Get: func(receiver any) (any, bool) {
				values, ok := vectorComponents(receiver, n)
				if !ok {
					return nil, false
				}
				return values[i], true
			},
		}
	}
	o.Properties["length"] = &registry.Descriptor{
		Info:     typesystem.New(typesystem.Function),
		Callable: &vectorMethod{name: name + ".length", size: n, kind: kind, arity: 0, fn: length},
	}
	o.Properties["dot"] = &registry.Descriptor{
		Info:     typesystem.New(typesystem.Function),
		Callable: &vectorMethod{name: name + ".dot", size: n, kind: kind, arity: 1, fn: dot},
	}
	return o
}

func vectorName(n int) string {
	switch n {
	case 2:
		return config.Vec2ObjectName
	case 3:
		return config.Vec3ObjectName
	default:
		return config.Vec4ObjectName
	}
}
