package builtins

import (
	"strconv"
	"strings"

	"github.com/funvibe/jsti/internal/diagnostics"
	"github.com/funvibe/jsti/internal/registry"
	"github.com/funvibe/jsti/internal/typesystem"
)

// checkParamCount reports a diagnostic unless the call has one of the
// allowed argument counts.
func checkParamCount(c *registry.Call, name string, allowed ...int) *diagnostics.Diagnostic {
	for _, n := range allowed {
		if len(c.Args) == n {
			return nil
		}
	}
	counts := make([]string, len(allowed))
	for i, n := range allowed {
		counts[i] = strconv.Itoa(n)
	}
	return diagnostics.New(c.Node, diagnostics.EngineError,
		"Invalid number of parameters for "+name+", expected", strings.Join(counts, " or ")+", found:", strconv.Itoa(len(c.Args)))
}

// checkMinParams reports a diagnostic when fewer than min arguments are
// given. Extra arguments are ignored, as the host language does.
func checkMinParams(c *registry.Call, name string, min int) *diagnostics.Diagnostic {
	if len(c.Args) >= min {
		return nil
	}
	return diagnostics.New(c.Node, diagnostics.EngineError,
		"Invalid number of parameters for "+name+", expected at least", strconv.Itoa(min)+", found:", strconv.Itoa(len(c.Args)))
}

func allArgumentsAreStatic(args []*typesystem.Annotation) bool {
	for _, a := range args {
		if !a.HasStaticValue() {
			return false
		}
	}
	return true
}

func allArgumentsCanNumber(args []*typesystem.Annotation) bool {
	for _, a := range args {
		if !a.CanNumber() {
			return false
		}
	}
	return true
}

// staticNumbers converts static arguments to numbers.
func staticNumbers(args []*typesystem.Annotation) []float64 {
	out := make([]float64, len(args))
	for i, a := range args {
		v, _ := a.StaticValue()
		out[i] = typesystem.ToNumber(v)
	}
	return out
}

func invalid(d *diagnostics.Diagnostic) *typesystem.Annotation {
	a := typesystem.New(typesystem.Invalid)
	a.SetInvalid(d)
	return a
}

func argTypes(args []*typesystem.Annotation) string {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = a.TypeString()
	}
	return strings.Join(names, ", ")
}
